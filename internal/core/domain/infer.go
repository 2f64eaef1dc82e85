package domain

import (
	"strconv"
	"strings"
	"time"
)

// cellTimeLayouts are the timestamp layouts recognized when inferring
// cell values from text. Ordered from most to least specific.
var cellTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// ParseCell infers a typed value from raw cell text. Blank cells are the
// missing marker; anything unrecognized stays text.
func ParseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing
	}
	switch s {
	case "TRUE", "True", "true":
		return Bool(true)
	case "FALSE", "False", "false":
		return Bool(false)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	for _, layout := range cellTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time(t)
		}
	}
	return String(raw)
}

// missingLiterals are textual renderings of a missing value that appear
// when a heterogeneous column is flattened to text. They are folded back
// into the missing marker by the columnar pre-process coercion.
//
// A genuine text cell spelling one of these literals is indistinguishable
// from a flattened missing marker and will be normalized too.
var missingLiterals = map[string]bool{
	"":     true,
	"nan":  true,
	"NaN":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"<NA>": true,
	"<na>": true,
}

// IsMissingLiteral reports whether the text is a recognized rendering of
// a missing value.
func IsMissingLiteral(s string) bool { return missingLiterals[s] }
