package domain

import (
	"strconv"
)

// SheetSelector identifies which sheet of a workbook to read: a sheet
// name, a zero-based index, or all sheets. The zero SheetSelector selects
// the first sheet.
type SheetSelector struct {
	name   string
	index  int
	byName bool
	all    bool
}

// SheetByName selects a sheet by its name.
func SheetByName(name string) SheetSelector {
	return SheetSelector{name: name, byName: true}
}

// SheetByIndex selects a sheet by its zero-based position.
func SheetByIndex(i int) SheetSelector {
	return SheetSelector{index: i}
}

// AllSheets selects every sheet in the workbook.
func AllSheets() SheetSelector {
	return SheetSelector{all: true}
}

// ParseSheetSelector parses a selector from its text form: "all" or ""
// selects every sheet, a decimal integer selects by position, anything
// else selects by name.
func ParseSheetSelector(s string) SheetSelector {
	switch s {
	case "", "all", "*":
		return AllSheets()
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 {
		return SheetByIndex(i)
	}
	return SheetByName(s)
}

// All reports whether every sheet is selected.
func (s SheetSelector) All() bool { return s.all }

// Name returns the selected sheet name and whether selection is by name.
func (s SheetSelector) Name() (string, bool) { return s.name, s.byName }

// Index returns the selected zero-based sheet position. Only meaningful
// when selection is neither by name nor all sheets.
func (s SheetSelector) Index() int { return s.index }

// String returns the selector's text form, which is also the token used
// in cache entry names. Parsing the result yields an equivalent
// selector.
func (s SheetSelector) String() string {
	if s.all {
		return "all"
	}
	if s.byName {
		return s.name
	}
	return strconv.Itoa(s.index)
}
