package domain

import "go.trai.ch/zerr"

var (
	// ErrRootNotFound is returned when the configured root directory does not exist.
	ErrRootNotFound = zerr.New("root directory not found")

	// ErrNotADirectory is returned when the configured root path is not a directory.
	ErrNotADirectory = zerr.New("root path is not a directory")

	// ErrUnsupportedWorkbook is returned when a source file is not a readable workbook.
	ErrUnsupportedWorkbook = zerr.New("unsupported workbook type")

	// ErrSheetNotFound is returned when a sheet selector matches no sheet in the workbook.
	ErrSheetNotFound = zerr.New("sheet not found")

	// ErrColumnNotSerializable is returned when the columnar format rejects a column type.
	ErrColumnNotSerializable = zerr.New("column type not serializable")

	// ErrCacheEntryMissing is returned when a cache-only read finds no cache entry.
	ErrCacheEntryMissing = zerr.New("cache entry missing")

	// ErrSourceRead is returned when fresh data could not be read from a source file.
	ErrSourceRead = zerr.New("source read failed")

	// ErrProfileNotFound is returned when a requested collection profile is not configured.
	ErrProfileNotFound = zerr.New("profile not found")
)
