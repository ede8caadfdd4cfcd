package xelhua

import (
	"errors"
	"fmt"
)

// I/O errors
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Type-state and lookup errors
var (
	ErrTypeMismatch     = errors.New("cell value is not of the requested type")
	ErrNotDateFormatted = errors.New("cell is not formatted as a date")
	ErrHeaderNotFound   = errors.New("no cell with that name in header row")
	ErrStyleNotFound    = errors.New("style not found")
	ErrFontNotFound     = errors.New("font not found")
	ErrMalformedNumber  = errors.New("malformed numeric content")
)

// Argument errors
var (
	ErrInvalidIndex   = errors.New("invalid index")
	ErrInvalidAddress = errors.New("invalid cell address")
	ErrInvalidRange   = errors.New("invalid cell range")
	ErrInvalidValue   = errors.New("invalid attribute value")
)

// CellError records the cell an operation failed on.
type CellError struct {
	Sheet string
	Row   int // 0-based
	Col   int // 0-based
	Op    string
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s %q!%s: %v", e.Op, e.Sheet, FormatAddress(e.Row, e.Col), e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

func (c *Cell) fail(op string, err error) error {
	return &CellError{
		Sheet: c.row.sheet.name,
		Row:   c.row.index,
		Col:   c.col,
		Op:    op,
		Err:   err,
	}
}

func mismatch(have, want CellKind) error {
	return fmt.Errorf("%w: holds %s, want %s", ErrTypeMismatch, have, want)
}
