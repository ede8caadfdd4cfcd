package xelhua

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellKind is the type of the value a cell holds.
type CellKind int

const (
	KindBlank   CellKind = iota // no value
	KindString                  // shared or inline text
	KindNumber                  // numbers, including dates
	KindBool                    // TRUE or FALSE
	KindFormula                 // a formula, whatever its cached result
	KindError                   // an error value such as #DIV/0!
)

func (k CellKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindFormula:
		return "formula"
	case KindError:
		return "error"
	default:
		return "blank"
	}
}

// Cell is a handle to one cell, addressed by 0-based (row, column).
type Cell struct {
	row *Row
	col int
}

// Row returns the owning row.
func (c *Cell) Row() *Row {
	return c.row
}

// Sheet returns the owning sheet.
func (c *Cell) Sheet() *Sheet {
	return c.row.sheet
}

// RowIndex returns the 0-based row index.
func (c *Cell) RowIndex() int {
	return c.row.index
}

// ColumnIndex returns the 0-based column index.
func (c *Cell) ColumnIndex() int {
	return c.col
}

// Address returns the A1-style address.
func (c *Cell) Address() string {
	return FormatAddress(c.row.index, c.col)
}

func (c *Cell) doc() *Document {
	return c.row.sheet.doc
}

func (c *Cell) engine() (*excelize.File, string, string) {
	return c.row.sheet.doc.file, c.row.sheet.name, c.Address()
}

func (c *Cell) key() cellRef {
	return cellRef{sheet: c.row.sheet.name, row: c.row.index, col: c.col}
}

func (c *Cell) raw() (string, error) {
	f, sheet, addr := c.engine()
	return f.GetCellValue(sheet, addr, excelize.Options{RawCellValue: true})
}

// Kind reports the stored value type. A formula cell reports KindFormula
// whatever its cached result.
func (c *Cell) Kind() (CellKind, error) {
	f, sheet, addr := c.engine()
	formula, err := f.GetCellFormula(sheet, addr)
	if err != nil {
		return KindBlank, c.fail("kind", err)
	}
	if formula != "" {
		return KindFormula, nil
	}
	return c.storedKind()
}

// storedKind classifies the stored value, which for formulas is the cached
// result.
func (c *Cell) storedKind() (CellKind, error) {
	f, sheet, addr := c.engine()
	t, err := f.GetCellType(sheet, addr)
	if err != nil {
		return KindBlank, c.fail("kind", err)
	}

	switch t {
	case excelize.CellTypeBool:
		return KindBool, nil
	case excelize.CellTypeError:
		return KindError, nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return KindString, nil
	case excelize.CellTypeNumber, excelize.CellTypeDate:
		return KindNumber, nil
	}

	// Numbers are usually stored without a type attribute.
	v, err := c.raw()
	if err != nil {
		return KindBlank, c.fail("kind", err)
	}
	if v == "" {
		return KindBlank, nil
	}
	return KindNumber, nil
}

// valueKind is the kind typed readers dispatch on: the stored kind, with
// formulas resolved to their cached result.
func (c *Cell) valueKind() (CellKind, error) {
	k, err := c.Kind()
	if err != nil || k != KindFormula {
		return k, err
	}
	return c.storedKind()
}

// ReadString returns the text value. Blank cells read as "".
func (c *Cell) ReadString() (string, error) {
	k, err := c.valueKind()
	if err != nil {
		return "", err
	}
	switch k {
	case KindBlank:
		return "", nil
	case KindString:
		v, err := c.raw()
		if err != nil {
			return "", c.fail("read string", err)
		}
		return v, nil
	default:
		return "", c.fail("read string", mismatch(k, KindString))
	}
}

// ReadNumeric returns the numeric value. Blank cells read as 0.
func (c *Cell) ReadNumeric() (float64, error) {
	k, err := c.valueKind()
	if err != nil {
		return 0, err
	}
	switch k {
	case KindBlank:
		return 0, nil
	case KindNumber:
		return c.number("read numeric")
	default:
		return 0, c.fail("read numeric", mismatch(k, KindNumber))
	}
}

func (c *Cell) number(op string) (float64, error) {
	v, err := c.raw()
	if err != nil {
		return 0, c.fail(op, err)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, c.fail(op, fmt.Errorf("%w: %q", ErrMalformedNumber, v))
	}
	return n, nil
}

// ReadBool returns the boolean value. Blank cells read as false.
func (c *Cell) ReadBool() (bool, error) {
	k, err := c.valueKind()
	if err != nil {
		return false, err
	}
	switch k {
	case KindBlank:
		return false, nil
	case KindBool:
		v, err := c.raw()
		if err != nil {
			return false, c.fail("read bool", err)
		}
		return v == "1" || strings.EqualFold(v, "true"), nil
	default:
		return false, c.fail("read bool", mismatch(k, KindBool))
	}
}

// ReadFormula returns the formula text without a leading '='.
func (c *Cell) ReadFormula() (string, error) {
	f, sheet, addr := c.engine()
	formula, err := f.GetCellFormula(sheet, addr)
	if err != nil {
		return "", c.fail("read formula", err)
	}
	if formula == "" {
		k, err := c.storedKind()
		if err != nil {
			return "", err
		}
		return "", c.fail("read formula", mismatch(k, KindFormula))
	}
	return formula, nil
}

// Comment returns the cell's comment, or nil if it has none.
func (c *Cell) Comment() (*excelize.Comment, error) {
	f, sheet, addr := c.engine()
	comments, err := f.GetComments(sheet)
	if err != nil {
		return nil, c.fail("read comment", err)
	}
	for i := range comments {
		if strings.EqualFold(comments[i].Cell, addr) {
			return &comments[i], nil
		}
	}
	return nil, nil
}

func (c *Cell) String() string {
	return c.row.sheet.name + "!" + c.Address()
}
