package workbook

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/elex-project/xelhua/pkg/xelhua"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Open loads the workbook at path after checking it against MaxFileSize.
func Open(path string, opts ...xelhua.Option) (*xelhua.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", xelhua.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, path, info.Size(), MaxFileSize)
	}
	return xelhua.Open(path, opts...)
}

// pickSheet resolves a sheet by name. An empty name selects the first sheet.
// A missing name is created when create is set and is an error otherwise.
func pickSheet(doc *xelhua.Document, name string, create bool) (*xelhua.Sheet, error) {
	if name == "" {
		if doc.SheetCount() == 0 {
			if create {
				return doc.CreateSheet()
			}
			return nil, ErrNoSheets
		}
		return doc.SheetAt(0)
	}
	if create {
		return doc.Sheet(name)
	}
	s := doc.SheetOrNil(name)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	return s, nil
}

// Sheets lists every sheet in the workbook.
func Sheets(path string, opts ...xelhua.Option) (*SheetsResult, error) {
	doc, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	res := &SheetsResult{File: path, Format: doc.Format().String(), Sheets: []SheetInfo{}}
	for _, s := range doc.Sheets() {
		merged, err := s.MergedCells()
		if err != nil {
			return nil, fmt.Errorf("failed to read merged cells of %s: %w", s.Name(), err)
		}
		res.Sheets = append(res.Sheets, SheetInfo{
			Index:  s.Index(),
			Name:   s.Name(),
			Rows:   len(s.Rows()),
			Merged: len(merged),
		})
	}
	return res, nil
}

// ReadCell reads the cell at an A1-style address.
func ReadCell(path, sheet, addr string, typ ValueType, opts ...xelhua.Option) (*CellResult, error) {
	doc, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	s, err := pickSheet(doc, sheet, false)
	if err != nil {
		return nil, err
	}
	c, err := s.CellAt(addr)
	if err != nil {
		return nil, err
	}
	return readValue(c, typ)
}

// Lookup reads the cell in the 1-based row whose column is named header in
// the 1-based headerRow.
func Lookup(path, sheet string, row int, header string, headerRow int, typ ValueType, opts ...xelhua.Option) (*LookupResult, error) {
	doc, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	s, err := pickSheet(doc, sheet, false)
	if err != nil {
		return nil, err
	}
	hr, err := s.Row(headerRow - 1)
	if err != nil {
		return nil, fmt.Errorf("header row %d: %w", headerRow, err)
	}
	r, err := s.Row(row - 1)
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", row, err)
	}
	c, err := r.CellByHeader(header, hr)
	if err != nil {
		return nil, err
	}
	res, err := readValue(c, typ)
	if err != nil {
		return nil, err
	}
	return &LookupResult{CellResult: *res, Header: header, HeaderRow: headerRow}, nil
}

// readValue reads c with the reader typ selects. TypeAuto follows the
// stored kind and reads date-formatted numbers as date-times.
func readValue(c *xelhua.Cell, typ ValueType) (*CellResult, error) {
	kind, err := c.Kind()
	if err != nil {
		return nil, err
	}
	res := &CellResult{Sheet: c.Sheet().Name(), Address: c.Address(), Kind: kind.String()}

	if kind == xelhua.KindFormula {
		if res.Formula, err = c.ReadFormula(); err != nil {
			return nil, err
		}
	}
	if cm, err := c.Comment(); err != nil {
		return nil, err
	} else if cm != nil {
		res.Comment = cm.Text
	}

	switch typ {
	case TypeString:
		res.Value, err = c.ReadString()
	case TypeNumber:
		res.Value, err = c.ReadNumeric()
	case TypeBool:
		res.Value, err = c.ReadBool()
	case TypeDate:
		res.Value, err = formatTime(c.ReadDate, dateLayout)
	case TypeDateTime:
		res.Value, err = formatTime(c.ReadDateTime, dateTimeLayout)
	case TypeFormula:
		if kind != xelhua.KindFormula {
			_, err = c.ReadFormula()
		}
		res.Value = res.Formula
	default:
		res.Value, err = autoValue(c, kind)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func autoValue(c *xelhua.Cell, kind xelhua.CellKind) (any, error) {
	switch kind {
	case xelhua.KindBlank:
		return nil, nil
	case xelhua.KindBool:
		return c.ReadBool()
	case xelhua.KindString:
		return c.ReadString()
	case xelhua.KindNumber:
		return numberValue(c)
	case xelhua.KindError:
		return engineText(c)
	}

	// Formula: report the cached result with the first reader that accepts it.
	if s, err := c.ReadString(); err == nil {
		return s, nil
	}
	if v, err := numberValue(c); err == nil {
		return v, nil
	}
	if b, err := c.ReadBool(); err == nil {
		return b, nil
	}
	return engineText(c)
}

func numberValue(c *xelhua.Cell) (any, error) {
	v, err := formatTime(c.ReadDateTime, dateTimeLayout)
	if !errors.Is(err, xelhua.ErrNotDateFormatted) {
		return v, err
	}
	return c.ReadNumeric()
}

func formatTime(read func() (time.Time, error), layout string) (any, error) {
	t, err := read()
	if err != nil {
		return nil, err
	}
	return t.Format(layout), nil
}

// engineText is the engine's display text, used for error values.
func engineText(c *xelhua.Cell) (string, error) {
	return c.Sheet().Document().Engine().GetCellValue(c.Sheet().Name(), c.Address())
}
