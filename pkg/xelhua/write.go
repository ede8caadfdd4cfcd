package xelhua

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

func (c *Cell) clearFormula() error {
	f, sheet, addr := c.engine()
	formula, err := f.GetCellFormula(sheet, addr)
	if err != nil || formula == "" {
		return err
	}
	return f.SetCellFormula(sheet, addr, "")
}

// WriteString stores v as text.
func (c *Cell) WriteString(v string) error {
	if err := c.clearFormula(); err != nil {
		return c.fail("write string", err)
	}
	f, sheet, addr := c.engine()
	if err := f.SetCellStr(sheet, addr, v); err != nil {
		return c.fail("write string", err)
	}
	return nil
}

// WriteNumber stores v as a number.
func (c *Cell) WriteNumber(v float64) error {
	if err := c.clearFormula(); err != nil {
		return c.fail("write number", err)
	}
	f, sheet, addr := c.engine()
	if err := f.SetCellFloat(sheet, addr, v, -1, 64); err != nil {
		return c.fail("write number", err)
	}
	return nil
}

// WriteBool stores v as a boolean.
func (c *Cell) WriteBool(v bool) error {
	if err := c.clearFormula(); err != nil {
		return c.fail("write bool", err)
	}
	f, sheet, addr := c.engine()
	if err := f.SetCellBool(sheet, addr, v); err != nil {
		return c.fail("write bool", err)
	}
	return nil
}

// WriteFormula stores formula, with or without a leading '='. The engine
// does not evaluate it. The previous value is dropped, so the cell has no
// cached result until a spreadsheet application recalculates the file.
func (c *Cell) WriteFormula(formula string) error {
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if formula == "" {
		return c.fail("write formula", invalid("formula", `""`))
	}
	f, sheet, addr := c.engine()
	if err := f.SetCellDefault(sheet, addr, ""); err != nil {
		return c.fail("write formula", err)
	}
	if err := f.SetCellFormula(sheet, addr, formula); err != nil {
		return c.fail("write formula", err)
	}
	return nil
}

// WriteComment replaces the cell's comment.
func (c *Cell) WriteComment(author, text string) error {
	existing, err := c.Comment()
	if err != nil {
		return err
	}
	f, sheet, addr := c.engine()
	if existing != nil {
		if err := f.DeleteComment(sheet, addr); err != nil {
			return c.fail("write comment", err)
		}
	}
	err = f.AddComment(sheet, excelize.Comment{
		Cell:   addr,
		Author: author,
		Text:   text,
	})
	if err != nil {
		return c.fail("write comment", err)
	}
	return nil
}
