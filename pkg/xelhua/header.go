package xelhua

import (
	"fmt"
	"strconv"
	"strings"
)

// CellByHeader returns the cell of r in the first column whose header cell
// reads exactly name. Header cells that cannot be read as text are skipped.
func (r *Row) CellByHeader(name string, header *Row) (*Cell, error) {
	if header == nil {
		return nil, fmt.Errorf("%w: %q: no header row", ErrHeaderNotFound, name)
	}
	for _, h := range header.Cells() {
		text, err := h.headerText()
		if err != nil {
			r.sheet.doc.log.Debug().Err(err).Str("cell", h.String()).Msg("header cell skipped")
			continue
		}
		if text == name {
			return r.Cell(h.col)
		}
	}
	return nil, fmt.Errorf("%w: %q in %s row %d", ErrHeaderNotFound, name, header.sheet.name, header.index+1)
}

// headerText renders a header cell as text. Numbers always carry a
// fractional part ("1.0"); formulas must have a text result.
func (c *Cell) headerText() (string, error) {
	k, err := c.Kind()
	if err != nil {
		return "", err
	}
	switch k {
	case KindString:
		return c.ReadString()
	case KindNumber:
		n, err := c.ReadNumeric()
		if err != nil {
			return "", err
		}
		return formatHeaderNumber(n), nil
	case KindBool:
		b, err := c.ReadBool()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case KindFormula:
		stored, err := c.storedKind()
		if err != nil {
			return "", err
		}
		if stored != KindString {
			return "", c.fail("read header", mismatch(stored, KindString))
		}
		return c.ReadString()
	default:
		return "", nil
	}
}

func formatHeaderNumber(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
