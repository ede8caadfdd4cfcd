package xelhua

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

// Engine units: column widths in 1/256 character, row heights in 1/20 point.
const (
	widthUnit  = 256
	heightUnit = 20

	maxColumnChars = 255
	// Row heights above this are rejected by the engine.
	maxRowPoints = 409

	defaultBaseColWidth = 8
	defaultRowPoints    = 15
)

// MergeCells merges the block spanning the given 0-based rows and columns,
// both bounds inclusive. The block must cover at least two cells.
func (s *Sheet) MergeCells(firstRow, lastRow, firstCol, lastCol int) error {
	for _, err := range []error{checkRow(firstRow), checkRow(lastRow), checkCol(firstCol), checkCol(lastCol)} {
		if err != nil {
			return err
		}
	}
	rng := Range{FirstRow: firstRow, LastRow: lastRow, FirstCol: firstCol, LastCol: lastCol}
	if firstRow > lastRow || firstCol > lastCol {
		return fmt.Errorf("%w: reversed bounds rows %d-%d, columns %d-%d", ErrInvalidRange, firstRow, lastRow, firstCol, lastCol)
	}
	if firstRow == lastRow && firstCol == lastCol {
		return fmt.Errorf("%w: %s is a single cell", ErrInvalidRange, rng)
	}

	top := FormatAddress(firstRow, firstCol)
	bottom := FormatAddress(lastRow, lastCol)
	if err := s.doc.file.MergeCell(s.name, top, bottom); err != nil {
		return fmt.Errorf("failed to merge %s on %s: %w", rng, s.name, err)
	}
	return nil
}

// MergedCells lists the merged blocks of the sheet.
func (s *Sheet) MergedCells() ([]Range, error) {
	merged, err := s.doc.file.GetMergeCells(s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged cells of %s: %w", s.name, err)
	}
	out := make([]Range, 0, len(merged))
	for _, m := range merged {
		rng, err := ParseRange(m.GetStartAxis() + ":" + m.GetEndAxis())
		if err != nil {
			return nil, err
		}
		out = append(out, rng)
	}
	return out, nil
}

// SetColumnWidth sets the width of the 0-based column to chars characters.
func (s *Sheet) SetColumnWidth(col, chars int) error {
	if err := checkCol(col); err != nil {
		return err
	}
	if chars < 0 || chars > maxColumnChars {
		return fmt.Errorf("%w: column width %d", ErrInvalidValue, chars)
	}
	name := ColumnIndexToName(col)
	if err := s.doc.file.SetColWidth(s.name, name, name, float64(chars)); err != nil {
		return fmt.Errorf("failed to set width of column %s on %s: %w", name, s.name, err)
	}
	return nil
}

// ColumnWidth returns the width of the 0-based column in 1/256 character
// units.
func (s *Sheet) ColumnWidth(col int) (int, error) {
	if err := checkCol(col); err != nil {
		return 0, err
	}
	w, err := s.doc.file.GetColWidth(s.name, ColumnIndexToName(col))
	if err != nil {
		return 0, fmt.Errorf("failed to read width of column %d on %s: %w", col, s.name, err)
	}
	return int(math.Round(w * widthUnit)), nil
}

// SetHeight sets the row height in points, kept to 1/20 point precision.
// Fractions of a twip are truncated, so 1.15pt is stored as 22 twips.
func (r *Row) SetHeight(points float64) error {
	if points < 0 || points > maxRowPoints {
		return fmt.Errorf("%w: row height %g", ErrInvalidValue, points)
	}
	twips := int(points * heightUnit)
	if err := r.sheet.doc.file.SetRowHeight(r.sheet.name, r.index+1, float64(twips)/heightUnit); err != nil {
		return fmt.Errorf("failed to set height of row %d on %s: %w", r.index+1, r.sheet.name, err)
	}
	return nil
}

// Height returns the row height in 1/20 point units.
func (r *Row) Height() (int, error) {
	h, err := r.sheet.doc.file.GetRowHeight(r.sheet.name, r.index+1)
	if err != nil {
		return 0, fmt.Errorf("failed to read height of row %d on %s: %w", r.index+1, r.sheet.name, err)
	}
	return int(math.Round(h * heightUnit)), nil
}

// SetRowHeight sets the height of the 0-based row in points, creating the
// row if needed.
func (s *Sheet) SetRowHeight(row int, points float64) error {
	r, err := s.Row(row)
	if err != nil {
		return err
	}
	return r.SetHeight(points)
}

// SetWidth sets the width of the cell's column in characters.
func (c *Cell) SetWidth(chars int) error {
	return c.row.sheet.SetColumnWidth(c.col, chars)
}

// SetHeight sets the height of the cell's row in points.
func (c *Cell) SetHeight(points float64) error {
	return c.row.SetHeight(points)
}

// AutoSize fits the width of the cell's column.
func (c *Cell) AutoSize() error {
	return c.row.sheet.AutoSizeColumn(c.col)
}

// SetDefaultWidth sets the default column width in characters.
func (s *Sheet) SetDefaultWidth(chars int) error {
	if chars < 0 || chars > maxColumnChars {
		return fmt.Errorf("%w: default width %d", ErrInvalidValue, chars)
	}
	w := uint8(chars)
	if err := s.doc.file.SetSheetProps(s.name, &excelize.SheetPropsOptions{BaseColWidth: &w}); err != nil {
		return fmt.Errorf("failed to set default width on %s: %w", s.name, err)
	}
	return nil
}

// DefaultWidth returns the default column width in characters.
func (s *Sheet) DefaultWidth() (int, error) {
	props, err := s.doc.file.GetSheetProps(s.name)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet properties of %s: %w", s.name, err)
	}
	if props.BaseColWidth == nil {
		return defaultBaseColWidth, nil
	}
	return int(*props.BaseColWidth), nil
}

// SetDefaultHeight sets the default row height in points.
func (s *Sheet) SetDefaultHeight(points int) error {
	if points < 0 || points > maxRowPoints {
		return fmt.Errorf("%w: default height %d", ErrInvalidValue, points)
	}
	h := float64(points)
	custom := true
	err := s.doc.file.SetSheetProps(s.name, &excelize.SheetPropsOptions{
		DefaultRowHeight: &h,
		CustomHeight:     &custom,
	})
	if err != nil {
		return fmt.Errorf("failed to set default height on %s: %w", s.name, err)
	}
	return nil
}

// DefaultHeight returns the default row height in 1/20 point units.
func (s *Sheet) DefaultHeight() (int, error) {
	props, err := s.doc.file.GetSheetProps(s.name)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet properties of %s: %w", s.name, err)
	}
	if props.DefaultRowHeight == nil || *props.DefaultRowHeight == 0 {
		return defaultRowPoints * heightUnit, nil
	}
	return int(math.Round(*props.DefaultRowHeight * heightUnit)), nil
}

// AutoSizeColumn widens or narrows the 0-based column to fit its widest
// rendered value. Merged cells are ignored, and a column without content
// keeps its width.
func (s *Sheet) AutoSizeColumn(col int) error {
	if err := checkCol(col); err != nil {
		return err
	}
	if err := s.doc.flushStyles(); err != nil {
		return err
	}
	merged, err := s.MergedCells()
	if err != nil {
		return err
	}

	rows, err := s.doc.file.Rows(s.name)
	if err != nil {
		return fmt.Errorf("failed to read rows of %s: %w", s.name, err)
	}
	defer rows.Close()

	widest := 0.0
	for r := 0; rows.Next(); r++ {
		cols, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to read row %d of %s: %w", r+1, s.name, err)
		}
		if col >= len(cols) || cols[col] == "" || inMerged(merged, r, col) {
			continue
		}
		chars := 0
		for _, line := range strings.Split(cols[col], "\n") {
			chars = max(chars, runewidth.StringWidth(line))
		}
		w := float64(chars)*s.fontScale(r, col) + 1
		widest = max(widest, w)
	}
	if widest == 0 {
		return nil
	}

	width := math.Min(math.Ceil(widest), maxColumnChars)
	name := ColumnIndexToName(col)
	if err := s.doc.file.SetColWidth(s.name, name, name, width); err != nil {
		return fmt.Errorf("failed to set width of column %s on %s: %w", name, s.name, err)
	}
	s.doc.log.Debug().Str("sheet", s.name).Str("column", name).Float64("width", width).Msg("column auto-sized")
	return nil
}

// AutoSizeColumns auto-sizes every column that has a cell in row 0.
func (s *Sheet) AutoSizeColumns() error {
	first := s.RowOrNil(0)
	if first == nil {
		return nil
	}
	for _, c := range first.Cells() {
		if err := s.AutoSizeColumn(c.col); err != nil {
			return err
		}
	}
	return nil
}

// fontScale is the cell's font size relative to the default size.
func (s *Sheet) fontScale(row, col int) float64 {
	id, err := s.doc.file.GetCellStyle(s.name, FormatAddress(row, col))
	if err != nil {
		return 1
	}
	st, err := s.doc.file.GetStyle(id)
	if err != nil || st == nil || st.Font == nil || st.Font.Size <= 0 {
		return 1
	}
	return st.Font.Size / DefaultFontSize
}

func inMerged(merged []Range, row, col int) bool {
	for _, m := range merged {
		if row >= m.FirstRow && row <= m.LastRow && col >= m.FirstCol && col <= m.LastCol {
			return true
		}
	}
	return false
}
