package xelhua

// Row is a handle to one 0-based row of a sheet.
type Row struct {
	sheet *Sheet
	index int
	cells map[int]*Cell
}

// Index returns the 0-based row index.
func (r *Row) Index() int {
	return r.index
}

// Sheet returns the owning sheet.
func (r *Row) Sheet() *Sheet {
	return r.sheet
}

func (r *Row) ensureCell(col int) *Cell {
	if c, ok := r.cells[col]; ok {
		return c
	}
	c := &Cell{row: r, col: col}
	r.cells[col] = c
	return c
}

// Cell returns the cell at the 0-based column, creating it if absent.
func (r *Row) Cell(col int) (*Cell, error) {
	if err := checkCol(col); err != nil {
		return nil, err
	}
	if c, ok := r.cells[col]; ok {
		return c, nil
	}
	return r.ensureCell(col), nil
}

// CellOrNil returns the cell at the 0-based column, or nil.
func (r *Row) CellOrNil(col int) *Cell {
	return r.cells[col]
}

// Cells returns the existing cells in ascending column order.
func (r *Row) Cells() []*Cell {
	keys := sortedKeys(r.cells)
	out := make([]*Cell, len(keys))
	for i, k := range keys {
		out[i] = r.cells[k]
	}
	return out
}
