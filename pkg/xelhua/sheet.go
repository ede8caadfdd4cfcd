package xelhua

import (
	"fmt"
)

// Sheet is a handle to one worksheet. Handles are cached per document, so a
// lookup by the same name always returns the same *Sheet.
type Sheet struct {
	doc  *Document
	name string
	rows map[int]*Row

	// seeded is set once existing engine content has been indexed.
	seeded bool
}

// Name returns the sheet name as stored in the workbook.
func (s *Sheet) Name() string {
	return s.name
}

// Document returns the owning document.
func (s *Sheet) Document() *Document {
	return s.doc
}

// Index returns the 0-based position of the sheet, or -1 if it is gone.
func (s *Sheet) Index() int {
	for i, n := range s.doc.sheetNames() {
		if n == s.name {
			return i
		}
	}
	return -1
}

// seed indexes the rows and cells already holding values in the engine,
// so that row and cell iteration sees loaded content.
func (s *Sheet) seed() {
	if s.seeded {
		return
	}
	s.seeded = true

	rows, err := s.doc.file.Rows(s.name)
	if err != nil {
		s.doc.log.Debug().Err(err).Str("sheet", s.name).Msg("sheet not indexed")
		return
	}
	defer rows.Close()

	for r := 0; rows.Next(); r++ {
		cols, err := rows.Columns()
		if err != nil {
			s.doc.log.Debug().Err(err).Str("sheet", s.name).Int("row", r).Msg("sheet indexing stopped")
			return
		}
		for c, v := range cols {
			if v != "" {
				s.ensureRow(r).ensureCell(c)
			}
		}
	}
}

func (s *Sheet) ensureRow(index int) *Row {
	if r, ok := s.rows[index]; ok {
		return r
	}
	r := &Row{sheet: s, index: index, cells: make(map[int]*Cell)}
	s.rows[index] = r
	return r
}

// Row returns the row at the 0-based index, creating it if absent.
func (s *Sheet) Row(index int) (*Row, error) {
	if err := checkRow(index); err != nil {
		return nil, err
	}
	s.seed()
	if r, ok := s.rows[index]; ok {
		return r, nil
	}
	s.doc.log.Debug().Str("sheet", s.name).Int("row", index).Msg("row created")
	return s.ensureRow(index), nil
}

// RowOrNil returns the row at the 0-based index, or nil if it does not exist.
func (s *Sheet) RowOrNil(index int) *Row {
	s.seed()
	return s.rows[index]
}

// Rows returns the existing rows in ascending index order.
func (s *Sheet) Rows() []*Row {
	s.seed()
	keys := sortedKeys(s.rows)
	out := make([]*Row, len(keys))
	for i, k := range keys {
		out[i] = s.rows[k]
	}
	return out
}

// Cell returns the cell at 0-based (row, col), creating the row and cell as
// needed.
func (s *Sheet) Cell(row, col int) (*Cell, error) {
	r, err := s.Row(row)
	if err != nil {
		return nil, err
	}
	return r.Cell(col)
}

// CellAt is Cell with an A1-style address.
func (s *Sheet) CellAt(addr string) (*Cell, error) {
	row, col, err := ParseAddress(addr)
	if err != nil {
		return nil, err
	}
	return s.Cell(row, col)
}

func (s *Sheet) String() string {
	return fmt.Sprintf("Sheet(%q)", s.name)
}
