package xelhua

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

type cellRef struct {
	sheet    string
	row, col int
}

// Style is an entry in a document's style registry. Cells hold the entry
// itself, so a change made through a StyleBuilder reaches every cell it is
// attached to the next time the document syncs styles with the engine.
type Style struct {
	doc   *Document
	index int
	def   excelize.Style
	font  *Font

	// origin is the engine style this entry was imported from while cells
	// using it have not been claimed yet; -1 otherwise.
	origin   int
	engineID int
	applied  string
}

// Index returns the entry's position in the registry.
func (s *Style) Index() int {
	return s.index
}

// Document returns the owning document.
func (s *Style) Document() *Document {
	return s.doc
}

// Font returns the attached font, or nil.
func (s *Style) Font() *Font {
	return s.font
}

// DataFormat returns the custom number format code, or "" for a built-in one.
func (s *Style) DataFormat() string {
	if s.def.CustomNumFmt == nil {
		return ""
	}
	return *s.def.CustomNumFmt
}

var borderRank = map[string]int{"left": 0, "top": 1, "right": 2, "bottom": 3}

// Definition returns the resolved engine definition. Borders are ordered by
// edge, so the result does not depend on the order attributes were set in.
func (s *Style) Definition() *excelize.Style {
	st := s.def
	st.Border = append([]excelize.Border(nil), s.def.Border...)
	sort.SliceStable(st.Border, func(i, j int) bool {
		return borderRank[st.Border[i].Type] < borderRank[st.Border[j].Type]
	})
	st.Fill.Color = append([]string(nil), s.def.Fill.Color...)
	if s.def.Alignment != nil {
		a := *s.def.Alignment
		st.Alignment = &a
	}
	if s.def.CustomNumFmt != nil {
		code := *s.def.CustomNumFmt
		st.CustomNumFmt = &code
	}
	if s.font != nil {
		f := s.font.def
		st.Font = &f
	}
	return &st
}

func (s *Style) fingerprint() string {
	b, err := json.Marshal(s.Definition())
	if err != nil {
		// Definition holds only plain fields.
		panic(err)
	}
	return string(b)
}

func (s *Style) alignment() *excelize.Alignment {
	if s.def.Alignment == nil {
		s.def.Alignment = &excelize.Alignment{}
	}
	return s.def.Alignment
}

func (s *Style) border(edge string) *excelize.Border {
	for i := range s.def.Border {
		if s.def.Border[i].Type == edge {
			return &s.def.Border[i]
		}
	}
	s.def.Border = append(s.def.Border, excelize.Border{Type: edge})
	return &s.def.Border[len(s.def.Border)-1]
}

func (s *Style) setFill(fg, bg Color, pattern FillPattern) {
	colors := []string{string(fg)}
	if bg != "" {
		colors = append(colors, string(bg))
	}
	s.def.Fill = excelize.Fill{Type: "pattern", Pattern: int(pattern), Color: colors}
}

func (s *Style) String() string {
	return fmt.Sprintf("Style(%d)", s.index)
}

// NewStyle appends a fresh entry with the engine's default look.
func (d *Document) NewStyle() *Style {
	s := &Style{doc: d, index: len(d.styles), origin: -1, engineID: -1}
	d.styles = append(d.styles, s)
	return s
}

// StyleAt returns the registry entry at index.
func (d *Document) StyleAt(index int) (*Style, error) {
	if index < 0 || index >= len(d.styles) {
		return nil, fmt.Errorf("%w: index %d", ErrStyleNotFound, index)
	}
	return d.styles[index], nil
}

// StyleCount returns the number of registry entries.
func (d *Document) StyleCount() int {
	return len(d.styles)
}

// importStyle returns the entry standing for engine style id, registering it
// on first use.
func (d *Document) importStyle(id int) (*Style, error) {
	if s, ok := d.imported[id]; ok {
		return s, nil
	}
	def, err := d.file.GetStyle(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine style %d: %w", id, err)
	}

	s := d.NewStyle()
	if def != nil {
		s.def = *def
		if def.Font != nil {
			s.font = d.newFontFrom(*def.Font)
		}
		s.def.Font = nil
	}
	s.origin = id
	s.engineID = id
	s.applied = s.fingerprint()
	d.imported[id] = s
	d.engineID.Set(s.applied, id)

	d.log.Debug().Int("engine_id", id).Int("style", s.index).Msg("engine style imported")
	return s, nil
}

// attach makes s the style of the cell at ref and pushes it to the engine.
func (d *Document) attach(s *Style, ref cellRef) error {
	if old, ok := d.owner[ref]; ok && old != s {
		delete(d.refs[old], ref)
	}
	d.addRef(s, ref)

	if err := d.syncStyle(s); err != nil {
		return err
	}
	addr := FormatAddress(ref.row, ref.col)
	return d.file.SetCellStyle(ref.sheet, addr, addr, s.engineID)
}

func (d *Document) addRef(s *Style, ref cellRef) {
	d.owner[ref] = s
	if d.refs[s] == nil {
		d.refs[s] = make(map[cellRef]struct{})
	}
	d.refs[s][ref] = struct{}{}
}

// claim adopts every unowned cell that still carries the engine style s was
// imported from, so a change to s reaches them too.
func (d *Document) claim(s *Style) error {
	origin := s.origin
	s.origin = -1

	for _, sheet := range d.file.GetSheetList() {
		rng, ok, err := d.usedRange(sheet)
		if err != nil {
			return fmt.Errorf("failed to scan sheet %s: %w", sheet, err)
		}
		if !ok {
			continue
		}
		for r := rng.FirstRow; r <= rng.LastRow; r++ {
			for c := rng.FirstCol; c <= rng.LastCol; c++ {
				ref := cellRef{sheet: sheet, row: r, col: c}
				if _, owned := d.owner[ref]; owned {
					continue
				}
				id, err := d.file.GetCellStyle(sheet, FormatAddress(r, c))
				if err != nil {
					return fmt.Errorf("failed to scan sheet %s: %w", sheet, err)
				}
				if id != origin {
					continue
				}
				d.addRef(s, ref)
			}
		}
	}
	return nil
}

// usedRange is the block covering both the recorded sheet dimension and
// every row the engine holds.
func (d *Document) usedRange(sheet string) (Range, bool, error) {
	var rng Range
	found := false
	if dim, err := d.file.GetSheetDimension(sheet); err == nil {
		if r, err := ParseRange(dim); err == nil {
			rng, found = r, true
		}
	}

	rows, err := d.file.Rows(sheet)
	if err != nil {
		return Range{}, false, err
	}
	defer rows.Close()
	for r := 0; rows.Next(); r++ {
		cols, err := rows.Columns()
		if err != nil {
			return Range{}, false, err
		}
		if len(cols) == 0 {
			continue
		}
		if !found {
			rng, found = Range{FirstRow: r, LastRow: r, FirstCol: 0, LastCol: len(cols) - 1}, true
		}
		rng.FirstRow = min(rng.FirstRow, r)
		rng.LastRow = max(rng.LastRow, r)
		rng.FirstCol = 0
		rng.LastCol = max(rng.LastCol, len(cols)-1)
	}
	return rng, found, nil
}

// syncStyle registers the current definition of s with the engine if it
// changed, and restyles every cell referencing s.
func (d *Document) syncStyle(s *Style) error {
	fp := s.fingerprint()
	if fp == s.applied && s.engineID >= 0 {
		return nil
	}
	if s.origin >= 0 {
		if err := d.claim(s); err != nil {
			return err
		}
	}

	id, ok := d.engineID.Get(fp)
	if !ok {
		var err error
		id, err = d.file.NewStyle(s.Definition())
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", s, err)
		}
		d.engineID.Set(fp, id)
	}
	s.engineID = id
	s.applied = fp

	for ref := range d.refs[s] {
		addr := FormatAddress(ref.row, ref.col)
		if err := d.file.SetCellStyle(ref.sheet, addr, addr, id); err != nil {
			return fmt.Errorf("failed to apply %s to %s!%s: %w", s, ref.sheet, addr, err)
		}
	}

	d.log.Debug().Int("style", s.index).Int("engine_id", id).Int("cells", len(d.refs[s])).Msg("style synced")
	return nil
}

// flushStyles pushes every pending style change into the engine.
func (d *Document) flushStyles() error {
	for _, s := range d.styles {
		if len(d.refs[s]) == 0 && s.origin < 0 {
			continue
		}
		if err := d.syncStyle(s); err != nil {
			return err
		}
	}
	return nil
}

// SetStyle attaches s to the cell. The style must belong to the same
// document.
func (c *Cell) SetStyle(s *Style) error {
	if s == nil || s.doc != c.doc() {
		return c.fail("set style", fmt.Errorf("%w: style from another document", ErrStyleNotFound))
	}
	if err := c.doc().attach(s, c.key()); err != nil {
		return c.fail("set style", err)
	}
	return nil
}

// Style returns the cell's registry entry. A cell with no entry yet reports
// its engine style, imported into the registry.
func (c *Cell) Style() (*Style, error) {
	d := c.doc()
	ref := c.key()
	if s, ok := d.owner[ref]; ok {
		return s, nil
	}

	f, sheet, addr := c.engine()
	id, err := f.GetCellStyle(sheet, addr)
	if err != nil {
		return nil, c.fail("style", err)
	}
	s, err := d.importStyle(id)
	if err != nil {
		return nil, c.fail("style", err)
	}
	d.addRef(s, ref)
	return s, nil
}
