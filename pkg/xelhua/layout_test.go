package xelhua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnWidthAndRowHeight(t *testing.T) {
	d := newTestDoc(t)
	s, err := d.Sheet("Layout")
	require.NoError(t, err)

	require.NoError(t, s.SetColumnWidth(0, 10))
	w, err := s.ColumnWidth(0)
	require.NoError(t, err)
	assert.Equal(t, 2560, w)

	require.NoError(t, s.SetRowHeight(0, 20))
	r := s.RowOrNil(0)
	require.NotNil(t, r)
	h, err := r.Height()
	require.NoError(t, err)
	assert.Equal(t, 400, h)

	c, err := s.Cell(2, 3)
	require.NoError(t, err)
	require.NoError(t, c.SetWidth(4))
	require.NoError(t, c.SetHeight(12.5))
	w, err = s.ColumnWidth(3)
	require.NoError(t, err)
	assert.Equal(t, 1024, w)
	h, err = c.Row().Height()
	require.NoError(t, err)
	assert.Equal(t, 250, h)

	// Fractions of a twip are truncated.
	require.NoError(t, s.SetRowHeight(4, 1.15))
	h, err = s.RowOrNil(4).Height()
	require.NoError(t, err)
	assert.Equal(t, 22, h)
	assert.Equal(t, 22, NewFontBuilder(d).Height(1.15).Get().HeightTwips())

	assert.ErrorIs(t, s.SetColumnWidth(0, 256), ErrInvalidValue)
	assert.ErrorIs(t, r.SetHeight(-1), ErrInvalidValue)
	assert.ErrorIs(t, s.SetColumnWidth(-1, 3), ErrInvalidIndex)
}

func TestDefaultSizes(t *testing.T) {
	d := newTestDoc(t)
	s, err := d.Sheet("Defaults")
	require.NoError(t, err)

	require.NoError(t, s.SetDefaultWidth(12))
	w, err := s.DefaultWidth()
	require.NoError(t, err)
	assert.Equal(t, 12, w)

	require.NoError(t, s.SetDefaultHeight(18))
	h, err := s.DefaultHeight()
	require.NoError(t, err)
	assert.Equal(t, 360, h)
}

func TestMergeCells(t *testing.T) {
	d := newTestDoc(t)
	s, err := d.Sheet("Merge")
	require.NoError(t, err)

	require.NoError(t, s.MergeCells(0, 1, 0, 2))
	merged, err := s.MergedCells()
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, Range{FirstRow: 0, LastRow: 1, FirstCol: 0, LastCol: 2}, merged[0])
	assert.Equal(t, "A1:C2", merged[0].String())

	assert.ErrorIs(t, s.MergeCells(4, 4, 1, 1), ErrInvalidRange)
	assert.ErrorIs(t, s.MergeCells(5, 4, 1, 2), ErrInvalidRange)
	assert.ErrorIs(t, s.MergeCells(0, 1, -1, 2), ErrInvalidIndex)
}

func TestAutoSizeColumn(t *testing.T) {
	d := newTestDoc(t)
	s, err := d.Sheet("Auto")
	require.NoError(t, err)

	values := []string{"id", "a much longer value", "mid"}
	for row, v := range values {
		c, err := s.Cell(row, 0)
		require.NoError(t, err)
		require.NoError(t, c.WriteString(v))
	}
	require.NoError(t, s.SetColumnWidth(1, 3))

	require.NoError(t, s.AutoSizeColumn(0))
	w, err := s.ColumnWidth(0)
	require.NoError(t, err)
	assert.Equal(t, (len(values[1])+1)*256, w)

	// An empty column keeps its width.
	require.NoError(t, s.AutoSizeColumn(1))
	w, err = s.ColumnWidth(1)
	require.NoError(t, err)
	assert.Equal(t, 3*256, w)
}

func TestAutoSizeScalesWithFontAndSkipsMerged(t *testing.T) {
	d := newTestDoc(t)
	s, err := d.Sheet("Auto")
	require.NoError(t, err)

	big := NewStyleBuilder(d).Font(NewFontBuilder(d).Height(22).Get())
	require.NoError(t, big.Err())

	head, err := s.Cell(0, 0)
	require.NoError(t, err)
	require.NoError(t, head.WriteString("abcd"))
	require.NoError(t, head.SetStyle(big.Get()))

	wide, err := s.Cell(1, 0)
	require.NoError(t, err)
	require.NoError(t, wide.WriteString("this text spans a merged block"))
	require.NoError(t, s.MergeCells(1, 1, 0, 3))

	other, err := s.Cell(0, 1)
	require.NoError(t, err)
	require.NoError(t, other.WriteString("xy"))

	require.NoError(t, s.AutoSizeColumns())

	w, err := s.ColumnWidth(0)
	require.NoError(t, err)
	assert.Equal(t, 9*256, w, "4 chars at double size plus padding")
	w, err = s.ColumnWidth(1)
	require.NoError(t, err)
	assert.Equal(t, 3*256, w)
}

func TestAutoSizeColumnsOnlyUsesFirstRow(t *testing.T) {
	d := newTestDoc(t)
	s, err := d.Sheet("Auto")
	require.NoError(t, err)

	head, err := s.Cell(0, 0)
	require.NoError(t, err)
	require.NoError(t, head.WriteString("name"))
	late, err := s.Cell(3, 5)
	require.NoError(t, err)
	require.NoError(t, late.WriteString("a value far wider than the default column"))

	before, err := s.ColumnWidth(5)
	require.NoError(t, err)
	require.NoError(t, s.AutoSizeColumns())

	after, err := s.ColumnWidth(5)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	w, err := s.ColumnWidth(0)
	require.NoError(t, err)
	assert.Equal(t, 5*256, w)
}
