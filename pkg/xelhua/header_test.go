package xelhua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellByHeader(t *testing.T) {
	d := newTestDoc(t)
	s, err := d.Sheet("People")
	require.NoError(t, err)

	for col, name := range []string{"Name", "Email", "Age"} {
		c, err := s.Cell(0, col)
		require.NoError(t, err)
		require.NoError(t, c.WriteString(name))
	}
	header, err := s.Row(0)
	require.NoError(t, err)
	data, err := s.Row(3)
	require.NoError(t, err)

	c, err := data.CellByHeader("Email", header)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ColumnIndex())
	assert.Same(t, data, c.Row())

	same, err := data.CellByHeader("Email", header)
	require.NoError(t, err)
	assert.Same(t, c, same)

	_, err = data.CellByHeader("Phone", header)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
	assert.Contains(t, err.Error(), "Phone")

	_, err = data.CellByHeader("email", header)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestCellByHeaderStringifiesValues(t *testing.T) {
	d := newTestDoc(t)
	s, err := d.Sheet("Mixed")
	require.NoError(t, err)

	writers := []func(c *Cell) error{
		func(c *Cell) error { return c.WriteFormula("1+1") }, // no text result, skipped
		func(c *Cell) error { return c.WriteNumber(1) },
		func(c *Cell) error { return c.WriteNumber(3.25) },
		func(c *Cell) error { return c.WriteBool(false) },
		func(c *Cell) error { return c.WriteString("Total") },
	}
	for col, w := range writers {
		c, err := s.Cell(0, col)
		require.NoError(t, err)
		require.NoError(t, w(c))
	}
	header := s.RowOrNil(0)
	require.NotNil(t, header)
	data, err := s.Row(1)
	require.NoError(t, err)

	tests := []struct {
		name string
		col  int
	}{
		{"1.0", 1},
		{"3.25", 2},
		{"false", 3},
		{"Total", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := data.CellByHeader(tt.name, header)
			require.NoError(t, err)
			assert.Equal(t, tt.col, c.ColumnIndex())
		})
	}

	_, err = data.CellByHeader("1", header)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestFormatHeaderNumber(t *testing.T) {
	tests := map[float64]string{
		1:       "1.0",
		0:       "0.0",
		-2:      "-2.0",
		3.25:    "3.25",
		1e6:     "1000000.0",
		0.00001: "0.00001",
	}
	for n, want := range tests {
		assert.Equal(t, want, formatHeaderNumber(n))
	}
}
