package xelhua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		addr     string
		row, col int
		wantErr  bool
	}{
		{"A1", 0, 0, false},
		{"b3", 2, 1, false},
		{"AA10", 9, 26, false},
		{"XFD1048576", MaxRows - 1, MaxColumns - 1, false},
		{"XFE1", 0, 0, true},
		{"A0", 0, 0, true},
		{"A1048577", 0, 0, true},
		{"", 0, 0, true},
		{"1A", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			row, col, err := ParseAddress(tt.addr)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, FormatAddress(row, col), FormatAddress(tt.row, tt.col))
		})
	}
}

func TestColumnNames(t *testing.T) {
	for col, name := range map[int]string{0: "A", 25: "Z", 26: "AA", 701: "ZZ", 702: "AAA"} {
		assert.Equal(t, name, ColumnIndexToName(col))
		assert.Equal(t, col, ColumnNameToIndex(name))
	}
	assert.Equal(t, -1, ColumnNameToIndex("A1"))
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("C10:A1")
	require.NoError(t, err)
	assert.Equal(t, Range{FirstRow: 0, LastRow: 9, FirstCol: 0, LastCol: 2}, r)
	assert.Equal(t, "A1:C10", r.String())

	single, err := ParseRange("B2")
	require.NoError(t, err)
	assert.Equal(t, "B2", single.String())

	_, err = ParseRange("A1:B2:C3")
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = ParseRange("A1:??")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestParseEnums(t *testing.T) {
	c, err := ParseColor("light_blue")
	require.NoError(t, err)
	assert.Equal(t, LightBlue, c)
	c, err = ParseColor("#a1b2c3")
	require.NoError(t, err)
	assert.Equal(t, Color("A1B2C3"), c)
	_, err = ParseColor("mauve-ish")
	assert.ErrorIs(t, err, ErrInvalidValue)

	p, err := ParseFillPattern("SOLID")
	require.NoError(t, err)
	assert.Equal(t, FillSolid, p)
	assert.Equal(t, "gray_0625", FillGray0625.String())

	b, err := ParseBorderStyle("medium_dashed")
	require.NoError(t, err)
	assert.Equal(t, BorderMediumDashed, b)
	_, err = ParseBorderStyle("wavy")
	assert.ErrorIs(t, err, ErrInvalidValue)

	h, err := ParseHorizontalAlignment("centercontinuous")
	require.NoError(t, err)
	assert.Equal(t, AlignCenterContinuous, h)

	v, err := ParseVerticalAlignment("middle")
	require.NoError(t, err)
	assert.Equal(t, AlignMiddle, v)
}
