package xelhua

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteDateUsesDefaultPattern(t *testing.T) {
	d := newTestDoc(t)
	c := newTestCell(t, d, "A1")
	day := time.Date(2024, time.February, 29, 17, 45, 0, 0, time.Local)

	require.NoError(t, c.WriteDate(day))

	style, err := c.Style()
	require.NoError(t, err)
	assert.Equal(t, DefaultDatePattern, style.DataFormat())

	got, err := c.ReadDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local), got)

	n, err := c.ReadNumeric()
	require.NoError(t, err)
	assert.Equal(t, 45351.0, n)
}

func TestWriteDateTimeRoundTrip(t *testing.T) {
	d := newTestDoc(t)
	c := newTestCell(t, d, "B2")
	at := time.Date(2021, time.July, 4, 13, 14, 15, 0, time.Local)

	require.NoError(t, c.WriteDateTime(at))

	loaded := reopen(t, d)
	s := loaded.SheetOrNil("Sheet")
	require.NotNil(t, s)
	lc, err := s.CellAt("B2")
	require.NoError(t, err)

	got, err := lc.ReadDateTime()
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "got %v, want %v", got, at)

	st, err := lc.Style()
	require.NoError(t, err)
	assert.Equal(t, DefaultDateTimePattern, st.DataFormat())
}

func TestWriteDateFormatReplacesStyle(t *testing.T) {
	d := newTestDoc(t)
	c := newTestCell(t, d, "C3")
	bold := NewStyleBuilder(d).Font(NewFontBuilder(d).Bold(true).Get())
	require.NoError(t, bold.Err())
	require.NoError(t, c.SetStyle(bold.Get()))

	require.NoError(t, c.WriteDateFormat(time.Now(), "dd/mm/yyyy"))

	st, err := c.Style()
	require.NoError(t, err)
	assert.NotSame(t, bold.Get(), st)
	assert.Equal(t, "dd/mm/yyyy", st.DataFormat())
}

func TestReadDateRequiresDateFormat(t *testing.T) {
	d := newTestDoc(t)
	plain := newTestCell(t, d, "A1")
	require.NoError(t, plain.WriteNumber(45000))

	_, err := plain.ReadDate()
	assert.ErrorIs(t, err, ErrNotDateFormatted)

	text := newTestCell(t, d, "A2")
	require.NoError(t, text.WriteString("2024-01-01"))
	_, err = text.ReadDateTime()
	assert.ErrorIs(t, err, ErrNotDateFormatted)

	builtin := newTestCell(t, d, "A3")
	id, err := d.Engine().NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, d.Engine().SetCellStyle("Sheet", "A3", "A3", id))
	require.NoError(t, builtin.WriteNumber(45000))
	got, err := builtin.ReadDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.Local), got)
}

func TestDateReadersFollowUnsyncedStyle(t *testing.T) {
	d := newTestDoc(t)

	num := newTestCell(t, d, "A1")
	require.NoError(t, num.WriteNumber(45000))
	b, err := StyleBuilderForCell(num)
	require.NoError(t, err)
	require.NoError(t, b.DataFormat("yyyy-mm-dd").Err())

	got, err := num.ReadDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.Local), got)

	day := newTestCell(t, d, "A2")
	require.NoError(t, day.WriteDate(time.Date(2024, time.May, 6, 0, 0, 0, 0, time.Local)))
	b, err = StyleBuilderForCell(day)
	require.NoError(t, err)
	require.NoError(t, b.DataFormat("0.00").Err())

	_, err = day.ReadDate()
	assert.ErrorIs(t, err, ErrNotDateFormatted)
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-MM-dd", true},
		{"HH:mm:ss", true},
		{"[h]:mm", true},
		{"[$-409]mmm d", true},
		{"0.00", false},
		{"General", false},
		{`"day" 0`, false},
		{`\d 0`, false},
		{"[Red]0.00", false},
		{"0;[Red]-0;yyyy", false},
		{"#,##0_);(#,##0)", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormatCode(tt.code))
		})
	}
}

func TestBuiltinDateFormats(t *testing.T) {
	for _, id := range []int{14, 22, 27, 36, 45, 47, 50, 58} {
		assert.True(t, isBuiltinDateFormat(id), "id %d", id)
	}
	for _, id := range []int{0, 1, 13, 23, 26, 37, 44, 48, 49, 59} {
		assert.False(t, isBuiltinDateFormat(id), "id %d", id)
	}
}

func TestTimeToSerial(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"first day", time.Date(1900, time.January, 1, 0, 0, 0, 0, time.Local), 1},
		{"before leap bug", time.Date(1900, time.February, 28, 0, 0, 0, 0, time.Local), 59},
		{"after leap bug", time.Date(1900, time.March, 1, 0, 0, 0, 0, time.Local), 61},
		{"y2k", time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local), 36526},
		{"noon", time.Date(2020, time.January, 1, 12, 0, 0, 0, time.Local), 43831.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, timeToSerial(tt.t), 1e-9)
		})
	}
}
