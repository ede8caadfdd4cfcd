package xelhua

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Default number formats for date writes.
const (
	DefaultDatePattern     = "yyyy-MM-dd"
	DefaultDateTimePattern = "yyyy-MM-dd HH:mm:ss"
)

var (
	serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	// Serial 60 is the nonexistent 1900-02-29; earlier dates sit one lower.
	leapBugEnd = time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC)
)

// isBuiltinDateFormat reports whether a built-in number format ID renders as
// a date or time.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code renders its first
// section as a date or time. Quoted text, escaped characters and bracketed
// modifiers are ignored, except elapsed-time brackets like [h].
func isDateFormatCode(code string) bool {
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch ch {
		case ';':
			return false
		case '"':
			end := strings.IndexByte(code[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case '\\', '_', '*':
			i++
		case '[':
			end := strings.IndexByte(code[i+1:], ']')
			if end < 0 {
				return false
			}
			switch strings.ToLower(code[i+1 : i+1+end]) {
			case "h", "hh", "m", "mm", "s", "ss":
				return true
			}
			i += end + 1
		default:
			switch ch | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}

// timeToSerial converts t's wall clock in time.Local to a 1900-system serial.
func timeToSerial(t time.Time) float64 {
	lt := t.In(time.Local)
	wall := time.Date(lt.Year(), lt.Month(), lt.Day(), lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), time.UTC)

	secs := wall.Unix() - serialEpoch.Unix()
	serial := float64(secs)/86400 + float64(wall.Nanosecond())/86400e9
	if wall.Before(leapBugEnd) {
		serial--
	}
	return serial
}

// serialToTime converts a 1900-system serial to a wall-clock time in
// time.Local, rounded to the millisecond.
func serialToTime(serial float64) (time.Time, error) {
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	t = t.Round(time.Millisecond)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local), nil
}

// dateFormatted reports whether the cell's number format is a date format.
// A cell with a registry entry is judged by the entry, which may hold
// changes not yet synced to the engine.
func (c *Cell) dateFormatted() (bool, error) {
	var st *excelize.Style
	if s, ok := c.doc().owner[c.key()]; ok {
		st = s.Definition()
	} else {
		f, sheet, addr := c.engine()
		id, err := f.GetCellStyle(sheet, addr)
		if err != nil {
			return false, err
		}
		if st, err = f.GetStyle(id); err != nil || st == nil {
			return false, err
		}
	}
	if st.CustomNumFmt != nil && *st.CustomNumFmt != "" {
		return isDateFormatCode(*st.CustomNumFmt), nil
	}
	return isBuiltinDateFormat(st.NumFmt), nil
}

func (c *Cell) dateSerial(op string) (float64, error) {
	k, err := c.valueKind()
	if err != nil {
		return 0, err
	}
	if k != KindNumber {
		return 0, c.fail(op, fmt.Errorf("%w: holds %s", ErrNotDateFormatted, k))
	}
	ok, err := c.dateFormatted()
	if err != nil {
		return 0, c.fail(op, err)
	}
	if !ok {
		return 0, c.fail(op, ErrNotDateFormatted)
	}
	return c.number(op)
}

// ReadDateTime decodes a date-formatted number as wall-clock time in
// time.Local.
func (c *Cell) ReadDateTime() (time.Time, error) {
	serial, err := c.dateSerial("read datetime")
	if err != nil {
		return time.Time{}, err
	}
	t, err := serialToTime(serial)
	if err != nil {
		return time.Time{}, c.fail("read datetime", fmt.Errorf("%w: serial %v", ErrMalformedNumber, serial))
	}
	return t, nil
}

// ReadDate is ReadDateTime truncated to midnight.
func (c *Cell) ReadDate() (time.Time, error) {
	serial, err := c.dateSerial("read date")
	if err != nil {
		return time.Time{}, err
	}
	t, err := serialToTime(serial)
	if err != nil {
		return time.Time{}, c.fail("read date", fmt.Errorf("%w: serial %v", ErrMalformedNumber, serial))
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// WriteDate stores t's calendar date with DefaultDatePattern.
func (c *Cell) WriteDate(t time.Time) error {
	return c.WriteDateFormat(t, DefaultDatePattern)
}

// WriteDateFormat stores t's calendar date under a fresh style carrying
// pattern. Any previous style on the cell is replaced.
func (c *Cell) WriteDateFormat(t time.Time, pattern string) error {
	lt := t.In(time.Local)
	return c.writeSerial("write date", time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.Local), pattern)
}

// WriteDateTime stores t with DefaultDateTimePattern.
func (c *Cell) WriteDateTime(t time.Time) error {
	return c.WriteDateTimeFormat(t, DefaultDateTimePattern)
}

// WriteDateTimeFormat stores t, time of day included, under a fresh style
// carrying pattern.
func (c *Cell) WriteDateTimeFormat(t time.Time, pattern string) error {
	return c.writeSerial("write datetime", t, pattern)
}

func (c *Cell) writeSerial(op string, t time.Time, pattern string) error {
	b := NewStyleBuilder(c.doc()).DataFormat(pattern)
	if err := b.Err(); err != nil {
		return c.fail(op, err)
	}
	if err := c.SetStyle(b.Get()); err != nil {
		return err
	}
	if err := c.clearFormula(); err != nil {
		return c.fail(op, err)
	}
	f, sheet, addr := c.engine()
	if err := f.SetCellFloat(sheet, addr, timeToSerial(t), -1, 64); err != nil {
		return c.fail(op, err)
	}
	return nil
}
