package workbook

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/elex-project/xelhua/internal/preset"
	"github.com/elex-project/xelhua/pkg/xelhua"
)

// Accepted layouts for date and datetime values, tried in order.
var (
	dateInputs     = []string{dateLayout, "2006/01/02", time.RFC3339}
	dateTimeInputs = []string{dateTimeLayout, "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02 15:04", time.RFC3339, dateLayout}
)

// save writes doc back to path. Legacy documents are upgraded first and land
// next to the original with an .xlsx suffix.
func save(doc *xelhua.Document, path string) (string, error) {
	if doc.Format() == xelhua.FormatLegacy {
		doc.Upgrade()
	}
	saved, err := doc.Save(path)
	if err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return saved, nil
}

// edit opens path, runs fn against the chosen sheet and saves the result.
func edit(path, sheet string, fn func(*xelhua.Sheet) error, opts ...xelhua.Option) (string, *xelhua.Sheet, error) {
	doc, err := Open(path, opts...)
	if err != nil {
		return "", nil, err
	}
	defer doc.Close()

	s, err := pickSheet(doc, sheet, true)
	if err != nil {
		return "", nil, err
	}
	if err := fn(s); err != nil {
		return "", nil, err
	}
	saved, err := save(doc, path)
	if err != nil {
		return "", nil, err
	}
	return saved, s, nil
}

// WriteCell writes value to the cell at addr using the writer typ selects.
// An empty pattern keeps the default date pattern.
func WriteCell(path, sheet, addr, value string, typ ValueType, pattern string, opts ...xelhua.Option) (*WriteResult, error) {
	res := &WriteResult{Address: strings.ToUpper(addr), Type: string(typ)}
	saved, s, err := edit(path, sheet, func(s *xelhua.Sheet) error {
		c, err := s.CellAt(addr)
		if err != nil {
			return err
		}
		if prev, err := readValue(c, TypeAuto); err == nil {
			res.Previous = prev.Value
		}
		res.Value, err = writeValue(c, value, typ, pattern)
		return err
	}, opts...)
	if err != nil {
		return nil, err
	}
	res.File, res.Sheet = saved, s.Name()
	return res, nil
}

// writeValue converts value to typ and stores it, returning what was stored.
func writeValue(c *xelhua.Cell, value string, typ ValueType, pattern string) (any, error) {
	switch typ {
	case TypeString:
		return value, c.WriteString(value)
	case TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, value)
		}
		return n, c.WriteNumber(n)
	case TypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, value)
		}
		return b, c.WriteBool(b)
	case TypeDate:
		t, err := parseTime(value, dateInputs)
		if err != nil {
			return nil, err
		}
		if pattern == "" {
			pattern = xelhua.DefaultDatePattern
		}
		return t.Format(dateLayout), c.WriteDateFormat(t, pattern)
	case TypeDateTime:
		t, err := parseTime(value, dateTimeInputs)
		if err != nil {
			return nil, err
		}
		if pattern == "" {
			pattern = xelhua.DefaultDateTimePattern
		}
		return t.Format(dateTimeLayout), c.WriteDateTimeFormat(t, pattern)
	case TypeFormula:
		f := strings.TrimPrefix(value, "=")
		return f, c.WriteFormula(f)
	}

	// auto
	switch {
	case strings.HasPrefix(value, "=") && len(value) > 1:
		return writeValue(c, value, TypeFormula, pattern)
	case value == "true" || value == "false":
		return writeValue(c, value, TypeBool, pattern)
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) && !strings.ContainsAny(value, "xX") {
		return n, c.WriteNumber(n)
	}
	return value, c.WriteString(value)
}

func parseTime(value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidValue, value)
}

// Create makes a new workbook with one sheet, an optional header row and
// optional data rows below it. The path gets an .xlsx suffix when it has none.
func Create(path, sheet string, headers []string, rows [][]any, overwrite bool, opts ...xelhua.Option) (*CreateResult, error) {
	if len(rows) > MaxCreateRows {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", ErrRowLimitExceeded, len(rows), MaxCreateRows)
	}
	target := xelhua.ResolveSavePath(path, xelhua.FormatModern)
	if _, err := os.Stat(target); err == nil && !overwrite {
		return nil, fmt.Errorf("%w: %s (use overwrite to replace)", ErrFileExists, target)
	}

	doc := xelhua.New(opts...)
	defer doc.Close()

	s, err := pickSheet(doc, sheet, true)
	if err != nil {
		return nil, err
	}

	first := 0
	if len(headers) > 0 {
		values := make([]any, len(headers))
		for i, h := range headers {
			values[i] = h
		}
		if err := writeRow(s, 0, values); err != nil {
			return nil, err
		}
		first = 1
	}
	for i, r := range rows {
		if err := writeRow(s, first+i, r); err != nil {
			return nil, err
		}
	}

	saved, err := save(doc, target)
	if err != nil {
		return nil, err
	}
	return &CreateResult{File: saved, Sheet: s.Name(), Headers: headers, Rows: len(rows)}, nil
}

// writeRow stores decoded JSON values: strings, float64s and bools. Nulls
// leave the cell empty.
func writeRow(s *xelhua.Sheet, index int, values []any) error {
	row, err := s.Row(index)
	if err != nil {
		return err
	}
	for col, v := range values {
		if v == nil {
			continue
		}
		c, err := row.Cell(col)
		if err != nil {
			return err
		}
		switch x := v.(type) {
		case string:
			err = c.WriteString(x)
		case float64:
			err = c.WriteNumber(x)
		case int:
			err = c.WriteNumber(float64(x))
		case bool:
			err = c.WriteBool(x)
		default:
			err = c.WriteString(fmt.Sprint(x))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge joins the cells of an A1-style range.
func Merge(path, sheet, rng string, opts ...xelhua.Option) (*MergeResult, error) {
	r, err := xelhua.ParseRange(rng)
	if err != nil {
		return nil, err
	}
	saved, s, err := edit(path, sheet, func(s *xelhua.Sheet) error {
		return s.MergeCells(r.FirstRow, r.LastRow, r.FirstCol, r.LastCol)
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &MergeResult{File: saved, Sheet: s.Name(), Range: r.String()}, nil
}

// Resize describes a set of layout changes. Columns are letters, rows are
// 1-based. Zero defaults are left unchanged.
type Resize struct {
	Widths        map[string]int
	Heights       map[int]float64
	DefaultWidth  int
	DefaultHeight int
}

// ParseResize reads "COL=CHARS" widths and "ROW=POINTS" heights.
func ParseResize(widths, heights []string) (Resize, error) {
	rz := Resize{Widths: map[string]int{}, Heights: map[int]float64{}}
	for _, w := range widths {
		col, v, ok := strings.Cut(w, "=")
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if !ok || err != nil || xelhua.ColumnNameToIndex(strings.TrimSpace(col)) < 0 {
			return rz, fmt.Errorf("%w: width %q (want COL=CHARS)", ErrInvalidValue, w)
		}
		rz.Widths[strings.ToUpper(strings.TrimSpace(col))] = n
	}
	for _, h := range heights {
		row, v, ok := strings.Cut(h, "=")
		r, rerr := strconv.Atoi(strings.TrimSpace(row))
		p, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if !ok || rerr != nil || perr != nil || r < 1 {
			return rz, fmt.Errorf("%w: height %q (want ROW=POINTS)", ErrInvalidValue, h)
		}
		rz.Heights[r] = p
	}
	return rz, nil
}

// ApplyResize sets the widths, heights and defaults in rz.
func ApplyResize(path, sheet string, rz Resize, opts ...xelhua.Option) (*LayoutResult, error) {
	res := &LayoutResult{}
	saved, s, err := edit(path, sheet, func(s *xelhua.Sheet) error {
		if rz.DefaultWidth > 0 {
			if err := s.SetDefaultWidth(rz.DefaultWidth); err != nil {
				return err
			}
		}
		if rz.DefaultHeight > 0 {
			if err := s.SetDefaultHeight(rz.DefaultHeight); err != nil {
				return err
			}
		}
		for _, col := range sortedColumns(rz.Widths) {
			i := xelhua.ColumnNameToIndex(col)
			if err := s.SetColumnWidth(i, rz.Widths[col]); err != nil {
				return fmt.Errorf("column %s: %w", col, err)
			}
			w, err := s.ColumnWidth(i)
			if err != nil {
				return err
			}
			res.Columns = append(res.Columns, Dimension{Target: col, Value: w})
		}
		rows := make([]int, 0, len(rz.Heights))
		for r := range rz.Heights {
			rows = append(rows, r)
		}
		sort.Ints(rows)
		for _, r := range rows {
			row, err := s.Row(r - 1)
			if err != nil {
				return fmt.Errorf("row %d: %w", r, err)
			}
			if err := row.SetHeight(rz.Heights[r]); err != nil {
				return fmt.Errorf("row %d: %w", r, err)
			}
			h, err := row.Height()
			if err != nil {
				return err
			}
			res.Rows = append(res.Rows, Dimension{Target: strconv.Itoa(r), Value: h})
		}
		return fillDefaults(s, res)
	}, opts...)
	if err != nil {
		return nil, err
	}
	res.File, res.Sheet = saved, s.Name()
	return res, nil
}

// AutoSize fits one column, or every column with a value in the first row
// when column is empty.
func AutoSize(path, sheet, column string, opts ...xelhua.Option) (*LayoutResult, error) {
	col := -1
	if column != "" {
		if col = xelhua.ColumnNameToIndex(column); col < 0 {
			return nil, fmt.Errorf("%w: column %q", xelhua.ErrInvalidIndex, column)
		}
	}

	res := &LayoutResult{}
	saved, s, err := edit(path, sheet, func(s *xelhua.Sheet) error {
		var cols []int
		if col >= 0 {
			if err := s.AutoSizeColumn(col); err != nil {
				return err
			}
			cols = []int{col}
		} else {
			if err := s.AutoSizeColumns(); err != nil {
				return err
			}
			if r := s.RowOrNil(0); r != nil {
				for _, c := range r.Cells() {
					cols = append(cols, c.ColumnIndex())
				}
			}
		}
		for _, i := range cols {
			w, err := s.ColumnWidth(i)
			if err != nil {
				return err
			}
			res.Columns = append(res.Columns, Dimension{Target: xelhua.ColumnIndexToName(i), Value: w})
		}
		return fillDefaults(s, res)
	}, opts...)
	if err != nil {
		return nil, err
	}
	res.File, res.Sheet = saved, s.Name()
	return res, nil
}

func fillDefaults(s *xelhua.Sheet, res *LayoutResult) error {
	var err error
	if res.DefaultWidth, err = s.DefaultWidth(); err != nil {
		return err
	}
	res.DefaultHeight, err = s.DefaultHeight()
	return err
}

func sortedColumns(m map[string]int) []string {
	cols := make([]string, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool {
		return xelhua.ColumnNameToIndex(cols[i]) < xelhua.ColumnNameToIndex(cols[j])
	})
	return cols
}

// ApplyPreset builds the named preset once and attaches it to every cell of
// the range, so all of them share one style.
func ApplyPreset(path, sheet, rng string, presets *preset.File, name string, opts ...xelhua.Option) (*StyleResult, error) {
	r, err := xelhua.ParseRange(rng)
	if err != nil {
		return nil, err
	}
	res := &StyleResult{Range: r.String(), Preset: name}
	saved, s, err := edit(path, sheet, func(s *xelhua.Sheet) error {
		style, err := presets.Build(s.Document(), name)
		if err != nil {
			return err
		}
		for row := r.FirstRow; row <= r.LastRow; row++ {
			for col := r.FirstCol; col <= r.LastCol; col++ {
				c, err := s.Cell(row, col)
				if err != nil {
					return err
				}
				if err := c.SetStyle(style); err != nil {
					return err
				}
				res.Cells++
			}
		}
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	res.File, res.Sheet = saved, s.Name()
	return res, nil
}
