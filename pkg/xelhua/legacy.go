package xelhua

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/htmlindex"
)

// checkCharset validates a legacy text encoding name.
func checkCharset(name string) error {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil
	}
	if _, err := htmlindex.Get(name); err != nil {
		return fmt.Errorf("%w: charset %q: %v", ErrInvalidValue, name, err)
	}
	return nil
}

// importLegacy copies the values of an .xls workbook into a fresh engine
// workbook. Cells holding a number become numbers; everything else is text.
// Styles, merges and formulas are not carried over.
func importLegacy(r io.ReadSeeker, cfg config) (*excelize.File, error) {
	if err := checkCharset(cfg.charset); err != nil {
		return nil, err
	}
	wb, err := xls.OpenReader(r, cfg.charset)
	if err != nil {
		return nil, fmt.Errorf("failed to read xls document: %w", err)
	}

	f := excelize.NewFile()
	placeholder := f.GetSheetName(0)
	cells := 0

	for i := 0; i < wb.NumSheets(); i++ {
		src := wb.GetSheet(i)
		if src == nil {
			continue
		}
		name := src.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i)
		}
		if i == 0 {
			err = f.SetSheetName(placeholder, name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to import sheet %s: %w", name, err)
		}

		for r := 0; r <= int(src.MaxRow); r++ {
			row := src.Row(r)
			if row == nil {
				continue
			}
			for c := row.FirstCol(); c <= row.LastCol(); c++ {
				v := row.Col(c)
				if v == "" {
					continue
				}
				addr := FormatAddress(r, c)
				if n, perr := strconv.ParseFloat(v, 64); perr == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
					err = f.SetCellFloat(name, addr, n, -1, 64)
				} else {
					err = f.SetCellStr(name, addr, v)
				}
				if err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to import %s!%s: %w", name, addr, err)
				}
				cells++
			}
		}
	}

	cfg.logger.Debug().Int("sheets", wb.NumSheets()).Int("cells", cells).Msg("xls document imported")
	return f, nil
}
