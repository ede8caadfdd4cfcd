// Package output renders command results as json, csv or tsv.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format represents output format options
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

// Tabular is implemented by results that have a row-oriented rendering.
// The first row is the header.
type Tabular interface {
	Table() [][]string
}

// ParseFormat validates a format name. An empty name means json.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatTSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: json, csv, tsv)", name)
	}
}

// Render writes v to w in the named format. Values that are not Tabular
// become a single field in csv and tsv.
func Render(w io.Writer, format string, v any) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	if f == FormatJSON {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	rows := [][]string{{fmt.Sprintf("%v", v)}}
	if t, ok := v.(Tabular); ok {
		rows = t.Table()
	}

	cw := csv.NewWriter(w)
	if f == FormatTSV {
		cw.Comma = '\t'
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", f, err)
	}
	return nil
}

// FormatSingle renders v into a byte slice.
func FormatSingle(format string, v any) ([]byte, error) {
	var buf strings.Builder
	if err := Render(&buf, format, v); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Print writes v to stdout.
func Print(v any, format string) error {
	if err := Render(os.Stdout, format, v); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}
