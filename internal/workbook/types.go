// Package workbook runs single access-layer operations against files on
// disk. Each call opens the file, performs one operation, saves if it wrote
// anything and returns a result value that the CLI and MCP server render.
package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Limits on loaded files and created content.
const (
	MaxFileSize   = 50 * 1024 * 1024
	MaxCreateRows = 10000
)

// Error types
var (
	ErrFileTooLarge     = errors.New("file exceeds size limit")
	ErrFileExists       = errors.New("file already exists")
	ErrRowLimitExceeded = errors.New("row limit exceeded")
	ErrSheetNotFound    = errors.New("sheet not found")
	ErrNoSheets         = errors.New("workbook has no sheets")
	ErrInvalidValueType = errors.New("invalid value type")
	ErrInvalidValue     = errors.New("value does not match type")
)

// ValueType selects the typed reader or writer for a cell.
type ValueType string

const (
	TypeAuto     ValueType = "auto"
	TypeString   ValueType = "string"
	TypeNumber   ValueType = "number"
	TypeBool     ValueType = "bool"
	TypeDate     ValueType = "date"
	TypeDateTime ValueType = "datetime"
	TypeFormula  ValueType = "formula"
)

var valueTypes = []ValueType{TypeAuto, TypeString, TypeNumber, TypeBool, TypeDate, TypeDateTime, TypeFormula}

// ParseValueType parses a type name. The empty string means TypeAuto.
func ParseValueType(s string) (ValueType, error) {
	if s == "" {
		return TypeAuto, nil
	}
	for _, t := range valueTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of auto, string, number, bool, date, datetime, formula)", ErrInvalidValueType, s)
}

// SheetInfo describes one sheet of a workbook.
type SheetInfo struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Rows   int    `json:"rows"`
	Merged int    `json:"merged"`
}

// SheetsResult lists the sheets of a workbook.
type SheetsResult struct {
	File   string      `json:"file"`
	Format string      `json:"format"`
	Sheets []SheetInfo `json:"sheets"`
}

func (r *SheetsResult) Table() [][]string {
	rows := [][]string{{"index", "name", "rows", "merged"}}
	for _, s := range r.Sheets {
		rows = append(rows, []string{strconv.Itoa(s.Index), s.Name, strconv.Itoa(s.Rows), strconv.Itoa(s.Merged)})
	}
	return rows
}

// CellResult is a typed cell read.
type CellResult struct {
	Sheet   string `json:"sheet"`
	Address string `json:"address"`
	Kind    string `json:"kind"`
	Value   any    `json:"value"`
	Formula string `json:"formula,omitempty"`
	Comment string `json:"comment,omitempty"`
}

func (r *CellResult) Table() [][]string {
	return [][]string{
		{"sheet", "address", "kind", "value", "formula", "comment"},
		{r.Sheet, r.Address, r.Kind, formatValue(r.Value), r.Formula, r.Comment},
	}
}

// LookupResult is a cell found through its column header.
type LookupResult struct {
	CellResult
	Header    string `json:"header"`
	HeaderRow int    `json:"header_row"`
}

func (r *LookupResult) Table() [][]string {
	return [][]string{
		{"sheet", "address", "header", "kind", "value"},
		{r.Sheet, r.Address, r.Header, r.Kind, formatValue(r.Value)},
	}
}

// WriteResult reports a single cell write.
type WriteResult struct {
	File     string `json:"file"`
	Sheet    string `json:"sheet"`
	Address  string `json:"address"`
	Type     string `json:"type"`
	Previous any    `json:"previous_value,omitempty"`
	Value    any    `json:"new_value"`
}

func (r *WriteResult) Table() [][]string {
	return [][]string{
		{"file", "sheet", "address", "type", "previous", "value"},
		{r.File, r.Sheet, r.Address, r.Type, formatValue(r.Previous), formatValue(r.Value)},
	}
}

// CreateResult reports a newly created workbook.
type CreateResult struct {
	File    string   `json:"file"`
	Sheet   string   `json:"sheet"`
	Headers []string `json:"headers,omitempty"`
	Rows    int      `json:"rows_written,omitempty"`
}

func (r *CreateResult) Table() [][]string {
	return [][]string{
		{"file", "sheet", "headers", "rows"},
		{r.File, r.Sheet, strings.Join(r.Headers, ","), strconv.Itoa(r.Rows)},
	}
}

// MergeResult reports a merged region.
type MergeResult struct {
	File  string `json:"file"`
	Sheet string `json:"sheet"`
	Range string `json:"range"`
}

func (r *MergeResult) Table() [][]string {
	return [][]string{{"file", "sheet", "range"}, {r.File, r.Sheet, r.Range}}
}

// Dimension is one column width or row height after a layout change.
// Widths are in 1/256 character units, heights in twips.
type Dimension struct {
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// LayoutResult reports column widths and row heights after a resize or
// auto-size.
type LayoutResult struct {
	File          string      `json:"file"`
	Sheet         string      `json:"sheet"`
	Columns       []Dimension `json:"columns,omitempty"`
	Rows          []Dimension `json:"rows,omitempty"`
	DefaultWidth  int         `json:"default_width"`
	DefaultHeight int         `json:"default_height"`
}

func (r *LayoutResult) Table() [][]string {
	rows := [][]string{{"target", "value"}}
	for _, d := range r.Columns {
		rows = append(rows, []string{"column " + d.Target, strconv.Itoa(d.Value)})
	}
	for _, d := range r.Rows {
		rows = append(rows, []string{"row " + d.Target, strconv.Itoa(d.Value)})
	}
	rows = append(rows,
		[]string{"default width", strconv.Itoa(r.DefaultWidth)},
		[]string{"default height", strconv.Itoa(r.DefaultHeight)},
	)
	return rows
}

// StyleResult reports a preset applied over a range.
type StyleResult struct {
	File   string `json:"file"`
	Sheet  string `json:"sheet"`
	Range  string `json:"range"`
	Preset string `json:"preset"`
	Cells  int    `json:"cells"`
}

func (r *StyleResult) Table() [][]string {
	return [][]string{
		{"file", "sheet", "range", "preset", "cells"},
		{r.File, r.Sheet, r.Range, r.Preset, strconv.Itoa(r.Cells)},
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
