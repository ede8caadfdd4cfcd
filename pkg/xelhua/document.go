// Package xelhua is a get-or-create access layer over excelize workbooks,
// with typed cell I/O and fluent style and font builders.
//
// A Document and everything reached from it is a single mutable object graph
// without locking; callers serialize access.
package xelhua

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/elex-project/xelhua/internal/cache"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Format is the on-disk serialization a Document came from or will be saved as.
type Format int

const (
	// FormatModern is the zip-based .xlsx format.
	FormatModern Format = iota
	// FormatLegacy is the binary .xls format.
	FormatLegacy
)

func (f Format) String() string {
	if f == FormatLegacy {
		return "xls"
	}
	return "xlsx"
}

// Extension returns the file suffix for the format, with the leading dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// DetectFormat picks a format from the file name alone. Names ending in "xls"
// are legacy; anything else, including names with no extension, is modern.
// The content is never inspected.
func DetectFormat(name string) Format {
	if strings.HasSuffix(name, "xls") {
		return FormatLegacy
	}
	return FormatModern
}

// Document is an open spreadsheet.
type Document struct {
	file   *excelize.File
	format Format
	log    zerolog.Logger

	// placeholder is the engine's mandatory first sheet on a fresh document,
	// hidden until the first sheet the caller creates claims it.
	placeholder string
	sheets      map[string]*Sheet

	styles   []*Style
	fonts    []*Font
	imported map[int]*Style
	owner    map[cellRef]*Style
	refs     map[*Style]map[cellRef]struct{}
	engineID *cache.LRU
}

// New returns an empty modern document with no visible sheets.
func New(opts ...Option) *Document {
	f := excelize.NewFile()
	d := newDocument(f, FormatModern, newConfig(opts))
	d.placeholder = f.GetSheetName(0)
	return d
}

// Open loads the document at path, choosing the format with DetectFormat.
func Open(path string, opts ...Option) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer fh.Close()

	d, err := OpenReader(fh, DetectFormat(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return d, nil
}

// OpenReader loads a document of the given format from r.
func OpenReader(r io.Reader, format Format, opts ...Option) (*Document, error) {
	cfg := newConfig(opts)

	if format == FormatLegacy {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read legacy document: %w", err)
		}
		f, err := importLegacy(bytes.NewReader(data), cfg)
		if err != nil {
			return nil, err
		}
		return newDocument(f, FormatLegacy, cfg), nil
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx document: %w", err)
	}
	return newDocument(f, FormatModern, cfg), nil
}

func newDocument(f *excelize.File, format Format, cfg config) *Document {
	return &Document{
		file:     f,
		format:   format,
		log:      cfg.logger,
		sheets:   make(map[string]*Sheet),
		imported: make(map[int]*Style),
		owner:    make(map[cellRef]*Style),
		refs:     make(map[*Style]map[cellRef]struct{}),
		engineID: cache.New(cfg.styleCacheSize),
	}
}

// Format reports the document's format.
func (d *Document) Format() Format {
	return d.format
}

// Upgrade switches a legacy document to the modern format so it can be
// written. It is a no-op on modern documents.
func (d *Document) Upgrade() {
	if d.format == FormatLegacy {
		d.log.Debug().Msg("document upgraded to xlsx")
	}
	d.format = FormatModern
}

// Engine exposes the wrapped excelize workbook for operations this layer
// does not cover. Style changes made through it bypass the registry.
func (d *Document) Engine() *excelize.File {
	return d.file
}

// Close releases the engine's resources.
func (d *Document) Close() error {
	return d.file.Close()
}

func (d *Document) sheetNames() []string {
	names := d.file.GetSheetList()
	if d.placeholder == "" {
		return names
	}
	visible := names[:0:0]
	for _, n := range names {
		if n != d.placeholder {
			visible = append(visible, n)
		}
	}
	return visible
}

func (d *Document) resolveSheet(name string) (string, bool) {
	for _, s := range d.sheetNames() {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}

func (d *Document) handle(name string) *Sheet {
	key := strings.ToLower(name)
	if s, ok := d.sheets[key]; ok {
		return s
	}
	s := &Sheet{doc: d, name: name, rows: make(map[int]*Row)}
	d.sheets[key] = s
	return s
}

// SheetCount returns the number of sheets.
func (d *Document) SheetCount() int {
	return len(d.sheetNames())
}

// Sheets returns all sheets in workbook order.
func (d *Document) Sheets() []*Sheet {
	names := d.sheetNames()
	out := make([]*Sheet, len(names))
	for i, n := range names {
		out[i] = d.handle(n)
	}
	return out
}

// Sheet returns the sheet with the given name, creating it if absent.
// Names compare case-insensitively.
func (d *Document) Sheet(name string) (*Sheet, error) {
	if s := d.SheetOrNil(name); s != nil {
		return s, nil
	}
	return d.newSheet(name)
}

// SheetOrNil returns the named sheet, or nil if there is none.
func (d *Document) SheetOrNil(name string) *Sheet {
	actual, ok := d.resolveSheet(name)
	if !ok {
		return nil
	}
	return d.handle(actual)
}

// SheetAt returns the sheet at the 0-based position. An index outside the
// current bounds appends a new sheet instead of failing.
func (d *Document) SheetAt(index int) (*Sheet, error) {
	if s := d.SheetAtOrNil(index); s != nil {
		return s, nil
	}
	return d.CreateSheet()
}

// SheetAtOrNil returns the sheet at the 0-based position, or nil.
func (d *Document) SheetAtOrNil(index int) *Sheet {
	names := d.sheetNames()
	if index < 0 || index >= len(names) {
		return nil
	}
	return d.handle(names[index])
}

// CreateSheet appends a sheet named "SheetN", N being the current sheet
// count, bumped until the name is free.
func (d *Document) CreateSheet() (*Sheet, error) {
	n := d.SheetCount()
	name := fmt.Sprintf("Sheet%d", n)
	for _, taken := d.resolveSheet(name); taken; _, taken = d.resolveSheet(name) {
		n++
		name = fmt.Sprintf("Sheet%d", n)
	}
	return d.newSheet(name)
}

func (d *Document) newSheet(name string) (*Sheet, error) {
	if name == "" {
		return nil, errors.New("sheet name cannot be empty")
	}
	if d.placeholder != "" {
		if !strings.EqualFold(d.placeholder, name) {
			if err := d.file.SetSheetName(d.placeholder, name); err != nil {
				return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
			}
		} else {
			name = d.placeholder
		}
		d.placeholder = ""
	} else if _, err := d.file.NewSheet(name); err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	d.log.Debug().Str("sheet", name).Msg("sheet created")
	s := d.handle(name)
	s.seeded = true
	return s, nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
