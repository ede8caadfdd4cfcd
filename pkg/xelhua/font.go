package xelhua

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

// Default font of a fresh document.
const (
	DefaultFontName = "Calibri"
	DefaultFontSize = 11.0
)

// Font is an entry in a document's font registry. Changing it changes every
// style that references it.
type Font struct {
	doc   *Document
	index int
	def   excelize.Font
}

// Index returns the entry's position in the font registry.
func (f *Font) Index() int {
	return f.index
}

// Definition returns a copy of the engine font definition.
func (f *Font) Definition() excelize.Font {
	return f.def
}

// Name returns the font family.
func (f *Font) Name() string {
	return f.def.Family
}

// Size returns the height in points.
func (f *Font) Size() float64 {
	return f.def.Size
}

// HeightTwips returns the height in 1/20 point units.
func (f *Font) HeightTwips() int {
	return int(math.Round(f.def.Size * 20))
}

func (f *Font) String() string {
	return fmt.Sprintf("Font(%d %s %gpt)", f.index, f.def.Family, f.def.Size)
}

// NewFont appends a fresh font entry set to the default face.
func (d *Document) NewFont() *Font {
	return d.newFontFrom(excelize.Font{Family: DefaultFontName, Size: DefaultFontSize})
}

func (d *Document) newFontFrom(def excelize.Font) *Font {
	f := &Font{doc: d, index: len(d.fonts), def: def}
	d.fonts = append(d.fonts, f)
	return f
}

// FontAt returns the font entry at index.
func (d *Document) FontAt(index int) (*Font, error) {
	if index < 0 || index >= len(d.fonts) {
		return nil, fmt.Errorf("%w: index %d", ErrFontNotFound, index)
	}
	return d.fonts[index], nil
}

// FontCount returns the number of font entries.
func (d *Document) FontCount() int {
	return len(d.fonts)
}
