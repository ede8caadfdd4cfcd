package xelhua

// FontBuilder sets attributes on one font registry entry. Like StyleBuilder,
// it keeps the first error and ignores later calls.
type FontBuilder struct {
	font *Font
	err  error
}

// NewFontBuilder binds a builder to a fresh font in doc's registry.
func NewFontBuilder(doc *Document) *FontBuilder {
	return &FontBuilder{font: doc.NewFont()}
}

// FontBuilderAt binds a builder to the font entry at index.
func FontBuilderAt(doc *Document, index int) (*FontBuilder, error) {
	f, err := doc.FontAt(index)
	if err != nil {
		return nil, err
	}
	return &FontBuilder{font: f}, nil
}

// FontBuilderFor binds a builder to f.
func FontBuilderFor(f *Font) *FontBuilder {
	return &FontBuilder{font: f}
}

func (b *FontBuilder) apply(fn func(f *Font) error) *FontBuilder {
	if b.err != nil {
		return b
	}
	b.err = fn(b.font)
	return b
}

// Name sets the font family.
func (b *FontBuilder) Name(name string) *FontBuilder {
	return b.apply(func(f *Font) error {
		if name == "" {
			return invalid("font name", `""`)
		}
		f.def.Family = name
		return nil
	})
}

// Color sets the text colour.
func (b *FontBuilder) Color(color Color) *FontBuilder {
	return b.apply(func(f *Font) error {
		if !color.valid() {
			return invalid("color", color)
		}
		f.def.Color = string(color)
		return nil
	})
}

// Bold turns bold on or off.
func (b *FontBuilder) Bold(on bool) *FontBuilder {
	return b.apply(func(f *Font) error {
		f.def.Bold = on
		return nil
	})
}

// Italic turns italics on or off.
func (b *FontBuilder) Italic(on bool) *FontBuilder {
	return b.apply(func(f *Font) error {
		f.def.Italic = on
		return nil
	})
}

// Strikeout turns strike-through on or off.
func (b *FontBuilder) Strikeout(on bool) *FontBuilder {
	return b.apply(func(f *Font) error {
		f.def.Strike = on
		return nil
	})
}

// Underline switches between a single underline and none.
func (b *FontBuilder) Underline(on bool) *FontBuilder {
	return b.apply(func(f *Font) error {
		f.def.Underline = ""
		if on {
			f.def.Underline = "single"
		}
		return nil
	})
}

// Height sets the size in points. It is stored to 1/20 point precision,
// truncating fractions of a twip.
func (b *FontBuilder) Height(points float64) *FontBuilder {
	return b.apply(func(f *Font) error {
		if points <= 0 || points > 409 {
			return invalid("font height", points)
		}
		f.def.Size = float64(int(points*20)) / 20
		return nil
	})
}

// Get returns the font being built.
func (b *FontBuilder) Get() *Font {
	return b.font
}

// Err returns the first error recorded by the builder.
func (b *FontBuilder) Err() error {
	return b.err
}
