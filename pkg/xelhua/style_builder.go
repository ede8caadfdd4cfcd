package xelhua

import (
	"fmt"
)

// StyleBuilder sets attributes on one registry style. Every method returns
// the builder. The first invalid argument is kept and turns the remaining
// calls into no-ops; check it with Err.
type StyleBuilder struct {
	style *Style
	err   error
}

// NewStyleBuilder binds a builder to a fresh style in doc's registry.
func NewStyleBuilder(doc *Document) *StyleBuilder {
	return &StyleBuilder{style: doc.NewStyle()}
}

// StyleBuilderAt binds a builder to the registry style at index.
func StyleBuilderAt(doc *Document, index int) (*StyleBuilder, error) {
	s, err := doc.StyleAt(index)
	if err != nil {
		return nil, err
	}
	return &StyleBuilder{style: s}, nil
}

// StyleBuilderFor binds a builder to s.
func StyleBuilderFor(s *Style) *StyleBuilder {
	return &StyleBuilder{style: s}
}

// StyleBuilderForCell binds a builder to the style c currently uses, which
// other cells may share.
func StyleBuilderForCell(c *Cell) (*StyleBuilder, error) {
	s, err := c.Style()
	if err != nil {
		return nil, err
	}
	return &StyleBuilder{style: s}, nil
}

func (b *StyleBuilder) apply(fn func(s *Style) error) *StyleBuilder {
	if b.err != nil {
		return b
	}
	b.err = fn(b.style)
	return b
}

func invalid(what string, v any) error {
	return fmt.Errorf("%w: %s %v", ErrInvalidValue, what, v)
}

// Background fills the cell solid with color.
func (b *StyleBuilder) Background(color Color) *StyleBuilder {
	return b.BackgroundPattern(color, FillSolid)
}

// BackgroundPattern sets the fill pattern and its foreground color, keeping
// any background color already set.
func (b *StyleBuilder) BackgroundPattern(color Color, pattern FillPattern) *StyleBuilder {
	return b.apply(func(s *Style) error {
		var bg Color
		if len(s.def.Fill.Color) > 1 {
			bg = Color(s.def.Fill.Color[1])
		}
		return fill(s, color, bg, pattern)
	})
}

// BackgroundColors sets the fill pattern with both of its colors.
func (b *StyleBuilder) BackgroundColors(fg, bg Color, pattern FillPattern) *StyleBuilder {
	return b.apply(func(s *Style) error {
		if !bg.valid() {
			return invalid("color", bg)
		}
		return fill(s, fg, bg, pattern)
	})
}

func fill(s *Style, fg, bg Color, pattern FillPattern) error {
	if !fg.valid() {
		return invalid("color", fg)
	}
	if !pattern.valid() {
		return invalid("fill pattern", pattern)
	}
	s.setFill(fg, bg, pattern)
	return nil
}

// AlignHorizontal sets the horizontal alignment.
func (b *StyleBuilder) AlignHorizontal(h HorizontalAlignment) *StyleBuilder {
	return b.apply(func(s *Style) error {
		if !h.valid() {
			return invalid("horizontal alignment", h)
		}
		s.alignment().Horizontal = string(h)
		return nil
	})
}

// AlignVertical sets the vertical alignment.
func (b *StyleBuilder) AlignVertical(v VerticalAlignment) *StyleBuilder {
	return b.apply(func(s *Style) error {
		if !v.valid() {
			return invalid("vertical alignment", v)
		}
		s.alignment().Vertical = string(v)
		return nil
	})
}

func (b *StyleBuilder) borderStyle(edge string, style BorderStyle) *StyleBuilder {
	return b.apply(func(s *Style) error {
		if !style.valid() {
			return invalid("border style", style)
		}
		s.border(edge).Style = int(style)
		return nil
	})
}

func (b *StyleBuilder) borderColor(edge string, color Color) *StyleBuilder {
	return b.apply(func(s *Style) error {
		if !color.valid() {
			return invalid("color", color)
		}
		s.border(edge).Color = string(color)
		return nil
	})
}

// BorderTop sets the top border line style.
func (b *StyleBuilder) BorderTop(style BorderStyle) *StyleBuilder {
	return b.borderStyle("top", style)
}

// BorderLeft sets the left border line style.
func (b *StyleBuilder) BorderLeft(style BorderStyle) *StyleBuilder {
	return b.borderStyle("left", style)
}

// BorderRight sets the right border line style.
func (b *StyleBuilder) BorderRight(style BorderStyle) *StyleBuilder {
	return b.borderStyle("right", style)
}

// BorderBottom sets the bottom border line style.
func (b *StyleBuilder) BorderBottom(style BorderStyle) *StyleBuilder {
	return b.borderStyle("bottom", style)
}

// BorderTopColor sets the colour of the top border.
func (b *StyleBuilder) BorderTopColor(color Color) *StyleBuilder {
	return b.borderColor("top", color)
}

// BorderLeftColor sets the colour of the left border.
func (b *StyleBuilder) BorderLeftColor(color Color) *StyleBuilder {
	return b.borderColor("left", color)
}

// BorderRightColor sets the colour of the right border.
func (b *StyleBuilder) BorderRightColor(color Color) *StyleBuilder {
	return b.borderColor("right", color)
}

// BorderBottomColor sets the colour of the bottom border.
func (b *StyleBuilder) BorderBottomColor(color Color) *StyleBuilder {
	return b.borderColor("bottom", color)
}

// Font references f from the style. f must come from the same document.
func (b *StyleBuilder) Font(f *Font) *StyleBuilder {
	return b.apply(func(s *Style) error {
		if f == nil || f.doc != s.doc {
			return fmt.Errorf("%w: font from another document", ErrFontNotFound)
		}
		s.font = f
		return nil
	})
}

// DataFormat sets the number format code, e.g. "0.00" or "yyyy-mm-dd".
func (b *StyleBuilder) DataFormat(pattern string) *StyleBuilder {
	return b.apply(func(s *Style) error {
		if pattern == "" {
			return invalid("data format", `""`)
		}
		s.def.NumFmt = 0
		s.def.CustomNumFmt = &pattern
		return nil
	})
}

// Get returns the style being built.
func (b *StyleBuilder) Get() *Style {
	return b.style
}

// Err returns the first error recorded by the builder.
func (b *StyleBuilder) Err() error {
	return b.err
}
