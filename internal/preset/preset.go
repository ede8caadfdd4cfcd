// Package preset reads named cell styles from YAML and builds them into a
// document's style registry.
//
//	styles:
//	  header:
//	    font: {name: Arial, size: 12, bold: true, color: white}
//	    fill: {color: dark_blue, pattern: solid}
//	    alignment: {horizontal: center, vertical: middle}
//	    borders:
//	      bottom: {style: thick, color: black}
//	    format: "0.00"
package preset

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/elex-project/xelhua/pkg/xelhua"
	"gopkg.in/yaml.v2"
)

var ErrPresetNotFound = errors.New("preset not found")

// File is a set of named presets.
type File struct {
	Styles map[string]Style `yaml:"styles"`
}

// Style describes one cell style. Unset fields keep the engine default.
type Style struct {
	Font      *Font             `yaml:"font"`
	Fill      *Fill             `yaml:"fill"`
	Alignment *Alignment        `yaml:"alignment"`
	Borders   map[string]Border `yaml:"borders"`
	Format    string            `yaml:"format"`
}

type Font struct {
	Name      string  `yaml:"name"`
	Size      float64 `yaml:"size"`
	Color     string  `yaml:"color"`
	Bold      bool    `yaml:"bold"`
	Italic    bool    `yaml:"italic"`
	Underline bool    `yaml:"underline"`
	Strikeout bool    `yaml:"strikeout"`
}

type Fill struct {
	Color      string `yaml:"color"`
	Background string `yaml:"background"`
	Pattern    string `yaml:"pattern"` // defaults to solid
}

type Alignment struct {
	Horizontal string `yaml:"horizontal"`
	Vertical   string `yaml:"vertical"`
}

type Border struct {
	Style string `yaml:"style"`
	Color string `yaml:"color"`
}

// Load reads a preset file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes preset YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	return &f, nil
}

// Names returns the preset names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Styles))
	for n := range f.Styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build adds the named preset to doc as a new style.
func (f *File) Build(doc *xelhua.Document, name string) (*xelhua.Style, error) {
	p, ok := f.Styles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	b := xelhua.NewStyleBuilder(doc)
	if err := p.apply(doc, b); err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return b.Get(), nil
}

func (p Style) apply(doc *xelhua.Document, b *xelhua.StyleBuilder) error {
	if p.Font != nil {
		font, err := p.Font.build(doc)
		if err != nil {
			return err
		}
		b.Font(font)
	}

	if p.Fill != nil {
		fg, err := xelhua.ParseColor(p.Fill.Color)
		if err != nil {
			return err
		}
		pattern := xelhua.FillSolid
		if p.Fill.Pattern != "" {
			if pattern, err = xelhua.ParseFillPattern(p.Fill.Pattern); err != nil {
				return err
			}
		}
		if p.Fill.Background != "" {
			bg, err := xelhua.ParseColor(p.Fill.Background)
			if err != nil {
				return err
			}
			b.BackgroundColors(fg, bg, pattern)
		} else {
			b.BackgroundPattern(fg, pattern)
		}
	}

	if a := p.Alignment; a != nil {
		if a.Horizontal != "" {
			h, err := xelhua.ParseHorizontalAlignment(a.Horizontal)
			if err != nil {
				return err
			}
			b.AlignHorizontal(h)
		}
		if a.Vertical != "" {
			v, err := xelhua.ParseVerticalAlignment(a.Vertical)
			if err != nil {
				return err
			}
			b.AlignVertical(v)
		}
	}

	for edge, border := range p.Borders {
		if err := applyBorder(b, edge, border); err != nil {
			return err
		}
	}

	if p.Format != "" {
		b.DataFormat(p.Format)
	}
	return nil
}

func applyBorder(b *xelhua.StyleBuilder, edge string, border Border) error {
	var setStyle func(xelhua.BorderStyle) *xelhua.StyleBuilder
	var setColor func(xelhua.Color) *xelhua.StyleBuilder
	switch edge {
	case "top":
		setStyle, setColor = b.BorderTop, b.BorderTopColor
	case "left":
		setStyle, setColor = b.BorderLeft, b.BorderLeftColor
	case "right":
		setStyle, setColor = b.BorderRight, b.BorderRightColor
	case "bottom":
		setStyle, setColor = b.BorderBottom, b.BorderBottomColor
	default:
		return fmt.Errorf("%w: border edge %q", xelhua.ErrInvalidValue, edge)
	}

	if border.Style != "" {
		s, err := xelhua.ParseBorderStyle(border.Style)
		if err != nil {
			return err
		}
		setStyle(s)
	}
	if border.Color != "" {
		c, err := xelhua.ParseColor(border.Color)
		if err != nil {
			return err
		}
		setColor(c)
	}
	return nil
}

func (f *Font) build(doc *xelhua.Document) (*xelhua.Font, error) {
	b := xelhua.NewFontBuilder(doc)
	if f.Name != "" {
		b.Name(f.Name)
	}
	if f.Size != 0 {
		b.Height(f.Size)
	}
	if f.Color != "" {
		c, err := xelhua.ParseColor(f.Color)
		if err != nil {
			return nil, err
		}
		b.Color(c)
	}
	b.Bold(f.Bold).Italic(f.Italic).Underline(f.Underline).Strikeout(f.Strikeout)
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b.Get(), nil
}
