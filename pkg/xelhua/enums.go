package xelhua

import (
	"fmt"
	"regexp"
	"strings"
)

// Color is an RGB hex string without the leading '#', e.g. "FF0000".
type Color string

// The classic indexed palette, by name.
const (
	Black       Color = "000000"
	White       Color = "FFFFFF"
	Red         Color = "FF0000"
	BrightGreen Color = "00FF00"
	Blue        Color = "0000FF"
	Yellow      Color = "FFFF00"
	Pink        Color = "FF00FF"
	Turquoise   Color = "00FFFF"
	DarkRed     Color = "800000"
	Green       Color = "008000"
	DarkBlue    Color = "000080"
	DarkYellow  Color = "808000"
	Violet      Color = "800080"
	Teal        Color = "008080"
	Grey25      Color = "C0C0C0"
	Grey40      Color = "969696"
	Grey50      Color = "808080"
	Grey80      Color = "333333"
	Coral       Color = "FF8080"
	SkyBlue     Color = "00CCFF"
	LightGreen  Color = "CCFFCC"
	LightYellow Color = "FFFF99"
	LightBlue   Color = "3366FF"
	Rose        Color = "FF99CC"
	Lavender    Color = "CC99FF"
	Tan         Color = "FFCC99"
	Aqua        Color = "33CCCC"
	Lime        Color = "99CC00"
	Gold        Color = "FFCC00"
	LightOrange Color = "FF9900"
	Orange      Color = "FF6600"
	Indigo      Color = "333399"
	SeaGreen    Color = "339966"
	Brown       Color = "993300"
	Plum        Color = "993366"
)

var namedColors = map[string]Color{
	"black": Black, "white": White, "red": Red, "bright_green": BrightGreen,
	"blue": Blue, "yellow": Yellow, "pink": Pink, "turquoise": Turquoise,
	"dark_red": DarkRed, "green": Green, "dark_blue": DarkBlue,
	"dark_yellow": DarkYellow, "violet": Violet, "teal": Teal,
	"grey_25": Grey25, "grey_40": Grey40, "grey_50": Grey50, "grey_80": Grey80,
	"coral": Coral, "sky_blue": SkyBlue, "light_green": LightGreen,
	"light_yellow": LightYellow, "light_blue": LightBlue, "rose": Rose,
	"lavender": Lavender, "tan": Tan, "aqua": Aqua, "lime": Lime, "gold": Gold,
	"light_orange": LightOrange, "orange": Orange, "indigo": Indigo,
	"sea_green": SeaGreen, "brown": Brown, "plum": Plum,
}

var hexColorRegex = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

func (c Color) valid() bool { return hexColorRegex.MatchString(string(c)) }

// ParseColor accepts a palette name ("light_blue") or a hex value with or
// without '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if !hexColorRegex.MatchString(hex) {
		return "", fmt.Errorf("%w: color %q", ErrInvalidValue, s)
	}
	return Color(strings.ToUpper(hex)), nil
}

// FillPattern mirrors the engine's pattern fill numbering.
type FillPattern int

const (
	FillNone FillPattern = iota
	FillSolid
	FillMediumGray
	FillDarkGray
	FillLightGray
	FillDarkHorizontal
	FillDarkVertical
	FillDarkDown
	FillDarkUp
	FillDarkGrid
	FillDarkTrellis
	FillLightHorizontal
	FillLightVertical
	FillLightDown
	FillLightUp
	FillLightGrid
	FillLightTrellis
	FillGray125
	FillGray0625
)

var fillPatternNames = []string{
	"none", "solid", "medium_gray", "dark_gray", "light_gray",
	"dark_horizontal", "dark_vertical", "dark_down", "dark_up", "dark_grid",
	"dark_trellis", "light_horizontal", "light_vertical", "light_down",
	"light_up", "light_grid", "light_trellis", "gray_125", "gray_0625",
}

func (p FillPattern) valid() bool { return p >= FillNone && p <= FillGray0625 }

func (p FillPattern) String() string {
	if !p.valid() {
		return fmt.Sprintf("FillPattern(%d)", int(p))
	}
	return fillPatternNames[p]
}

// ParseFillPattern maps a pattern name to its value.
func ParseFillPattern(s string) (FillPattern, error) {
	for i, name := range fillPatternNames {
		if strings.EqualFold(s, name) {
			return FillPattern(i), nil
		}
	}
	return FillNone, fmt.Errorf("%w: fill pattern %q", ErrInvalidValue, s)
}

// BorderStyle mirrors the engine's border style numbering.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderDashed
	BorderDotted
	BorderThick
	BorderDouble
	BorderHair
	BorderMediumDashed
	BorderDashDot
	BorderMediumDashDot
	BorderDashDotDot
	BorderMediumDashDotDot
	BorderSlantedDashDot
)

var borderStyleNames = []string{
	"none", "thin", "medium", "dashed", "dotted", "thick", "double", "hair",
	"medium_dashed", "dash_dot", "medium_dash_dot", "dash_dot_dot",
	"medium_dash_dot_dot", "slanted_dash_dot",
}

func (b BorderStyle) valid() bool { return b >= BorderNone && b <= BorderSlantedDashDot }

func (b BorderStyle) String() string {
	if !b.valid() {
		return fmt.Sprintf("BorderStyle(%d)", int(b))
	}
	return borderStyleNames[b]
}

// ParseBorderStyle maps a border style name to its value.
func ParseBorderStyle(s string) (BorderStyle, error) {
	for i, name := range borderStyleNames {
		if strings.EqualFold(s, name) {
			return BorderStyle(i), nil
		}
	}
	return BorderNone, fmt.Errorf("%w: border style %q", ErrInvalidValue, s)
}

// HorizontalAlignment values are the engine's alignment keywords.
type HorizontalAlignment string

const (
	AlignGeneral          HorizontalAlignment = "general"
	AlignLeft             HorizontalAlignment = "left"
	AlignCenter           HorizontalAlignment = "center"
	AlignRight            HorizontalAlignment = "right"
	AlignFill             HorizontalAlignment = "fill"
	AlignJustify          HorizontalAlignment = "justify"
	AlignCenterContinuous HorizontalAlignment = "centerContinuous"
	AlignDistributed      HorizontalAlignment = "distributed"
)

var horizontalAlignments = []HorizontalAlignment{AlignGeneral, AlignLeft, AlignCenter,
	AlignRight, AlignFill, AlignJustify, AlignCenterContinuous, AlignDistributed}

func (h HorizontalAlignment) valid() bool {
	for _, a := range horizontalAlignments {
		if a == h {
			return true
		}
	}
	return false
}

// ParseHorizontalAlignment maps a keyword to its value, case-insensitively.
func ParseHorizontalAlignment(s string) (HorizontalAlignment, error) {
	for _, a := range horizontalAlignments {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: horizontal alignment %q", ErrInvalidValue, s)
}

// VerticalAlignment values are the engine's alignment keywords.
type VerticalAlignment string

const (
	AlignTop                VerticalAlignment = "top"
	AlignMiddle             VerticalAlignment = "center"
	AlignBottom             VerticalAlignment = "bottom"
	AlignVerticalJustify    VerticalAlignment = "justify"
	AlignVerticalDistribute VerticalAlignment = "distributed"
)

var verticalAlignments = []VerticalAlignment{AlignTop, AlignMiddle, AlignBottom,
	AlignVerticalJustify, AlignVerticalDistribute}

func (v VerticalAlignment) valid() bool {
	for _, a := range verticalAlignments {
		if a == v {
			return true
		}
	}
	return false
}

// ParseVerticalAlignment maps a keyword to its value. "middle" is accepted
// for center.
func ParseVerticalAlignment(s string) (VerticalAlignment, error) {
	if strings.EqualFold(s, "middle") {
		return AlignMiddle, nil
	}
	for _, a := range verticalAlignments {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: vertical alignment %q", ErrInvalidValue, s)
}
