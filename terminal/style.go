package terminal

import "github.com/gdamore/tcell/v2"

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone Attr = 0
	AttrDim  Attr = 1 << 0
)

// Style pairs a foreground color with attributes
// Fg is a tcell palette color; truecolor output uses its RGB value
type Style struct {
	Fg    tcell.Color
	Attrs Attr
}

// NewStyle returns a style with the given foreground and attributes
func NewStyle(fg tcell.Color, attrs ...Attr) Style {
	s := Style{Fg: fg}
	for _, a := range attrs {
		s.Attrs |= a
	}
	return s
}

// HasColor reports whether the style carries a foreground color
func (s Style) HasColor() bool {
	return s.Fg.Valid()
}

// RGB resolves the foreground to 24-bit color
func (s Style) RGB() RGB {
	r, g, b := s.Fg.RGB()
	if r < 0 {
		return RGB{}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// Index256 returns the xterm-256 palette index of the foreground
func (s Style) Index256() uint8 {
	return uint8(s.Fg - tcell.ColorValid)
}

// Palette entries used by the renderer and effects
var (
	StylePlain    = Style{}
	StyleGray     = NewStyle(tcell.ColorGray)
	StyleDim      = NewStyle(tcell.ColorDefault, AttrDim)
	StyleLyric    = NewStyle(tcell.ColorWhite)
	StyleError    = NewStyle(tcell.ColorRed)
	StyleWarning  = NewStyle(tcell.ColorYellow)
	StylePulse    = NewStyle(tcell.ColorFuchsia)
	StyleRainDrop = NewStyle(tcell.ColorYellow)

	// Rainbow is the fixed 6-color cycle of the final lyric line
	Rainbow = []Style{
		NewStyle(tcell.ColorRed),
		NewStyle(tcell.ColorYellow),
		NewStyle(tcell.ColorLime),
		NewStyle(tcell.ColorAqua),
		NewStyle(tcell.ColorBlue),
		NewStyle(tcell.ColorFuchsia),
	}

	// Burst colors for fireworks
	Burst = []Style{
		NewStyle(tcell.ColorRed),
		NewStyle(tcell.ColorYellow),
		NewStyle(tcell.ColorAqua),
		NewStyle(tcell.ColorLime),
		NewStyle(tcell.ColorFuchsia),
		NewStyle(tcell.ColorWhite),
	}
)
