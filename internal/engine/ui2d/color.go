package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined overlay colors.
var (
	ColorWhite   = Color{1, 1, 1, 1}
	ColorPanelBg = Color{0.02, 0.08, 0.12, 0.7}
	ColorText    = Color{0.9, 0.95, 1, 1}
	// ColorStart and ColorEnd follow the usual scroll marker palette.
	ColorStart = RGB(0x00, 0xc8, 0x53)
	ColorEnd   = RGB(0xff, 0x3d, 0x00)
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}
