package imaging

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// NRGBA returns the color as a fully opaque color.NRGBA.
func (c RGBColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex returns the color in "#RRGGBB" form.
func (c RGBColor) Hex() string {
	col, _ := colorful.MakeColor(c.NRGBA())
	return strings.ToUpper(col.Hex())
}

// Matches reports whether the RGB components of p equal c. Alpha is ignored.
func (c RGBColor) Matches(p color.NRGBA) bool {
	return p.R == c.R && p.G == c.G && p.B == c.B
}
