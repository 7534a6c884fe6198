package prompt

import (
	"image"

	"github.com/ironsheep/image-watermark/internal/imaging"
)

// Settings is the validated input for one compositing run.
type Settings struct {
	Base         *imaging.Source
	Watermark    *imaging.Source
	UseAlpha     bool
	Transparency *imaging.RGBColor
	Weight       int
	Method       imaging.Method
	Position     image.Point
	Output       string
}

// MaxPosition is the largest top-left corner at which the watermark still
// fits inside the base image.
func (s Settings) MaxPosition() image.Point {
	return s.Base.Info.Size().Sub(s.Watermark.Info.Size())
}

// Placement returns where the watermark goes.
func (s Settings) Placement() imaging.Placement {
	return imaging.Placement{Method: s.Method, Position: s.Position}
}

// BlendOptions returns how watermark pixels are mixed in.
func (s Settings) BlendOptions() imaging.BlendOptions {
	return imaging.BlendOptions{
		Weight:       s.Weight,
		UseAlpha:     s.UseAlpha,
		Transparency: s.Transparency,
	}
}
