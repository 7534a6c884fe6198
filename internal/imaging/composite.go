package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Method selects how the watermark is placed on the base image.
type Method int

const (
	// Single places the watermark once at a given position.
	Single Method = iota + 1
	// Grid tiles the watermark across the whole base image from (0,0).
	Grid
)

// String returns the name used for the method on the command line.
func (m Method) String() string {
	switch m {
	case Single:
		return "single"
	case Grid:
		return "grid"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod returns the method named by s. Names are case-sensitive.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "single":
		return Single, nil
	case "grid":
		return Grid, nil
	default:
		return 0, fmt.Errorf("unknown placement method %q", s)
	}
}

// Placement says where the watermark goes. Position is only used by Single.
type Placement struct {
	Method   Method
	Position image.Point
}

// BlendOptions controls how a watermark pixel is mixed into a base pixel.
type BlendOptions struct {
	// Weight is the watermark opacity in percent (0-100).
	Weight int

	// UseAlpha honors the watermark's own alpha channel. When false every
	// watermark pixel is treated as fully opaque.
	UseAlpha bool

	// Transparency is an optional chroma-key color. Watermark pixels whose RGB
	// equals it leave the base pixel unchanged.
	Transparency *RGBColor
}

// BlendPixel mixes watermark pixel w into base pixel i and returns the opaque
// result.
//
// The base pixel is returned unchanged (with alpha forced opaque) when w is
// fully transparent and UseAlpha is set, or when w matches the transparency
// color. Otherwise each RGB channel is computed as
// (Weight*w + (100-Weight)*i) / 100 with integer division.
func BlendPixel(i, w color.NRGBA, opts BlendOptions) color.NRGBA {
	i.A = 0xff
	if !opts.UseAlpha {
		w.A = 0xff
	}

	if w.A == 0 {
		return i
	}
	if opts.Transparency != nil && opts.Transparency.Matches(w) {
		return i
	}

	return color.NRGBA{
		R: mix(w.R, i.R, opts.Weight),
		G: mix(w.G, i.G, opts.Weight),
		B: mix(w.B, i.B, opts.Weight),
		A: 0xff,
	}
}

func mix(w, i uint8, weight int) uint8 {
	return uint8((weight*int(w) + (100-weight)*int(i)) / 100)
}

// Composite blends watermark onto a copy of base and returns the result as
// an opaque image with the bounds of base translated to the origin.
//
// With Single placement the watermark is applied once with its top-left corner
// at p.Position. With Grid placement it is tiled across the whole image; tiles
// on the right and bottom edges are clipped. Watermark pixels falling outside
// the base image are skipped.
//
// # Errors
//
//   - Returns error if either image is nil
//   - Returns error if the weight is outside 0-100
//   - Returns error if the placement method is unknown
func Composite(base, watermark image.Image, p Placement, opts BlendOptions) (*image.NRGBA, error) {
	if base == nil || watermark == nil {
		return nil, fmt.Errorf("nil image provided")
	}
	if opts.Weight < 0 || opts.Weight > 100 {
		return nil, fmt.Errorf("blend weight %d outside 0-100", opts.Weight)
	}

	src := imaging.Clone(base)
	wm := imaging.Clone(watermark)
	out := opaqueCopy(src)

	switch p.Method {
	case Single:
		overlay(out, src, wm, p.Position, opts)
	case Grid:
		for _, origin := range TileOrigins(src.Bounds().Size(), wm.Bounds().Size()) {
			overlay(out, src, wm, origin, opts)
		}
	default:
		return nil, fmt.Errorf("unexpected placement method %v", p.Method)
	}

	return out, nil
}

// opaqueCopy copies src into a new buffer with every alpha byte set to 0xff.
// The RGB values are kept as stored, unpremultiplied.
func opaqueCopy(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// overlay blends wm onto dst with its top-left corner at origin, reading base
// pixels from src. Both src and dst start at (0,0) and share bounds.
func overlay(dst, src, wm *image.NRGBA, origin image.Point, opts BlendOptions) {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	wmWidth, wmHeight := wm.Bounds().Dx(), wm.Bounds().Dy()

	for y := 0; y < wmHeight; y++ {
		ty := origin.Y + y
		if ty < 0 {
			continue
		}
		if ty >= height {
			break
		}

		for x := 0; x < wmWidth; x++ {
			tx := origin.X + x
			if tx < 0 {
				continue
			}
			if tx >= width {
				break
			}

			c := BlendPixel(src.NRGBAAt(tx, ty), wm.NRGBAAt(x, y), opts)
			dst.SetNRGBA(tx, ty, c)
		}
	}
}
