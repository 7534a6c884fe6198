package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrNotExist is returned by Load when the image file does not exist.
var ErrNotExist = errors.New("image file does not exist")

// ColorModel describes how the pixels of a decoded image are stored.
//
// The description mirrors the layout of the encoded file rather than the Go
// type used in memory: a truecolor PNG decodes into *image.RGBA but carries no
// alpha channel, so it is reported as 24-bit RGB, and a gray+alpha PNG decodes
// into *image.NRGBA but has a single color component.
type ColorModel struct {
	// Components is the number of color components, alpha excluded.
	Components int `json:"components"`

	// BitsPerPixel is the storage depth of one pixel, alpha included.
	BitsPerPixel int `json:"bits_per_pixel"`

	// HasAlpha indicates a per-pixel alpha (translucency) channel.
	HasAlpha bool `json:"has_alpha"`
}

// Valid reports whether images with this model can take part in compositing:
// exactly three color components at 24 or 32 bits per pixel.
func (m ColorModel) Valid() bool {
	return m.Components == 3 && (m.BitsPerPixel == 24 || m.BitsPerPixel == 32)
}

// DescribeModel maps a Go color model, as reported by image.DecodeConfig, to
// its component count, depth and alpha presence.
//
// Decoders report color.RGBAModel for opaque truecolor data and
// color.NRGBAModel when the file carries an alpha channel. The PNG decoder also
// widens gray+alpha data to NRGBA, so Load reads PNG headers directly instead.
func DescribeModel(m color.Model) ColorModel {
	if p, ok := m.(color.Palette); ok {
		return describePalette(p)
	}

	switch m {
	case color.RGBAModel, color.YCbCrModel:
		return ColorModel{Components: 3, BitsPerPixel: 24}
	case color.NRGBAModel, color.NYCbCrAModel:
		return ColorModel{Components: 3, BitsPerPixel: 32, HasAlpha: true}
	case color.RGBA64Model:
		return ColorModel{Components: 3, BitsPerPixel: 48}
	case color.NRGBA64Model:
		return ColorModel{Components: 3, BitsPerPixel: 64, HasAlpha: true}
	case color.GrayModel:
		return ColorModel{Components: 1, BitsPerPixel: 8}
	case color.Gray16Model:
		return ColorModel{Components: 1, BitsPerPixel: 16}
	case color.AlphaModel:
		return ColorModel{Components: 0, BitsPerPixel: 8, HasAlpha: true}
	case color.Alpha16Model:
		return ColorModel{Components: 0, BitsPerPixel: 16, HasAlpha: true}
	case color.CMYKModel:
		return ColorModel{Components: 4, BitsPerPixel: 32}
	}

	return ColorModel{}
}

// describePalette reports palette images as three components stored at the
// index depth, which is never more than 8 bits.
func describePalette(p color.Palette) ColorModel {
	bits := 1
	for (1 << bits) < len(p) {
		bits++
	}

	hasAlpha := false
	for _, c := range p {
		if _, _, _, a := c.RGBA(); a != 0xffff {
			hasAlpha = true
			break
		}
	}

	return ColorModel{Components: 3, BitsPerPixel: bits, HasAlpha: hasAlpha}
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the decoder ("png", "jpeg", ...).
	Format string `json:"format"`

	// Model describes the color layout of the file.
	Model ColorModel `json:"model"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Size returns the image dimensions as a point.
func (i ImageInfo) Size() image.Point {
	return image.Pt(i.Width, i.Height)
}

// Source is a decoded image together with its file metadata.
type Source struct {
	Image image.Image
	Info  ImageInfo
}

// Load reads and decodes the image file at path.
//
// The color model is taken from the file header before the full decode, so
// the returned Info reflects the stored layout of the file. Supported formats
// are PNG, JPEG, GIF, BMP, TIFF and WebP.
//
// # Errors
//
//   - Returns an error wrapping ErrNotExist if the file does not exist
//   - Returns an error if the file is not a decodable image
func Load(path string) (*Source, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image: %w", err)
	}

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	model := DescribeModel(cfg.ColorModel)
	if format == "png" {
		m, err := pngHeaderModel(f, cfg.ColorModel)
		if err != nil {
			return nil, fmt.Errorf("failed to read png header: %w", err)
		}
		model = m
	}

	bounds := img.Bounds()
	return &Source{
		Image: img,
		Info: ImageInfo{
			Width:         bounds.Dx(),
			Height:        bounds.Dy(),
			Format:        format,
			Model:         model,
			FileSizeBytes: stat.Size(),
		},
	}, nil
}

// pngHeaderModel describes a PNG file from its IHDR chunk, which always
// follows the 8-byte signature. Byte 24 holds the bit depth and byte 25 the
// color type. Palette alpha comes from the decoded palette.
func pngHeaderModel(r io.ReaderAt, decoded color.Model) (ColorModel, error) {
	var hdr [26]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		return ColorModel{}, err
	}
	if string(hdr[12:16]) != "IHDR" {
		return ColorModel{}, errors.New("missing IHDR chunk")
	}

	depth := int(hdr[24])
	switch colorType := hdr[25]; colorType {
	case 0: // gray
		return ColorModel{Components: 1, BitsPerPixel: depth}, nil
	case 2: // truecolor
		return ColorModel{Components: 3, BitsPerPixel: 3 * depth}, nil
	case 3: // indexed
		return ColorModel{Components: 3, BitsPerPixel: depth, HasAlpha: DescribeModel(decoded).HasAlpha}, nil
	case 4: // gray+alpha
		return ColorModel{Components: 1, BitsPerPixel: 2 * depth, HasAlpha: true}, nil
	case 6: // truecolor+alpha
		return ColorModel{Components: 3, BitsPerPixel: 4 * depth, HasAlpha: true}, nil
	default:
		return ColorModel{}, fmt.Errorf("unknown png color type %d", colorType)
	}
}
