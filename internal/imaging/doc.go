// Package imaging provides the image operations behind the watermark tool.
//
// This package loads raster images and describes their color model, blends a
// watermark image onto a base image either once or tiled across a grid, and
// encodes the result as JPEG or PNG. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the top-left
// corner, X increases rightward, and Y increases downward.
//
// # Color Models
//
// A loaded image is accepted for compositing only when its color model has
// exactly three color components and a depth of 24 or 32 bits per pixel:
//   - 24-bit: RGB without alpha (e.g. JPEG, truecolor PNG, 24-bit BMP)
//   - 32-bit: RGB with a per-pixel alpha channel (e.g. RGBA PNG, alpha WebP)
//
// Grayscale, CMYK, 16-bit-per-channel and palette images are rejected.
//
// # Blending
//
// Each watermark pixel is mixed into the base pixel under it using an integer
// weight in percent:
//
//	out = (weight*watermark + (100-weight)*base) / 100
//
// computed per RGB channel with integer division. Fully transparent watermark
// pixels (when the alpha channel is in use) and pixels matching the optional
// transparency color leave the base pixel untouched.
//
// # Output
//
// Composite always returns an opaque image: the alpha channel of the base image
// is dropped, and the encoders write 24-bit RGB data.
package imaging
