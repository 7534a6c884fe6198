package prompt

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/ironsheep/image-watermark/internal/imaging"
)

// CheckImage loads the base image and verifies its color model.
func CheckImage(path string) (*imaging.Source, error) {
	return checkSource(path, StageImage, "image")
}

// CheckWatermark loads the watermark image, verifies its color model, and
// checks that it fits inside a base image of the given size.
func CheckWatermark(path string, base image.Point) (*imaging.Source, error) {
	src, err := checkSource(path, StageWatermark, "watermark")
	if err != nil {
		return nil, err
	}

	if src.Info.Width > base.X || src.Info.Height > base.Y {
		return nil, newError(StageWatermark, OversizedWatermark, "The watermark's dimensions are larger.")
	}

	return src, nil
}

func checkSource(path string, stage Stage, subject string) (*imaging.Source, error) {
	src, err := imaging.Load(path)
	if err != nil {
		if errors.Is(err, imaging.ErrNotExist) {
			return nil, &Error{
				Kind:    MissingFile,
				Stage:   stage,
				Message: fmt.Sprintf("The file %s doesn't exist.", path),
				Err:     err,
			}
		}
		return nil, &Error{
			Kind:    InvalidColorModel,
			Stage:   stage,
			Message: fmt.Sprintf("The file %s isn't a readable image.", path),
			Err:     err,
		}
	}

	model := src.Info.Model
	if model.Components != 3 {
		return nil, newError(stage, InvalidColorModel, fmt.Sprintf("The number of %s color components isn't 3.", subject))
	}
	if !model.Valid() {
		return nil, newError(stage, InvalidColorModel, fmt.Sprintf("The %s isn't 24 or 32-bit.", subject))
	}

	return src, nil
}

// ParseAnswer reports whether line is a "yes", ignoring case.
func ParseAnswer(line string) bool {
	return strings.ToLower(line) == "yes"
}

// ParseTransparency parses a chroma-key color given as "R G B", each an
// integer from 0 to 255 separated by single spaces.
func ParseTransparency(line string) (imaging.RGBColor, error) {
	fail := newError(StageTransparency, InvalidTransparencyInput, "The transparency color input is invalid.")

	fields := strings.Split(line, " ")
	if len(fields) != 3 {
		return imaging.RGBColor{}, fail
	}

	var rgb [3]uint8
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v > 255 {
			return imaging.RGBColor{}, fail
		}
		rgb[i] = uint8(v)
	}

	return imaging.RGBColor{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// ParseWeight parses the blend weight, an integer percentage from 0 to 100.
func ParseWeight(line string) (int, error) {
	weight, err := strconv.Atoi(line)
	if err != nil {
		return 0, &Error{
			Kind:    InvalidWeightInput,
			Stage:   StageWeight,
			Message: "The transparency percentage isn't an integer number.",
			Err:     err,
		}
	}
	if weight < 0 || weight > 100 {
		return 0, newError(StageWeight, InvalidWeightInput, "The transparency percentage is out of range.")
	}
	return weight, nil
}

// ParseMethod parses the placement method, exactly "single" or "grid".
func ParseMethod(line string) (imaging.Method, error) {
	method, err := imaging.ParseMethod(line)
	if err != nil {
		return 0, &Error{
			Kind:    InvalidMethodInput,
			Stage:   StageMethod,
			Message: "The position method input is invalid.",
			Err:     err,
		}
	}
	return method, nil
}

// ParseOutput checks that the output filename ends in ".jpg" or ".png".
func ParseOutput(line string) (string, error) {
	if _, err := imaging.FormatFromFilename(line); err != nil {
		return "", &Error{
			Kind:    InvalidOutputExtension,
			Stage:   StageOutput,
			Message: `The output file extension isn't "jpg" or "png".`,
			Err:     err,
		}
	}
	return line, nil
}

// ParsePosition parses "x y" with 0 <= x <= limit.X and 0 <= y <= limit.Y.
func ParsePosition(line string, limit image.Point) (image.Point, error) {
	invalid := newError(StagePosition, InvalidPositionInput, "The position input is invalid.")

	fields := strings.Split(line, " ")
	coords := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return image.Point{}, invalid
		}
		coords = append(coords, v)
	}
	if len(coords) != 2 {
		return image.Point{}, invalid
	}

	x, y := coords[0], coords[1]
	if x < 0 || x > limit.X || y < 0 || y > limit.Y {
		return image.Point{}, newError(StagePosition, InvalidPositionInput, "The position input is out of range.")
	}

	return image.Pt(x, y), nil
}
