package prompt

import "fmt"

// Stage identifies the question being answered. Its numeric value is the
// process exit code used when that question fails.
type Stage int

const (
	// StageImage asks for the base image filename.
	StageImage Stage = iota + 1
	// StageWatermark asks for the watermark image filename.
	StageWatermark
	// StageTransparency asks for the transparency color.
	StageTransparency
	// StageWeight asks for the blend weight percentage.
	StageWeight
	// StageMethod asks for the placement method.
	StageMethod
	// StageOutput asks for the output filename.
	StageOutput
	// StagePosition asks for the single placement position.
	StagePosition
)

// String returns the stage name used in diagnostics.
func (s Stage) String() string {
	switch s {
	case StageImage:
		return "image"
	case StageWatermark:
		return "watermark"
	case StageTransparency:
		return "transparency"
	case StageWeight:
		return "weight"
	case StageMethod:
		return "method"
	case StageOutput:
		return "output"
	case StagePosition:
		return "position"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Kind classifies a validation failure.
type Kind int

const (
	// MissingFile means the named file does not exist.
	MissingFile Kind = iota + 1
	// InvalidColorModel means the file is not a 3-component 24 or 32-bit image.
	InvalidColorModel
	// OversizedWatermark means the watermark is wider or taller than the base.
	OversizedWatermark
	// InvalidTransparencyInput means the color is malformed or out of range.
	InvalidTransparencyInput
	// InvalidWeightInput means the weight is not an integer in 0-100.
	InvalidWeightInput
	// InvalidMethodInput means the method is neither "single" nor "grid".
	InvalidMethodInput
	// InvalidOutputExtension means the output name does not end in .jpg or .png.
	InvalidOutputExtension
	// InvalidPositionInput means the position is malformed or out of range.
	InvalidPositionInput
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case MissingFile:
		return "MissingFile"
	case InvalidColorModel:
		return "InvalidColorModel"
	case OversizedWatermark:
		return "OversizedWatermark"
	case InvalidTransparencyInput:
		return "InvalidTransparencyInput"
	case InvalidWeightInput:
		return "InvalidWeightInput"
	case InvalidMethodInput:
		return "InvalidMethodInput"
	case InvalidOutputExtension:
		return "InvalidOutputExtension"
	case InvalidPositionInput:
		return "InvalidPositionInput"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a failed answer. Message is the line shown to the user; Err, when
// set, is the underlying cause.
type Error struct {
	Kind    Kind
	Stage   Stage
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status for this failure.
func (e *Error) ExitCode() int {
	return int(e.Stage)
}

func newError(stage Stage, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Stage: stage, Message: msg}
}
