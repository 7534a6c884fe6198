package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ironsheep/image-watermark/internal/imaging"
	"go.uber.org/zap"
)

// maxLineBytes bounds a single answer line.
const maxLineBytes = 1024 * 1024

// Session asks the questions on out and reads one answer per line from in.
type Session struct {
	scanner *bufio.Scanner
	out     io.Writer
	log     *zap.Logger
}

// NewSession creates a session. A nil logger disables diagnostics.
func NewSession(in io.Reader, out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineBytes)

	return &Session{
		scanner: scanner,
		out:     out,
		log:     log,
	}
}

// step answers one question, returning the settings extended with the answer.
type step func(s *Session, cur Settings) (Settings, error)

var steps = []step{
	askImage,
	askWatermark,
	askAlpha,
	askTransparency,
	askWeight,
	askMethod,
	askPosition,
	askOutput,
}

// Collect runs every question in order and returns the validated settings.
// The first invalid answer ends the session with an *Error.
func (s *Session) Collect() (*Settings, error) {
	var cur Settings
	for _, st := range steps {
		next, err := st(s, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return &cur, nil
}

// ask writes the question and reads the next line. io.EOF is returned when the
// input ends first.
func (s *Session) ask(question string) (string, error) {
	fmt.Fprintln(s.out, question)

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// askFor is ask for a question whose failure belongs to stage.
func (s *Session) askFor(stage Stage, kind Kind, question string) (string, error) {
	line, err := s.ask(question)
	if errors.Is(err, bufio.ErrTooLong) {
		return "", &Error{Kind: kind, Stage: stage, Message: "The input line is too long.", Err: err}
	}
	if err != nil {
		return "", &Error{Kind: kind, Stage: stage, Message: "The input ended unexpectedly.", Err: err}
	}
	return line, nil
}

func askImage(s *Session, cur Settings) (Settings, error) {
	path, err := s.askFor(StageImage, MissingFile, "Input the image filename:")
	if err != nil {
		return cur, err
	}

	src, err := CheckImage(path)
	if err != nil {
		return cur, err
	}

	s.log.Debug("base image accepted",
		zap.String("path", path),
		zap.String("format", src.Info.Format),
		zap.Int("width", src.Info.Width),
		zap.Int("height", src.Info.Height),
		zap.Int("bits", src.Info.Model.BitsPerPixel))

	cur.Base = src
	return cur, nil
}

func askWatermark(s *Session, cur Settings) (Settings, error) {
	path, err := s.askFor(StageWatermark, MissingFile, "Input the watermark image filename:")
	if err != nil {
		return cur, err
	}

	src, err := CheckWatermark(path, cur.Base.Info.Size())
	if err != nil {
		return cur, err
	}

	s.log.Debug("watermark accepted",
		zap.String("path", path),
		zap.String("format", src.Info.Format),
		zap.Int("width", src.Info.Width),
		zap.Int("height", src.Info.Height),
		zap.Bool("alpha", src.Info.Model.HasAlpha))

	cur.Watermark = src
	return cur, nil
}

func askAlpha(s *Session, cur Settings) (Settings, error) {
	if !cur.Watermark.Info.Model.HasAlpha {
		return cur, nil
	}

	line, err := s.ask("Do you want to use the watermark's Alpha channel?")
	if err != nil {
		s.log.Debug("no answer to alpha question", zap.Error(err))
	}

	cur.UseAlpha = ParseAnswer(line)
	return cur, nil
}

func askTransparency(s *Session, cur Settings) (Settings, error) {
	if cur.Watermark.Info.Model.HasAlpha {
		return cur, nil
	}

	line, err := s.ask("Do you want to set a transparency color?")
	if err != nil {
		s.log.Debug("no answer to transparency question", zap.Error(err))
	}
	if !ParseAnswer(line) {
		return cur, nil
	}

	line, err = s.askFor(StageTransparency, InvalidTransparencyInput, "Input a transparency color ([Red] [Green] [Blue]):")
	if err != nil {
		return cur, err
	}

	key, err := ParseTransparency(line)
	if err != nil {
		return cur, err
	}

	s.log.Debug("transparency color accepted", zap.String("color", key.Hex()))

	cur.Transparency = &key
	return cur, nil
}

func askWeight(s *Session, cur Settings) (Settings, error) {
	line, err := s.askFor(StageWeight, InvalidWeightInput, "Input the watermark transparency percentage (Integer 0-100):")
	if err != nil {
		return cur, err
	}

	weight, err := ParseWeight(line)
	if err != nil {
		return cur, err
	}

	cur.Weight = weight
	return cur, nil
}

func askMethod(s *Session, cur Settings) (Settings, error) {
	line, err := s.askFor(StageMethod, InvalidMethodInput, "Choose the position method (single, grid):")
	if err != nil {
		return cur, err
	}

	method, err := ParseMethod(line)
	if err != nil {
		return cur, err
	}

	cur.Method = method
	return cur, nil
}

func askPosition(s *Session, cur Settings) (Settings, error) {
	if cur.Method != imaging.Single {
		return cur, nil
	}

	limit := cur.MaxPosition()
	question := fmt.Sprintf("Input the watermark position ([x 0-%d] [y 0-%d]):", limit.X, limit.Y)

	line, err := s.askFor(StagePosition, InvalidPositionInput, question)
	if err != nil {
		return cur, err
	}

	pos, err := ParsePosition(line, limit)
	if err != nil {
		return cur, err
	}

	cur.Position = pos
	return cur, nil
}

func askOutput(s *Session, cur Settings) (Settings, error) {
	line, err := s.askFor(StageOutput, InvalidOutputExtension, "Input the output image filename (jpg or png extension):")
	if err != nil {
		return cur, err
	}

	output, err := ParseOutput(line)
	if err != nil {
		return cur, err
	}

	cur.Output = output
	return cur, nil
}
