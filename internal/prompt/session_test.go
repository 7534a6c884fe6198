package prompt

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-watermark/internal/imaging"
)

// writeImage encodes img as PNG into dir and returns the file path.
func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return path
}

// solid returns an opaque image filled with c.
func solid(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// translucent returns an image filled with c whose first pixel is fully
// transparent, so it is stored with an alpha channel.
func translucent(width, height int, c color.NRGBA) *image.NRGBA {
	img := solid(width, height, c)
	img.SetNRGBA(0, 0, color.NRGBA{c.R, c.G, c.B, 0})
	return img
}

// writeGrayAlphaPNG writes a PNG with color type 4 (gray+alpha) at the given
// bit depth. image/png never produces this layout, so the chunks are built by
// hand.
func writeGrayAlphaPNG(t *testing.T, dir, name string, width, height int, depth uint8) string {
	t.Helper()

	var raw bytes.Buffer
	zw := zlib.NewWriter(&raw)
	row := bytes.Repeat([]byte{0x80}, width*2*int(depth)/8)
	for y := 0; y < height; y++ {
		zw.Write([]byte{0})
		zw.Write(row)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to compress image data: %v", err)
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(height))
	ihdr[8] = depth
	ihdr[9] = 4

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	writeChunk := func(kind string, data []byte) {
		binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		buf.WriteString(kind)
		buf.Write(data)
		binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(append([]byte(kind), data...)))
	}
	writeChunk("IHDR", ihdr)
	writeChunk("IDAT", raw.Bytes())
	writeChunk("IEND", nil)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

type fixture struct {
	dir       string
	base      string
	watermark string
	alphaMark string
	bigMark   string
	grayImage string
	grayAlpha string
	gray16    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	return fixture{
		dir:       dir,
		base:      writeImage(t, dir, "base.png", solid(8, 6, color.NRGBA{0, 0, 0, 255})),
		watermark: writeImage(t, dir, "mark.png", solid(3, 2, color.NRGBA{255, 255, 255, 255})),
		alphaMark: writeImage(t, dir, "alpha.png", translucent(3, 2, color.NRGBA{255, 255, 255, 255})),
		bigMark:   writeImage(t, dir, "big.png", solid(9, 2, color.NRGBA{255, 255, 255, 255})),
		grayImage: writeImage(t, dir, "gray.png", image.NewGray(image.Rect(0, 0, 8, 6))),
		grayAlpha: writeGrayAlphaPNG(t, dir, "gray-alpha.png", 3, 2, 8),
		gray16:    writeGrayAlphaPNG(t, dir, "gray-alpha16.png", 3, 2, 16),
	}
}

func collect(input ...string) (*Settings, string, error) {
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(input, "\n") + "\n")
	settings, err := NewSession(in, &out, nil).Collect()
	return settings, out.String(), err
}

func TestCollect_Single(t *testing.T) {
	fx := newFixture(t)

	settings, out, err := collect(fx.base, fx.watermark, "no", "50", "single", "5 4", "out.png")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	wantPrompts := []string{
		"Input the image filename:",
		"Input the watermark image filename:",
		"Do you want to set a transparency color?",
		"Input the watermark transparency percentage (Integer 0-100):",
		"Choose the position method (single, grid):",
		"Input the watermark position ([x 0-5] [y 0-4]):",
		"Input the output image filename (jpg or png extension):",
	}
	if got := strings.Split(strings.TrimSuffix(out, "\n"), "\n"); strings.Join(got, "|") != strings.Join(wantPrompts, "|") {
		t.Errorf("prompts:\n got %q\nwant %q", got, wantPrompts)
	}

	if settings.Base.Info.Size() != image.Pt(8, 6) {
		t.Errorf("Base size: got %v", settings.Base.Info.Size())
	}
	if settings.Watermark.Info.Size() != image.Pt(3, 2) {
		t.Errorf("Watermark size: got %v", settings.Watermark.Info.Size())
	}
	if settings.UseAlpha || settings.Transparency != nil {
		t.Errorf("no alpha or transparency expected, got %v / %v", settings.UseAlpha, settings.Transparency)
	}
	if settings.Weight != 50 {
		t.Errorf("Weight: got %d, want 50", settings.Weight)
	}
	if settings.Placement() != (imaging.Placement{Method: imaging.Single, Position: image.Pt(5, 4)}) {
		t.Errorf("Placement: got %+v", settings.Placement())
	}
	if settings.Output != "out.png" {
		t.Errorf("Output: got %s", settings.Output)
	}
}

func TestCollect_GridSkipsPosition(t *testing.T) {
	fx := newFixture(t)

	settings, out, err := collect(fx.base, fx.watermark, "no", "30", "grid", "out.jpg")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if strings.Contains(out, "position ([x") {
		t.Error("grid placement should not ask for a position")
	}
	if settings.Method != imaging.Grid {
		t.Errorf("Method: got %v, want grid", settings.Method)
	}
	if settings.Output != "out.jpg" {
		t.Errorf("Output: got %s", settings.Output)
	}
}

func TestCollect_AlphaWatermark(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		answer string
		want   bool
	}{
		{"YES", true},
		{"yes", true},
		{"no", false},
		{"sure", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			settings, out, err := collect(fx.base, fx.alphaMark, tt.answer, "100", "grid", "out.png")
			if err != nil {
				t.Fatalf("Collect failed: %v", err)
			}

			if !strings.Contains(out, "Do you want to use the watermark's Alpha channel?") {
				t.Error("alpha question should be asked")
			}
			if strings.Contains(out, "transparency color?") {
				t.Error("transparency question should not be asked for alpha watermarks")
			}
			if settings.UseAlpha != tt.want {
				t.Errorf("UseAlpha: got %v, want %v", settings.UseAlpha, tt.want)
			}
			if settings.BlendOptions().UseAlpha != tt.want {
				t.Errorf("BlendOptions.UseAlpha: got %v, want %v", settings.BlendOptions().UseAlpha, tt.want)
			}
		})
	}
}

func TestCollect_TransparencyColor(t *testing.T) {
	fx := newFixture(t)

	settings, out, err := collect(fx.base, fx.watermark, "Yes", "0 255 0", "10", "grid", "out.png")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if !strings.Contains(out, "Input a transparency color ([Red] [Green] [Blue]):") {
		t.Error("transparency color should be asked for")
	}
	if settings.Transparency == nil || *settings.Transparency != (imaging.RGBColor{R: 0, G: 255, B: 0}) {
		t.Errorf("Transparency: got %v, want {0 255 0}", settings.Transparency)
	}
	if settings.BlendOptions().Transparency != settings.Transparency {
		t.Error("BlendOptions should carry the transparency color")
	}
}

func TestCollect_Failures(t *testing.T) {
	fx := newFixture(t)
	missing := filepath.Join(fx.dir, "missing.png")

	tests := []struct {
		name     string
		input    []string
		stage    Stage
		kind     Kind
		message  string
		exitCode int
	}{
		{
			"missing base",
			[]string{missing},
			StageImage, MissingFile, "The file " + missing + " doesn't exist.", 1,
		},
		{
			"gray base",
			[]string{fx.grayImage},
			StageImage, InvalidColorModel, "The number of image color components isn't 3.", 1,
		},
		{
			"gray alpha base",
			[]string{fx.grayAlpha},
			StageImage, InvalidColorModel, "The number of image color components isn't 3.", 1,
		},
		{
			"16-bit gray alpha base",
			[]string{fx.gray16},
			StageImage, InvalidColorModel, "The number of image color components isn't 3.", 1,
		},
		{
			"missing watermark",
			[]string{fx.base, missing},
			StageWatermark, MissingFile, "The file " + missing + " doesn't exist.", 2,
		},
		{
			"gray watermark",
			[]string{fx.base, fx.grayImage},
			StageWatermark, InvalidColorModel, "The number of watermark color components isn't 3.", 2,
		},
		{
			"gray alpha watermark",
			[]string{fx.base, fx.grayAlpha},
			StageWatermark, InvalidColorModel, "The number of watermark color components isn't 3.", 2,
		},
		{
			"oversized watermark",
			[]string{fx.base, fx.bigMark},
			StageWatermark, OversizedWatermark, "The watermark's dimensions are larger.", 2,
		},
		{
			"bad transparency",
			[]string{fx.base, fx.watermark, "yes", "300 0 0"},
			StageTransparency, InvalidTransparencyInput, "The transparency color input is invalid.", 3,
		},
		{
			"weight out of range",
			[]string{fx.base, fx.watermark, "no", "150"},
			StageWeight, InvalidWeightInput, "The transparency percentage is out of range.", 4,
		},
		{
			"weight not a number",
			[]string{fx.base, fx.watermark, "no", "half"},
			StageWeight, InvalidWeightInput, "The transparency percentage isn't an integer number.", 4,
		},
		{
			"bad method",
			[]string{fx.base, fx.watermark, "no", "50", "Grid"},
			StageMethod, InvalidMethodInput, "The position method input is invalid.", 5,
		},
		{
			"position out of range",
			[]string{fx.base, fx.watermark, "no", "50", "single", "6 0"},
			StagePosition, InvalidPositionInput, "The position input is out of range.", 7,
		},
		{
			"position malformed",
			[]string{fx.base, fx.watermark, "no", "50", "single", "1,1"},
			StagePosition, InvalidPositionInput, "The position input is invalid.", 7,
		},
		{
			"bad output",
			[]string{fx.base, fx.watermark, "no", "50", "grid", "out.gif"},
			StageOutput, InvalidOutputExtension, `The output file extension isn't "jpg" or "png".`, 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, _, err := collect(tt.input...)
			if settings != nil {
				t.Error("no settings expected on failure")
			}
			perr := wantPromptError(t, err, tt.stage, tt.kind)
			if perr.Message != tt.message {
				t.Errorf("Message: got %q, want %q", perr.Message, tt.message)
			}
			if perr.ExitCode() != tt.exitCode {
				t.Errorf("ExitCode: got %d, want %d", perr.ExitCode(), tt.exitCode)
			}
		})
	}
}

func TestCollect_StopsAtFirstFailure(t *testing.T) {
	fx := newFixture(t)

	_, out, err := collect(fx.base, fx.watermark, "no", "150", "grid", "out.png")
	if err == nil {
		t.Fatal("Collect should fail")
	}
	if strings.Contains(out, "Choose the position method") {
		t.Error("no question should follow a failed answer")
	}
}

func TestCollect_EndOfInput(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name  string
		input []string
		stage Stage
	}{
		{"no input", nil, StageImage},
		{"after base", []string{fx.base}, StageWatermark},
		{"declined transparency", []string{fx.base, fx.watermark, "no"}, StageWeight},
		{"unanswered transparency question", []string{fx.base, fx.watermark}, StageWeight},
		{"unanswered alpha question", []string{fx.base, fx.alphaMark}, StageWeight},
		{"after method", []string{fx.base, fx.watermark, "no", "50", "single"}, StagePosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			in := strings.NewReader(strings.Join(tt.input, "\n"))
			_, err := NewSession(in, &out, nil).Collect()

			if err == nil {
				t.Fatal("Collect should fail at end of input")
			}
			perr := wantPromptErrorStage(t, err, tt.stage)
			if perr.Err == nil {
				t.Error("end of input should be recorded as the cause")
			}
		})
	}
}

func TestCollect_LongAnswer(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name    string
		size    int
		message string
	}{
		{"over default scanner limit", 100 * 1024, "The transparency percentage isn't an integer number."},
		{"over line limit", maxLineBytes + 1, "The input line is too long."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := collect(fx.base, fx.watermark, "no", strings.Repeat("9", tt.size), "grid", "out.png")

			perr := wantPromptError(t, err, StageWeight, InvalidWeightInput)
			if perr.Message != tt.message {
				t.Errorf("Message: got %q, want %q", perr.Message, tt.message)
			}
			if perr.ExitCode() != 4 {
				t.Errorf("ExitCode: got %d, want 4", perr.ExitCode())
			}
		})
	}
}

// wantPromptErrorStage asserts err is an *Error for the given stage.
func wantPromptErrorStage(t *testing.T, err error, stage Stage) *Error {
	t.Helper()
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if perr.Stage != stage {
		t.Errorf("Stage: got %v, want %v", perr.Stage, stage)
	}
	return perr
}

func TestSettings_MaxPosition(t *testing.T) {
	s := Settings{
		Base:      &imaging.Source{Info: imaging.ImageInfo{Width: 100, Height: 40}},
		Watermark: &imaging.Source{Info: imaging.ImageInfo{Width: 30, Height: 40}},
	}

	if got := s.MaxPosition(); got != image.Pt(70, 0) {
		t.Errorf("MaxPosition: got %v, want (70,0)", got)
	}
}
