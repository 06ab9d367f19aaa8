package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("out", "caustics")
	sc.now = fixedClock

	want := filepath.Join("out", "caustics_2026-03-01_12-30-00_000.png")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCaptureFromImageNumbersFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	sc := NewScreenshotCapture(dir, "caustics")
	sc.now = fixedClock

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	first, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("first capture failed: %v", err)
	}
	second, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("second capture failed: %v", err)
	}
	if first == second {
		t.Fatalf("captures in the same second must not collide: %s", first)
	}
	for _, f := range []string{first, second} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("expected %s to exist: %v", f, err)
		}
	}
}

func TestCaptureFromPixels(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "frame")

	// 1x2 image: red row on top, blue row below
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	top := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	if top.R != 255 || top.B != 0 {
		t.Errorf("expected red top row, got %+v", top)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "frame")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
