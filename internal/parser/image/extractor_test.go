package image

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/pkg/logger"
)

type stubEngine struct {
	text string
	err  error
}

func (s stubEngine) Recognize(context.Context, image.Image) (string, error) { return s.text, s.err }
func (s stubEngine) Close() error                                           { return nil }

func writePNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract(t *testing.T) {
	path := writePNG(t, 120, 80)

	doc := models.NewParsedDocument(models.FormatImage)
	e := NewExtractor(stubEngine{text: "Jane Doe\nEngineer"}, logger.NewTestLogger())
	if err := e.Extract(context.Background(), path, doc); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if doc.RawText != "Jane Doe\nEngineer" {
		t.Errorf("RawText = %q", doc.RawText)
	}

	info := doc.ImageInfo
	if info == nil {
		t.Fatal("ImageInfo nil")
	}
	if info.Width != 120 || info.Height != 80 {
		t.Errorf("dimensions = %dx%d", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format = %q", info.Format)
	}
	if info.Mode != "L" {
		t.Errorf("Mode = %q", info.Mode)
	}

	// PNG carries no EXIF.
	if len(doc.Metadata) != 0 {
		t.Errorf("Metadata = %v", doc.Metadata)
	}
}

func TestExtractOCRFailureKeepsImageInfo(t *testing.T) {
	path := writePNG(t, 10, 10)

	doc := models.NewParsedDocument(models.FormatImage)
	e := NewExtractor(stubEngine{err: errors.New("engine down")}, logger.NewTestLogger())

	err := e.Extract(context.Background(), path, doc)
	if err == nil {
		t.Fatal("expected OCR error")
	}
	if doc.ImageInfo == nil {
		t.Error("ImageInfo lost on OCR failure")
	}
	if doc.RawText != "" {
		t.Errorf("RawText = %q, want empty", doc.RawText)
	}
}

func TestExtractNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	doc := models.NewParsedDocument(models.FormatImage)
	e := NewExtractor(stubEngine{}, logger.NewTestLogger())
	if err := e.Extract(context.Background(), path, doc); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestHasEXIF(t *testing.T) {
	cases := map[string]bool{
		"a.jpg":  true,
		"a.JPEG": true,
		"a.tif":  true,
		"a.tiff": true,
		"a.png":  false,
		"a.txt":  false,
	}
	for path, want := range cases {
		if got := hasEXIF(path); got != want {
			t.Errorf("hasEXIF(%q) = %v, want %v", path, got, want)
		}
	}
}
