// Package image extracts text from scanned CV images via OCR, together with
// decode-time attributes and EXIF metadata.
package image

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/internal/parser/ocr"
	"github.com/mikawi/g2scv/pkg/logger"
)

// Extractor runs a single whole-image OCR pass over the input. No region
// segmentation is attempted; the engine sees the full page.
type Extractor struct {
	engine ocr.Engine
	log    logger.Logger
}

func NewExtractor(engine ocr.Engine, log logger.Logger) *Extractor {
	return &Extractor{engine: engine, log: log}
}

// Extract decodes the image, records its dimensions and color mode, reads
// EXIF tags for formats that carry them, and OCRs the whole image into
// RawText. An OCR failure leaves the document populated up to that point.
func (e *Extractor) Extract(ctx context.Context, path string, doc *models.ParsedDocument) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	doc.ImageInfo = &models.ImageInfo{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
		Mode:   colorMode(img),
	}

	// EXIF is only carried by JPEG and TIFF; other formats simply have none.
	if hasEXIF(path) {
		tags, err := exifTags(path)
		if err != nil {
			e.log.Warn("reading EXIF metadata", logger.String("path", path), logger.Error(err))
		} else {
			for k, v := range tags {
				doc.Metadata[k] = v
			}
		}
	}

	text, err := e.engine.Recognize(ctx, img)
	if err != nil {
		return fmt.Errorf("running OCR: %w", err)
	}
	doc.RawText = text

	return nil
}

func hasEXIF(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".tif", ".tiff":
		return true
	}
	return false
}

func colorMode(img image.Image) string {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return "L"
	case *image.RGBA, *image.RGBA64:
		return "RGBA"
	case *image.NRGBA, *image.NRGBA64:
		return "RGBA"
	case *image.YCbCr:
		return "YCbCr"
	case *image.CMYK:
		return "CMYK"
	case *image.Paletted:
		return "P"
	default:
		return "RGB"
	}
}
