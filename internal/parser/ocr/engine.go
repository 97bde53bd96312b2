// Package ocr provides the optical character recognition engines used by the
// image extractor: a local tesseract engine and an AWS Textract engine.
package ocr

import (
	"context"
	"image"
)

// Engine recognizes text in a whole image in a single pass. Implementations
// must be safe for concurrent use across files.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
	Close() error
}
