package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/mikawi/g2scv/pkg/logger"
)

// TesseractConfig controls the local OCR engine.
type TesseractConfig struct {
	Languages   []string // defaults to ["eng"]
	PageSegMode gosseract.PageSegMode
	Preprocess  bool // grayscale/contrast/sharpen pass before recognition
}

// preprocessor is one step of the image cleanup pipeline run before
// recognition.
type preprocessor interface {
	Process(img image.Image) (image.Image, error)
}

type grayscaleStep struct{}

func (grayscaleStep) Process(img image.Image) (image.Image, error) {
	return imaging.Grayscale(img), nil
}

type contrastStep struct{ amount float64 }

func (s contrastStep) Process(img image.Image) (image.Image, error) {
	return imaging.AdjustContrast(img, s.amount), nil
}

type sharpenStep struct{ sigma float64 }

func (s sharpenStep) Process(img image.Image) (image.Image, error) {
	return imaging.Sharpen(img, s.sigma), nil
}

// Tesseract runs gosseract over preprocessed images. A fresh client is
// created per call, so one engine can serve concurrent parses.
type Tesseract struct {
	cfg   TesseractConfig
	steps []preprocessor
	log   logger.Logger
}

func NewTesseract(cfg TesseractConfig, log logger.Logger) *Tesseract {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}

	var steps []preprocessor
	if cfg.Preprocess {
		steps = []preprocessor{
			grayscaleStep{},
			contrastStep{amount: 10},
			sharpenStep{sigma: 0.5},
		}
	}

	return &Tesseract{cfg: cfg, steps: steps, log: log}
}

func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	processed := img
	for _, step := range t.steps {
		var err error
		processed, err = step.Process(processed)
		if err != nil {
			return "", fmt.Errorf("preprocessing image: %w", err)
		}
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, imaging.Clone(processed), &jpeg.Options{Quality: 100}); err != nil {
		return "", fmt.Errorf("encoding image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Join(t.cfg.Languages, "+")); err != nil {
		return "", fmt.Errorf("setting OCR language: %w", err)
	}
	if err := client.SetPageSegMode(t.cfg.PageSegMode); err != nil {
		return "", fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("setting OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return text, nil
}

func (t *Tesseract) Close() error { return nil }
