package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/mikawi/g2scv/pkg/logger"
)

// TextractConfig holds AWS credentials and region for the cloud engine.
type TextractConfig struct {
	Region    string
	AccessKey string
	SecretKey string
}

// Textract recognizes text with AWS Textract. It is the alternative to the
// local tesseract engine for deployments without a tesseract install.
type Textract struct {
	client *textract.Client
	log    logger.Logger
}

func NewTextract(ctx context.Context, cfg TextractConfig, log logger.Logger) (*Textract, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Textract{client: textract.NewFromConfig(awsCfg), log: log}, nil
}

func (t *Textract) Recognize(ctx context.Context, img image.Image) (string, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return "", fmt.Errorf("encoding image for OCR: %w", err)
	}

	out, err := t.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: buf.Bytes()},
	})
	if err != nil {
		return "", fmt.Errorf("textract detect: %w", err)
	}

	var lines []string
	for _, block := range out.Blocks {
		if block.BlockType == types.BlockTypeLine && block.Text != nil {
			lines = append(lines, *block.Text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (t *Textract) Close() error { return nil }
