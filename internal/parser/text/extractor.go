// Package text handles plain-text CV files.
package text

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/internal/parser/patterns"
)

// Extractor reads the file as UTF-8, splits it into paragraphs on blank
// lines, and scans for URLs.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

func (e *Extractor) Extract(ctx context.Context, path string, doc *models.ParsedDocument) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading text file: %w", err)
	}

	content := string(data)
	doc.RawText = content
	doc.Paragraphs = splitParagraphs(content)
	doc.Hyperlinks = patterns.Merge(doc.Hyperlinks, patterns.URLs(content))
	return nil
}

// splitParagraphs breaks content into blocks separated by one or more blank
// lines; each block is trimmed and empty blocks are dropped.
func splitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	out := []string{}
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}
