// Package pdf extracts text, metadata, and hyperlinks from PDF files.
//
// Two strategies are chained. The primary one walks pages with ledongthuc/pdf
// for text, copies the trailer Info dictionary, and collects link annotations
// (URL, page, bounding box) through pdfcpu. When the primary reader rejects
// the file, a fallback decodes page content streams via pdfcpu for text and
// metadata only; hyperlink discovery is then left to text-pattern scanning.
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/internal/parser/patterns"
	"github.com/mikawi/g2scv/pkg/logger"
)

type Extractor struct {
	log logger.Logger
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{log: log}
}

func (e *Extractor) Extract(ctx context.Context, path string, doc *models.ParsedDocument) error {
	if err := e.extractPrimary(ctx, path, doc); err != nil {
		e.log.Warn("primary PDF extraction failed, trying fallback",
			logger.String("path", path),
			logger.Error(err),
		)
		if ferr := e.extractFallback(ctx, path, doc); ferr != nil {
			return fmt.Errorf("pdf extraction failed: %v (fallback: %w)", err, ferr)
		}
	}
	return nil
}

// extractPrimary produces pages, rawText, metadata, and annotation-sourced
// hyperlinks.
func (e *Extractor) extractPrimary(ctx context.Context, path string, doc *models.ParsedDocument) (err error) {
	defer func() {
		// The underlying reader panics on some malformed page trees and
		// content streams; convert that into the error that selects the
		// fallback strategy.
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	trailerMetadata(reader, doc.Metadata)

	// Annotation discovery uses a second reader; its failure only costs the
	// per-page link lists, never the parse.
	pageLinks, err := linkAnnotations(path)
	if err != nil {
		e.log.Warn("reading PDF link annotations", logger.String("path", path), logger.Error(err))
		pageLinks = nil
	}

	totalPages := reader.NumPage()
	pageTexts := make([]string, 0, totalPages)
	var annotated []string

	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageText := ""
		page := reader.Page(i)
		if !page.V.IsNull() {
			if text, err := page.GetPlainText(nil); err == nil {
				pageText = text
			}
			// Pages that fail text extraction still appear, empty.
		}

		links := pageLinks[i]
		if links == nil {
			links = []models.Link{}
		}
		for _, l := range links {
			annotated = append(annotated, l.URL)
		}

		doc.Pages = append(doc.Pages, models.Page{
			Number: i,
			Text:   pageText,
			Links:  links,
		})
		pageTexts = append(pageTexts, pageText)
	}

	doc.RawText = strings.TrimSpace(strings.Join(pageTexts, "\n\n"))
	doc.Hyperlinks = patterns.Merge(doc.Hyperlinks, annotated, patterns.URLs(doc.RawText))
	return nil
}

// trailerMetadata copies the non-empty entries of the trailer Info
// dictionary into meta, normalizing PDF date strings to ISO-8601.
func trailerMetadata(reader *pdf.Reader, meta map[string]string) {
	defer func() {
		// The underlying reader panics on some malformed trailers; treat
		// that the same as an absent Info dictionary.
		_ = recover()
	}()

	trailer := reader.Trailer()
	if trailer.IsNull() {
		return
	}
	info := trailer.Key("Info")
	if info.IsNull() {
		return
	}

	for _, key := range info.Keys() {
		s := valueText(info.Key(key))
		if s == "" {
			continue
		}
		if key == "CreationDate" || key == "ModDate" {
			s = isoDate(s)
		}
		meta[key] = s
	}
}

func valueText(v pdf.Value) string {
	switch v.Kind() {
	case pdf.String:
		return v.Text()
	case pdf.Name:
		return v.Name()
	case pdf.Integer:
		return strconv.FormatInt(v.Int64(), 10)
	case pdf.Real:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case pdf.Bool:
		return strconv.FormatBool(v.Bool())
	}
	return ""
}

// isoDate converts a PDF date of the form D:YYYYMMDDHHmmSS[offset] to
// RFC 3339. Strings that do not parse are returned verbatim.
func isoDate(s string) string {
	raw := strings.TrimPrefix(s, "D:")

	// Normalize the O HH'mm' timezone suffix to +hhmm.
	raw = strings.ReplaceAll(raw, "'", "")
	if strings.HasSuffix(raw, "Z") {
		raw = strings.TrimSuffix(raw, "Z") + "+0000"
	}

	for _, layout := range []string{
		"20060102150405-0700",
		"20060102150405",
		"200601021504",
		"20060102",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(time.RFC3339)
		}
	}
	return s
}
