// Package parser turns a CV file (PDF, DOCX, image, or plain text) into a
// uniform ParsedDocument: detected format, extracted text, hyperlinks,
// contact fields, named entities, and resume section blocks.
//
// A Parser holds no per-call state; one instance may be shared by any number
// of goroutines parsing different files. Each call opens and closes its own
// file handles and either returns a structurally complete document (possibly
// with the Error field set) or fails outright for a missing file or an
// unsupported format.
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/internal/parser/docx"
	"github.com/mikawi/g2scv/internal/parser/entities"
	imgext "github.com/mikawi/g2scv/internal/parser/image"
	"github.com/mikawi/g2scv/internal/parser/ocr"
	"github.com/mikawi/g2scv/internal/parser/patterns"
	pdfext "github.com/mikawi/g2scv/internal/parser/pdf"
	"github.com/mikawi/g2scv/internal/parser/sections"
	textext "github.com/mikawi/g2scv/internal/parser/text"
	"github.com/mikawi/g2scv/pkg/logger"
)

// extractor is implemented by each format-specific extraction strategy. An
// extractor fills in the fields it is responsible for and may return an
// error after partial population; the document keeps whatever was written.
type extractor interface {
	Extract(ctx context.Context, path string, doc *models.ParsedDocument) error
}

// Config wires the parser's collaborators. All fields are optional.
type Config struct {
	Logger   logger.Logger
	Entities entities.Extractor // nil selects the no-op extractor
	OCR      ocr.Engine         // nil selects the tesseract engine
}

// Parser parses CV files into ParsedDocuments. Construct once at process
// start; it is read-only afterwards.
type Parser struct {
	log      logger.Logger
	entities entities.Extractor
	ocr      ocr.Engine

	pdf   extractor
	image extractor
	docx  extractor
	text  extractor
}

// New constructs a Parser from cfg.
func New(cfg Config) *Parser {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	ents := cfg.Entities
	if ents == nil {
		ents = entities.Noop{}
	}

	engine := cfg.OCR
	if engine == nil {
		engine = ocr.NewTesseract(ocr.TesseractConfig{}, log)
	}

	return &Parser{
		log:      log,
		entities: ents,
		ocr:      engine,
		pdf:      pdfext.NewExtractor(log.Named("pdf")),
		image:    imgext.NewExtractor(engine, log.Named("image")),
		docx:     docx.NewExtractor(log.Named("docx")),
		text:     textext.NewExtractor(),
	}
}

// Close releases resources held by the parser's collaborators.
func (p *Parser) Close() error {
	return p.ocr.Close()
}

// Parse reads the file at path and returns its ParsedDocument.
//
// Fatal conditions return a nil document: a missing file yields an error
// wrapping ErrFileNotFound, an unclassifiable file an *UnsupportedFormatError.
// Any failure inside a format extractor is recovered: it is logged and
// surfaced through the document's Error field, with FileInfo populated and
// all containers valid.
func (p *Parser) Parse(ctx context.Context, path string) (*models.ParsedDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	format, mime, err := detect(path)
	if err != nil {
		return nil, err
	}

	doc := models.NewParsedDocument(format)
	doc.FileInfo = models.FileInfo{
		Filename:     filepath.Base(path),
		Path:         path,
		SizeBytes:    info.Size(),
		MimeType:     mime,
		LastModified: info.ModTime().Format(time.RFC3339),
	}

	var ext extractor
	switch format {
	case models.FormatPDF:
		ext = p.pdf
	case models.FormatImage:
		ext = p.image
	case models.FormatDocx:
		ext = p.docx
	case models.FormatText:
		ext = p.text
	default:
		// detect only emits the four formats above.
		return nil, &UnsupportedFormatError{MimeType: mime, Extension: filepath.Ext(path)}
	}

	if err := ext.Extract(ctx, path, doc); err != nil {
		p.log.Warn("extraction failed",
			logger.String("path", path),
			logger.String("format", string(format)),
			logger.Error(err),
		)
		doc.Error = err.Error()
	}

	p.postProcess(doc)
	return doc, nil
}

// postProcess derives the cross-format fields from the extracted text:
// text-sourced hyperlinks, contact info, entities, and CV sections.
func (p *Parser) postProcess(doc *models.ParsedDocument) {
	text := doc.RawText

	doc.Hyperlinks = patterns.Merge(doc.Hyperlinks, patterns.URLs(text))
	doc.ContactInfo = models.ContactInfo{
		Emails:   patterns.Emails(text),
		Phones:   patterns.Phones(text),
		LinkedIn: patterns.LinkedIn(text),
		GitHub:   patterns.GitHub(text),
	}
	doc.Entities = entities.Categorize(p.entities, text)
	doc.CVSections = sections.Split(text)
}
