// Package docx extracts text, core document properties, and hyperlinks from
// Word documents (OOXML .docx packages).
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

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

// Extract reads word/document.xml for paragraph text, docProps/core.xml for
// document properties, and the document relationships for external links.
// Text-pattern URLs are merged with relationship-declared ones.
func (e *Extractor) Extract(ctx context.Context, path string, doc *models.ParsedDocument) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening DOCX: %w", err)
	}
	defer r.Close()

	fileIndex := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		fileIndex[f.Name] = f
	}

	docXML, err := readZipFile(fileIndex, "word/document.xml")
	if err != nil {
		return fmt.Errorf("reading document.xml: %w", err)
	}

	text, err := paragraphText(docXML)
	if err != nil {
		return fmt.Errorf("parsing document.xml: %w", err)
	}
	doc.RawText = text

	// Core properties are optional; a package without them is still a
	// valid document.
	if propsXML, err := readZipFile(fileIndex, "docProps/core.xml"); err == nil {
		for k, v := range coreProperties(propsXML) {
			doc.Metadata[k] = v
		}
	}

	links := relationshipLinks(fileIndex)
	doc.Hyperlinks = patterns.Merge(doc.Hyperlinks, links, patterns.URLs(text))

	return nil
}

func readZipFile(fileIndex map[string]*zip.File, name string) ([]byte, error) {
	zf, ok := fileIndex[name]
	if !ok {
		return nil, fmt.Errorf("%s not found in package", name)
	}
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Simplified WordprocessingML structures; only the text-bearing elements.
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	Paras []docxPara `xml:"p"`
}

type docxPara struct {
	Runs  []docxRun  `xml:"r"`
	Links []docxLink `xml:"hyperlink"`
}

type docxLink struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []string `xml:"t"`
}

// paragraphText joins all non-empty paragraph texts, one per line, in
// document order.
func paragraphText(data []byte) (string, error) {
	var d docxDocument
	if err := xml.Unmarshal(data, &d); err != nil {
		return "", err
	}

	var lines []string
	for _, para := range d.Body.Paras {
		var b strings.Builder
		for _, run := range para.Runs {
			for _, t := range run.Text {
				b.WriteString(t)
			}
		}
		for _, link := range para.Links {
			for _, run := range link.Runs {
				for _, t := range run.Text {
					b.WriteString(t)
				}
			}
		}
		if text := b.String(); strings.TrimSpace(text) != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// coreXML maps docProps/core.xml. Element names match on local name, so the
// dc/dcterms/cp namespaces need no explicit handling.
type coreXML struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	Keywords       string `xml:"keywords"`
	Description    string `xml:"description"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Revision       string `xml:"revision"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
	LastPrinted    string `xml:"lastPrinted"`
	Category       string `xml:"category"`
	ContentStatus  string `xml:"contentStatus"`
	Language       string `xml:"language"`
	Identifier     string `xml:"identifier"`
	Version        string `xml:"version"`
}

// coreProperties returns the fixed property set, skipping empty values.
// Datetime properties arrive as W3CDTF strings, which are already ISO-8601.
func coreProperties(data []byte) map[string]string {
	var c coreXML
	if err := xml.Unmarshal(data, &c); err != nil {
		return nil
	}

	props := map[string]string{
		"title":          c.Title,
		"subject":        c.Subject,
		"author":         c.Creator,
		"keywords":       c.Keywords,
		"comments":       c.Description,
		"lastModifiedBy": c.LastModifiedBy,
		"revision":       c.Revision,
		"created":        c.Created,
		"modified":       c.Modified,
		"lastPrinted":    c.LastPrinted,
		"category":       c.Category,
		"contentStatus":  c.ContentStatus,
		"language":       c.Language,
		"identifier":     c.Identifier,
		"version":        c.Version,
	}
	for k, v := range props {
		if v == "" {
			delete(props, k)
		}
	}
	return props
}

// relsXML maps a .rels relationship file.
type relsXML struct {
	XMLName xml.Name  `xml:"Relationships"`
	Rels    []relsRel `xml:"Relationship"`
}

type relsRel struct {
	ID         string `xml:"Id,attr"`
	Target     string `xml:"Target,attr"`
	Type       string `xml:"Type,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// relationshipLinks returns the externally-targeted http(s) relationship
// URLs declared in the document package.
func relationshipLinks(fileIndex map[string]*zip.File) []string {
	data, err := readZipFile(fileIndex, "word/_rels/document.xml.rels")
	if err != nil {
		return nil
	}

	var rels relsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil
	}

	var links []string
	for _, rel := range rels.Rels {
		if rel.TargetMode == "External" && strings.HasPrefix(rel.Target, "http") {
			links = append(links, rel.Target)
		}
	}
	return links
}
