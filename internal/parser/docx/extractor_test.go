package docx

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/pkg/logger"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r><w:r><w:t xml:space="preserve"> - Engineer</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Contact me at </w:t></w:r><w:hyperlink r:id="rId4" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:r><w:t>my site</w:t></w:r></w:hyperlink></w:p>
  </w:body>
</w:document>`

const coreXMLFixture = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <dc:title>My CV</dc:title>
  <dc:creator>Jane Doe</dc:creator>
  <cp:lastModifiedBy>Jane Doe</cp:lastModifiedBy>
  <cp:revision>3</cp:revision>
  <dcterms:created xsi:type="dcterms:W3CDTF">2023-01-02T10:00:00Z</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">2024-05-06T11:00:00Z</dcterms:modified>
</cp:coreProperties>`

const relsXMLFixture = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type=".../styles" Target="styles.xml"/>
  <Relationship Id="rId4" Type=".../hyperlink" Target="https://janedoe.dev" TargetMode="External"/>
  <Relationship Id="rId5" Type=".../hyperlink" Target="mailto:jane@example.com" TargetMode="External"/>
</Relationships>`

// buildDocx assembles a minimal .docx package.
func buildDocx(t *testing.T, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cv.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract(t *testing.T) {
	path := buildDocx(t, map[string]string{
		"word/document.xml":            documentXML,
		"docProps/core.xml":            coreXMLFixture,
		"word/_rels/document.xml.rels": relsXMLFixture,
	})

	doc := models.NewParsedDocument(models.FormatDocx)
	e := NewExtractor(logger.NewTestLogger())
	if err := e.Extract(context.Background(), path, doc); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	wantText := "Jane Doe - Engineer\nContact me at my site"
	if doc.RawText != wantText {
		t.Errorf("RawText = %q, want %q", doc.RawText, wantText)
	}

	wantMeta := map[string]string{
		"title":          "My CV",
		"author":         "Jane Doe",
		"lastModifiedBy": "Jane Doe",
		"revision":       "3",
		"created":        "2023-01-02T10:00:00Z",
		"modified":       "2024-05-06T11:00:00Z",
	}
	for k, v := range wantMeta {
		if doc.Metadata[k] != v {
			t.Errorf("Metadata[%q] = %q, want %q", k, doc.Metadata[k], v)
		}
	}
	if _, ok := doc.Metadata["subject"]; ok {
		t.Error("empty subject property kept")
	}

	// Only the external http link; styles.xml and mailto are skipped.
	if len(doc.Hyperlinks) != 1 || doc.Hyperlinks[0] != "https://janedoe.dev" {
		t.Errorf("Hyperlinks = %v", doc.Hyperlinks)
	}
}

func TestExtractWithoutOptionalParts(t *testing.T) {
	path := buildDocx(t, map[string]string{
		"word/document.xml": documentXML,
	})

	doc := models.NewParsedDocument(models.FormatDocx)
	e := NewExtractor(logger.NewTestLogger())
	if err := e.Extract(context.Background(), path, doc); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(doc.Metadata) != 0 {
		t.Errorf("Metadata = %v, want empty", doc.Metadata)
	}
	if !strings.Contains(doc.RawText, "Jane Doe") {
		t.Errorf("RawText = %q", doc.RawText)
	}
}

func TestExtractMissingDocumentXML(t *testing.T) {
	path := buildDocx(t, map[string]string{
		"docProps/core.xml": coreXMLFixture,
	})

	doc := models.NewParsedDocument(models.FormatDocx)
	e := NewExtractor(logger.NewTestLogger())
	if err := e.Extract(context.Background(), path, doc); err == nil {
		t.Fatal("expected error for package without document.xml")
	}
}

func TestExtractNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	doc := models.NewParsedDocument(models.FormatDocx)
	e := NewExtractor(logger.NewTestLogger())
	if err := e.Extract(context.Background(), path, doc); err == nil {
		t.Fatal("expected error for corrupt package")
	}
}
