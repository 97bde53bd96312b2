package text

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mikawi/g2scv/internal/models"
)

func TestExtract(t *testing.T) {
	content := "First block.\nStill first.\n\nSecond block with https://example.com inside.\n\n\nThird.\n"
	path := filepath.Join(t.TempDir(), "cv.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc := models.NewParsedDocument(models.FormatText)
	if err := (&Extractor{}).Extract(context.Background(), path, doc); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if doc.RawText != content {
		t.Errorf("RawText = %q", doc.RawText)
	}

	wantParas := []string{
		"First block.\nStill first.",
		"Second block with https://example.com inside.",
		"Third.",
	}
	if !reflect.DeepEqual(doc.Paragraphs, wantParas) {
		t.Errorf("Paragraphs = %q, want %q", doc.Paragraphs, wantParas)
	}

	if len(doc.Hyperlinks) != 1 || doc.Hyperlinks[0] != "https://example.com" {
		t.Errorf("Hyperlinks = %v", doc.Hyperlinks)
	}
}

func TestExtractCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	if err := os.WriteFile(path, []byte("one\r\n\r\ntwo"), 0644); err != nil {
		t.Fatal(err)
	}

	doc := models.NewParsedDocument(models.FormatText)
	if err := (&Extractor{}).Extract(context.Background(), path, doc); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	want := []string{"one", "two"}
	if !reflect.DeepEqual(doc.Paragraphs, want) {
		t.Errorf("Paragraphs = %q, want %q", doc.Paragraphs, want)
	}
}

func TestExtractMissingFile(t *testing.T) {
	doc := models.NewParsedDocument(models.FormatText)
	err := (&Extractor{}).Extract(context.Background(), filepath.Join(t.TempDir(), "gone.txt"), doc)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
