package artifact

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/pkg/logger"
	"github.com/mikawi/g2scv/pkg/storage/local"
)

var fixedTime = time.Date(2024, 5, 6, 13, 14, 15, 0, time.UTC)

func TestKey(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"jane_cv.pdf", "cv_parsed_jane_cv_20240506_131415.json"},
		{"/tmp/uploads/resume.docx", "cv_parsed_resume_20240506_131415.json"},
		{"noext", "cv_parsed_noext_20240506_131415.json"},
		{"jane.doe.pdf", "cv_parsed_jane_20240506_131415.json"},
	}

	for _, tt := range cases {
		if got := Key(tt.source, fixedTime); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	doc := models.NewParsedDocument(models.FormatPDF)
	doc.RawText = "hello"
	doc.FileInfo.Filename = "jane_cv.pdf"

	dir := t.TempDir()
	path, err := WriteFile(filepath.Join(dir, "out"), doc, fixedTime)
	if err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	if filepath.Base(path) != "cv_parsed_jane_cv_20240506_131415.json" {
		t.Errorf("artifact name = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var back models.ParsedDocument
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if back.RawText != "hello" || back.Format != models.FormatPDF {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestStore(t *testing.T) {
	st, err := local.NewLocalStorage(t.TempDir(), logger.NewTestLogger())
	if err != nil {
		t.Fatal(err)
	}

	doc := models.NewParsedDocument(models.FormatText)
	doc.FileInfo.Filename = "jane_cv.txt"

	key, err := Store(context.Background(), st, doc, fixedTime)
	if err != nil {
		t.Fatalf("Store() error: %v", err)
	}
	if key != "results/cv_parsed_jane_cv_20240506_131415.json" {
		t.Errorf("key = %q", key)
	}

	rc, err := st.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	var back models.ParsedDocument
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("stored artifact is not valid JSON: %v", err)
	}
}
