// Package artifact serializes parse results and names the JSON files they
// are stored under.
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/pkg/storage"
)

// Key builds the artifact filename for a source document:
// cv_parsed_<stem>_<YYYYMMDD_HHMMSS>.json
// The stem ends at the first dot, so "jane.doe.pdf" yields "jane".
func Key(sourceName string, now time.Time) string {
	base := filepath.Base(sourceName)
	stem, _, _ := strings.Cut(base, ".")
	return fmt.Sprintf("cv_parsed_%s_%s.json", stem, now.Format("20060102_150405"))
}

// Encode renders the document as indented JSON.
func Encode(doc *models.ParsedDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed document: %w", err)
	}
	return data, nil
}

// Store writes the document into the object store under results/ and
// returns the object key.
func Store(ctx context.Context, st storage.Storage, doc *models.ParsedDocument, now time.Time) (string, error) {
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	key := "results/" + Key(doc.FileInfo.Filename, now)
	if _, err := st.Store(ctx, bytes.NewReader(data), key); err != nil {
		return "", fmt.Errorf("failed to store artifact: %w", err)
	}
	return key, nil
}

// WriteFile saves the document as a JSON file under dir and returns the
// file path. Used by the CLI.
func WriteFile(dir string, doc *models.ParsedDocument, now time.Time) (string, error) {
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, Key(doc.FileInfo.Filename, now))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}
