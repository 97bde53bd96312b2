package parser

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/mikawi/g2scv/internal/models"
)

// formatForMIME maps a sniffed MIME type to a document format.
func formatForMIME(mime string) (models.Format, bool) {
	switch mime {
	case "application/pdf":
		return models.FormatPDF, true
	case "image/jpeg", "image/png", "image/tiff":
		return models.FormatImage, true
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return models.FormatDocx, true
	case "text/plain":
		return models.FormatText, true
	}
	return "", false
}

// formatForExt maps a lowercased file extension to a document format. It is
// the fallback when MIME sniffing yields nothing we know.
func formatForExt(ext string) (models.Format, bool) {
	switch ext {
	case ".pdf":
		return models.FormatPDF, true
	case ".jpg", ".jpeg", ".png", ".tiff", ".tif":
		return models.FormatImage, true
	case ".docx":
		return models.FormatDocx, true
	case ".txt":
		return models.FormatText, true
	}
	return "", false
}

// detect sniffs the file's magic bytes to classify it, falling back to the
// extension table. The sniffing library reads only a bounded header, never
// the whole file.
func detect(path string) (models.Format, string, error) {
	mime := ""
	if mtype, err := mimetype.DetectFile(path); err == nil {
		// Strip parameters such as "; charset=utf-8".
		mime = mtype.String()
		if i := strings.Index(mime, ";"); i >= 0 {
			mime = strings.TrimSpace(mime[:i])
		}
	}

	if format, ok := formatForMIME(mime); ok {
		return format, mime, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := formatForExt(ext); ok {
		return format, mime, nil
	}

	return "", mime, &UnsupportedFormatError{MimeType: mime, Extension: ext}
}
