package parser

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is returned when the input path does not exist. It is
// fatal: no ParsedDocument is produced.
var ErrFileNotFound = errors.New("file not found")

// UnsupportedFormatError is returned when neither the detected MIME type nor
// the file extension maps to a known extractor. It is fatal for the call.
type UnsupportedFormatError struct {
	MimeType  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s with extension %s", e.MimeType, e.Extension)
}
