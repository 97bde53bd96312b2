package image

import (
	"os"
	"unicode/utf8"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// exifWalker collects tags into a plain string map.
type exifWalker struct {
	tags map[string]string
}

func (w *exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	w.tags[string(name)] = tagValue(tag)
	return nil
}

// tagValue decodes a tag to text. ASCII tags are decoded directly; anything
// else (including byte blobs that fail to decode) falls back to the tag's
// string representation.
func tagValue(tag *tiff.Tag) string {
	if s, err := tag.StringVal(); err == nil && utf8.ValidString(s) {
		return s
	}
	return tag.String()
}

// exifTags reads the EXIF block of the file at path.
func exifTags(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, err
	}

	w := &exifWalker{tags: make(map[string]string)}
	if err := x.Walk(w); err != nil {
		return nil, err
	}
	return w.tags, nil
}
