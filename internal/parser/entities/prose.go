package entities

import (
	"fmt"

	"github.com/jdkato/prose/v2"

	"github.com/mikawi/g2scv/internal/models"
)

// labelMap translates the model's entity labels to our categories.
var labelMap = map[string]string{
	"PERSON":       models.EntityPerson,
	"GPE":          models.EntityGPE,
	"ORG":          models.EntityOrg,
	"ORGANIZATION": models.EntityOrg,
	"DATE":         models.EntityDate,
}

// Prose is the model-backed Extractor.
type Prose struct{}

// NewProse verifies the NER model loads by tagging a probe sentence. On
// failure the caller is expected to fall back to Noop.
func NewProse() (*Prose, error) {
	if _, err := prose.NewDocument("probe", prose.WithSegmentation(false)); err != nil {
		return nil, fmt.Errorf("loading NER model: %w", err)
	}
	return &Prose{}, nil
}

func (*Prose) Extract(text string) map[string][]string {
	out := emptyCategories()
	if text == "" {
		return out
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		// NER never fails the parse; unprocessable text means no entities.
		return out
	}

	for _, ent := range doc.Entities() {
		if cat, ok := labelMap[ent.Label]; ok {
			out[cat] = append(out[cat], ent.Text)
		}
	}
	return out
}
