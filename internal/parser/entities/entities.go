// Package entities extracts named entities and degree mentions from CV text.
//
// Named-entity recognition is a capability: when the NLP model is available
// an Extractor backed by it classifies spans into PERSON, ORG, GPE and DATE,
// and when it is not, a no-op Extractor leaves those categories empty. The
// rest of the pipeline never knows which one is active. Degree detection is
// pure regex and works either way.
package entities

import (
	"regexp"
	"sort"

	"github.com/mikawi/g2scv/internal/models"
)

// Extractor classifies text spans into entity categories.
type Extractor interface {
	// Extract returns a map from entity category to the spans found in text.
	// It never fails: malformed or empty text yields empty categories.
	Extract(text string) map[string][]string
}

// Noop is the Extractor used when no NLP model is available. Every category
// comes back empty.
type Noop struct{}

func (Noop) Extract(string) map[string][]string {
	return emptyCategories()
}

var degreeRe = regexp.MustCompile(
	`(?i)\b(?:Bachelor|Master|Doctor|PhD|BSc|BA|MS|MSc|MBA|MD|B\.S|M\.S|Ph\.D)\b[\s\w]*(?:degree|of Science|of Arts|of Business|in [\w\s]+)`,
)

// Degrees returns educational degree mentions found via pattern matching.
// It is independent of the NER model.
func Degrees(text string) []string {
	if text == "" {
		return []string{}
	}
	return dedupe(degreeRe.FindAllString(text, -1))
}

// Categorize runs the given Extractor over text, adds regex-detected degrees
// to the DEGREE category, and returns the deduplicated result with every
// category present.
func Categorize(ex Extractor, text string) map[string][]string {
	out := emptyCategories()
	if text == "" {
		return out
	}

	for cat, spans := range ex.Extract(text) {
		if _, ok := out[cat]; ok {
			out[cat] = append(out[cat], spans...)
		}
	}
	out[models.EntityDegree] = append(out[models.EntityDegree], Degrees(text)...)

	for cat := range out {
		out[cat] = dedupe(out[cat])
	}
	return out
}

func emptyCategories() map[string][]string {
	out := make(map[string][]string, len(models.EntityCategories))
	for _, cat := range models.EntityCategories {
		out[cat] = []string{}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
