package entities

import (
	"testing"

	"github.com/mikawi/g2scv/internal/models"
)

func TestDegrees(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"bachelor of science", "Holds a Bachelor of Science from MIT", "Bachelor of Science"},
		{"msc in", "MSc in Computer Engineering", "MSc in Computer Engineering"},
		{"phd", "PhD in Physics, 2019", "PhD in Physics"},
		{"mba", "Completed an MBA degree last year", "MBA degree"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := Degrees(tt.text)
			if len(got) != 1 {
				t.Fatalf("Degrees(%q) = %v, want one match", tt.text, got)
			}
			if got[0] != tt.want {
				t.Errorf("Degrees(%q) = %q, want %q", tt.text, got[0], tt.want)
			}
		})
	}
}

func TestDegreesNone(t *testing.T) {
	got := Degrees("worked as a barista")
	if got == nil || len(got) != 0 {
		t.Fatalf("Degrees() = %v, want empty non-nil slice", got)
	}
}

func TestCategorizeAllCategoriesPresent(t *testing.T) {
	got := Categorize(Noop{}, "some text")

	if len(got) != len(models.EntityCategories) {
		t.Fatalf("Categorize() returned %d categories, want %d", len(got), len(models.EntityCategories))
	}
	for _, cat := range models.EntityCategories {
		spans, ok := got[cat]
		if !ok {
			t.Errorf("category %s missing", cat)
			continue
		}
		if spans == nil {
			t.Errorf("category %s is nil, want empty slice", cat)
		}
	}
}

func TestCategorizeDegrees(t *testing.T) {
	got := Categorize(Noop{}, "Bachelor of Arts in History")

	degrees := got[models.EntityDegree]
	if len(degrees) != 1 || degrees[0] != "Bachelor of Arts in History" {
		t.Fatalf("DEGREE = %v", degrees)
	}
}

// fixedExtractor returns a canned result regardless of input.
type fixedExtractor struct {
	out map[string][]string
}

func (f fixedExtractor) Extract(string) map[string][]string { return f.out }

func TestCategorizeMergesExtractorOutput(t *testing.T) {
	ex := fixedExtractor{out: map[string][]string{
		models.EntityPerson: {"Jane Doe", "Jane Doe"},
		models.EntityOrg:    {"Acme"},
		"UNKNOWN":           {"dropped"},
	}}

	got := Categorize(ex, "whatever")

	if persons := got[models.EntityPerson]; len(persons) != 1 || persons[0] != "Jane Doe" {
		t.Errorf("PERSON = %v", persons)
	}
	if orgs := got[models.EntityOrg]; len(orgs) != 1 || orgs[0] != "Acme" {
		t.Errorf("ORG = %v", orgs)
	}
	if _, ok := got["UNKNOWN"]; ok {
		t.Error("unknown category kept")
	}
}

func TestCategorizeEmptyText(t *testing.T) {
	got := Categorize(Noop{}, "")
	for cat, spans := range got {
		if len(spans) != 0 {
			t.Errorf("category %s = %v, want empty", cat, spans)
		}
	}
}
