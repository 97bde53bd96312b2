package patterns

import (
	"reflect"
	"testing"
)

func TestEmails(t *testing.T) {
	text := "Contact: jane.doe@example.com or jane.doe@example.com, work: j_doe+cv@corp.co.uk."

	got := Emails(text)
	want := []string{"j_doe+cv@corp.co.uk", "jane.doe@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Emails() = %v, want %v", got, want)
	}
}

func TestEmailsEmpty(t *testing.T) {
	got := Emails("")
	if got == nil || len(got) != 0 {
		t.Fatalf("Emails(\"\") = %v, want empty non-nil slice", got)
	}
}

func TestPhones(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"plain", "call 555-123-4567 today", []string{"555-123-4567"}},
		{"parens", "(555) 123 4567", []string{"(555) 123 4567"}},
		{"country code", "+1 555.123.4567", []string{"+1 555.123.4567"}},
		{"none", "no numbers here", []string{}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := Phones(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Phones(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestURLs(t *testing.T) {
	text := "see https://example.com/page and www.other.org/x, plain example.com is skipped"

	got := URLs(text)
	want := []string{"https://example.com/page", "www.other.org/x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("URLs() = %v, want %v", got, want)
	}
}

func TestLinkedIn(t *testing.T) {
	text := "profile at linkedin.com/in/jane-doe, company page linkedin.com/company/acme"

	got := LinkedIn(text)
	want := []string{"linkedin.com/company/acme", "linkedin.com/in/jane-doe"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LinkedIn() = %v, want %v", got, want)
	}
}

func TestLinkedInIncludesFullURLs(t *testing.T) {
	// A full URL form should be kept alongside the bare handle match.
	text := "https://www.linkedin.com/in/jane-doe"

	got := LinkedIn(text)
	if len(got) != 2 {
		t.Fatalf("LinkedIn() = %v, want handle plus full URL", got)
	}
}

func TestGitHub(t *testing.T) {
	text := "code at github.com/janedoe and https://github.com/janedoe/project"

	got := GitHub(text)
	for _, want := range []string{"github.com/janedoe", "https://github.com/janedoe/project"} {
		found := false
		for _, g := range got {
			if g == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("GitHub() = %v, missing %q", got, want)
		}
	}
}

func TestMerge(t *testing.T) {
	got := Merge([]string{"b", "a"}, []string{"a", "c"}, nil)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge() = %v, want %v", got, want)
	}
}

func TestMergeEmpty(t *testing.T) {
	got := Merge()
	if len(got) != 0 {
		t.Fatalf("Merge() = %v, want empty", got)
	}
}
