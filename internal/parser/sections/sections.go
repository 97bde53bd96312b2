// Package sections segments CV text into labeled blocks keyed by their
// heading line.
package sections

import "strings"

// vocabulary holds the section names commonly used as resume headings.
var vocabulary = []string{
	"education", "experience", "work experience", "employment", "skills",
	"technical skills", "projects", "certifications", "achievements",
	"languages", "summary", "objective", "professional summary", "profile",
	"publications", "references", "volunteer", "interests", "awards",
}

// maxHeadingLen caps the length of a line treated as a heading. Body text
// that happens to mention a section keyword is usually longer than this.
const maxHeadingLen = 50

// Split scans text line by line and returns a map from each detected section
// heading (the raw heading line) to the newline-joined block of lines that
// follow it, up to the next heading. Text before the first heading is not
// recorded. Blank lines are skipped entirely.
func Split(text string) map[string]string {
	result := make(map[string]string)
	if text == "" {
		return result
	}

	var current string
	var body []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isHeading(line) {
			if current != "" {
				result[current] = strings.Join(body, "\n")
			}
			current = line
			body = nil
			continue
		}

		if current != "" {
			body = append(body, line)
		}
	}

	if current != "" {
		result[current] = strings.Join(body, "\n")
	}

	return result
}

func isHeading(line string) bool {
	if len(line) >= maxHeadingLen {
		return false
	}
	lower := strings.ToLower(line)
	for _, name := range vocabulary {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}
