// Package patterns provides the regex-based field extraction shared by every
// document extractor: URLs, emails, phone numbers, and social handles.
//
// All extractors return deduplicated, sorted string slices. Empty input
// yields an empty slice, never an error.
package patterns

import (
	"regexp"
	"sort"
	"strings"
)

var (
	urlRe      = regexp.MustCompile(`\b(?:https?://|www\.)\S+\b`)
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRe = regexp.MustCompile(`linkedin\.com/(?:in|company)/[\w-]+`)
	githubRe   = regexp.MustCompile(`github\.com/[\w-]+`)
)

// URLs returns the http(s):// and www. tokens found in text.
func URLs(text string) []string {
	return match(urlRe, text)
}

// Emails returns the email addresses found in text.
func Emails(text string) []string {
	return match(emailRe, text)
}

// Phones returns the phone numbers found in text. The pattern accepts an
// optional country code, an optional parenthesized area code, and `-`, `.`
// or space separators.
func Phones(text string) []string {
	return match(phoneRe, text)
}

// LinkedIn returns linkedin.com/in/... and linkedin.com/company/... handles.
// Besides the direct pattern match, any extracted URL containing
// "linkedin.com/" is included, so annotation-sourced profile links survive
// even when the slug has characters the handle pattern stops at.
func LinkedIn(text string) []string {
	return handles(linkedinRe, "linkedin.com/", text)
}

// GitHub returns github.com/<user> handles, unioned with any extracted URL
// containing "github.com/".
func GitHub(text string) []string {
	return handles(githubRe, "github.com/", text)
}

func handles(re *regexp.Regexp, marker, text string) []string {
	if text == "" {
		return []string{}
	}
	found := re.FindAllString(text, -1)
	for _, u := range URLs(text) {
		if strings.Contains(u, marker) {
			found = append(found, u)
		}
	}
	return dedupe(found)
}

func match(re *regexp.Regexp, text string) []string {
	if text == "" {
		return []string{}
	}
	return dedupe(re.FindAllString(text, -1))
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

// Merge combines several already-extracted sets into one deduplicated,
// sorted slice.
func Merge(sets ...[]string) []string {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	return dedupe(all)
}
