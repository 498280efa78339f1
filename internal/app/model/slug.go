package model

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL-safe identifier from a display name: lowercase,
// trimmed, punctuation stripped, whitespace collapsed to single hyphens.
// Pure function; uniqueness is the caller's concern.
func GenerateSlug(name string) string {
	slug := strings.TrimSpace(strings.ToLower(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	return slug
}
