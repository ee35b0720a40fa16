// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

var reservedSlugs = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"blog":     {},
	"comments": {},
	"health":   {},
	"login":    {},
	"logout":   {},
	"me":       {},
	"metrics":  {},
	"projects": {},
	"register": {},
	"users":    {},
}

// Slugify derives a URL slug from a title: lowercase, every run of
// non-alphanumeric characters becomes a single hyphen, leading and trailing
// hyphens are stripped. "Hello, World!!" becomes "hello-world".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidateSlug checks a derived slug for emptiness and reserved names.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("title must contain at least one letter or digit")
	}
	if len(slug) > 160 {
		return fmt.Errorf("slug must not exceed 160 characters")
	}
	if _, exists := reservedSlugs[slug]; exists {
		return fmt.Errorf("slug %q is reserved", slug)
	}
	return nil
}
