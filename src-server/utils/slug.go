package utils

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	slugLower     = cases.Lower(language.Und)
	slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a URL-safe identifier from a title: lowercase, every run of
// non-alphanumeric characters collapsed to a single hyphen, leading/trailing
// hyphens stripped. A title with no alphanumeric characters yields "".
func Slugify(title string) string {
	slug := slugLower.String(strings.TrimSpace(title))
	slug = slugSeparator.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
