package pages

import (
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"
)

// slugPattern is the canonical shape of a public page path segment.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// reservedSlugs are path segments owned by the application shell. The set is
// data so deployments can extend it through configuration.
var reservedSlugs = map[string]struct{}{
	"admin":   {},
	"api":     {},
	"assets":  {},
	"chat":    {},
	"login":   {},
	"logout":  {},
	"media":   {},
	"preview": {},
	"static":  {},
	"uploads": {},
}

// NormalizeSlug derives a canonical slug from free text, e.g. a page title
// typed into the editor.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// ReservedSlugs returns the default reserved set in sorted order.
func ReservedSlugs() []string {
	out := make([]string, 0, len(reservedSlugs))
	for candidate := range reservedSlugs {
		out = append(out, candidate)
	}
	sort.Strings(out)
	return out
}

// ValidateSlug checks shape and reservation. It does not check uniqueness;
// that belongs to storage.
func ValidateSlug(value string) error {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return ErrSlugRequired
	}
	if !slugPattern.MatchString(candidate) || !slug.IsValid(candidate) {
		return ErrSlugInvalid
	}
	if _, reserved := reservedSlugs[candidate]; reserved {
		return ErrSlugReserved
	}
	return nil
}
