package i18n

import "strings"

// DefaultLocale is the primary authoring locale and first fallback candidate.
const DefaultLocale = "en"

// DefaultLocales is the reference locale set. The set is configuration owned
// by the host application; everything in this package is generic over whatever
// ordered set is supplied, with the order doubling as fallback priority.
func DefaultLocales() []string {
	return []string{"en", "de", "ru"}
}

// NormalizeLocale canonicalizes a locale code for map lookups.
func NormalizeLocale(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// NormalizeLocales canonicalizes a locale list, dropping blanks and duplicates
// while preserving order.
func NormalizeLocales(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	out := make([]string, 0, len(codes))
	seen := map[string]struct{}{}
	for _, code := range codes {
		normalized := NormalizeLocale(code)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ContainsLocale reports whether code is part of the supplied set.
func ContainsLocale(codes []string, code string) bool {
	normalized := NormalizeLocale(code)
	for _, candidate := range codes {
		if NormalizeLocale(candidate) == normalized {
			return true
		}
	}
	return false
}
