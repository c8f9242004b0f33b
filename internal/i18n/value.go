package i18n

import "sort"

// LocalizedString maps locale codes to plain text values. Every configured
// locale key should be present (possibly empty); the type has no identity of
// its own and is embedded by value inside block data.
type LocalizedString map[string]string

// LocalizedHTML maps locale codes to sanitized HTML fragments. It shares the
// LocalizedString structure; the two differ only by intended content, which
// matters to the sanitizer and to readability checks.
type LocalizedHTML map[string]string

// NewLocalizedString returns a value with every supplied locale keyed to "".
func NewLocalizedString(locales []string) LocalizedString {
	return LocalizedString(emptyPerLocale(locales))
}

// NewLocalizedHTML returns an HTML value with every supplied locale keyed to "".
func NewLocalizedHTML(locales []string) LocalizedHTML {
	return LocalizedHTML(emptyPerLocale(locales))
}

// Get resolves the value for locale, falling back through order (the
// configured locale order, en→de→ru for the reference set), then any
// remaining non-empty entry, then "".
func (v LocalizedString) Get(locale string, order ...string) string {
	return lookup(v, locale, order)
}

// Set returns a new value with only the supplied locale replaced. The
// receiver is never mutated and no fallback cascades on write.
func (v LocalizedString) Set(locale, text string) LocalizedString {
	return LocalizedString(replace(v, locale, text))
}

// Clone deep-copies the value.
func (v LocalizedString) Clone() LocalizedString {
	return LocalizedString(cloneValue(v))
}

// EnsureLocales returns a value guaranteed to carry a key for every supplied
// locale, preserving existing entries.
func (v LocalizedString) EnsureLocales(locales []string) LocalizedString {
	return LocalizedString(ensureKeys(v, locales))
}

// Get resolves the HTML fragment for locale with the same fallback rules as
// LocalizedString.Get.
func (v LocalizedHTML) Get(locale string, order ...string) string {
	return lookup(v, locale, order)
}

// Set returns a new value with only the supplied locale replaced.
func (v LocalizedHTML) Set(locale, html string) LocalizedHTML {
	return LocalizedHTML(replace(v, locale, html))
}

// Clone deep-copies the value.
func (v LocalizedHTML) Clone() LocalizedHTML {
	return LocalizedHTML(cloneValue(v))
}

// EnsureLocales returns a value carrying a key for every supplied locale.
func (v LocalizedHTML) EnsureLocales(locales []string) LocalizedHTML {
	return LocalizedHTML(ensureKeys(v, locales))
}

func emptyPerLocale(locales []string) map[string]string {
	out := make(map[string]string, len(locales))
	for _, locale := range locales {
		normalized := NormalizeLocale(locale)
		if normalized == "" {
			continue
		}
		out[normalized] = ""
	}
	return out
}

func lookup(v map[string]string, locale string, order []string) string {
	if len(v) == 0 {
		return ""
	}
	if text := v[NormalizeLocale(locale)]; text != "" {
		return text
	}
	if len(order) == 0 {
		order = DefaultLocales()
	}
	for _, candidate := range order {
		if text := v[NormalizeLocale(candidate)]; text != "" {
			return text
		}
	}
	// Last resort: any non-empty entry, scanned in stable key order.
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if text := v[key]; text != "" {
			return text
		}
	}
	return ""
}

func replace(v map[string]string, locale, text string) map[string]string {
	out := make(map[string]string, len(v)+1)
	for key, value := range v {
		out[key] = value
	}
	out[NormalizeLocale(locale)] = text
	return out
}

func cloneValue(v map[string]string) map[string]string {
	if v == nil {
		return nil
	}
	out := make(map[string]string, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

func ensureKeys(v map[string]string, locales []string) map[string]string {
	out := make(map[string]string, len(v)+len(locales))
	for key, value := range v {
		out[key] = value
	}
	for _, locale := range locales {
		normalized := NormalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, ok := out[normalized]; !ok {
			out[normalized] = ""
		}
	}
	return out
}
