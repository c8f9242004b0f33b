package render

import (
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// Palette is a flat map of design tokens consumed by the renderer. Values are
// plain CSS color strings; the renderer never interprets them beyond
// emitting CSS custom properties.
type Palette map[string]string

// DefaultPalette returns the built-in color tokens.
func DefaultPalette() Palette {
	return Palette{
		"accent":     "#2563eb",
		"background": "#ffffff",
		"surface":    "#f8fafc",
		"text":       "#0f172a",
		"muted":      "#64748b",
	}
}

// Merge overlays other on top of the palette, returning a new palette.
func (p Palette) Merge(other Palette) Palette {
	out := make(Palette, len(p)+len(other))
	for key, value := range p {
		out[key] = value
	}
	for key, value := range other {
		if strings.TrimSpace(value) != "" {
			out[key] = value
		}
	}
	return out
}

// CSSVariables renders the palette as CSS custom property declarations with
// the supplied prefix, in sorted token order.
func (p Palette) CSSVariables(prefix string) string {
	if len(p) == 0 {
		return ""
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "--sk-"
	}

	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(prefix)
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(p[key])
		b.WriteString(";")
	}
	return b.String()
}

// PaletteFromSelection derives a palette from a resolved theme selection,
// overlaying the theme's tokens on the defaults. A nil selection yields the
// defaults unchanged.
func PaletteFromSelection(selection *gotheme.Selection) Palette {
	palette := DefaultPalette()
	if selection == nil {
		return palette
	}
	return palette.Merge(Palette(selection.Tokens()))
}
