package editor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/sanitize"
)

// MarkdownMeta is the front matter recognized by the importer.
type MarkdownMeta struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Summary string `yaml:"summary"`
}

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// ImportMarkdown converts a markdown document (optionally carrying YAML front
// matter) into rich text blocks for the given locale. The document is split
// on top-level headings so each section lands in its own block; the rendered
// HTML passes through the sanitizer on the way in, like any other content.
func ImportMarkdown(source []byte, locale string, locales []string) ([]blocks.Block, MarkdownMeta, error) {
	var meta MarkdownMeta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, MarkdownMeta{}, fmt.Errorf("editor: parse front matter: %w", err)
	}

	locale = i18n.NormalizeLocale(locale)
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	factory := blocks.NewFactory(locales)

	var out []blocks.Block
	for _, section := range splitSections(string(body)) {
		var buf bytes.Buffer
		if err := markdownEngine.Convert([]byte(section), &buf); err != nil {
			return nil, MarkdownMeta{}, fmt.Errorf("editor: render markdown: %w", err)
		}
		fragment := sanitize.HTML(buf.String())
		if fragment == "" {
			continue
		}

		block := factory.New(blocks.TypeRichText)
		data := block.Data.(*blocks.RichTextData)
		data.Content = data.Content.Set(locale, fragment)
		out = append(out, block)
	}
	return out, meta, nil
}

// splitSections breaks a markdown body on top-level `#`/`##` headings. A body
// with no headings yields a single section.
func splitSections(body string) []string {
	lines := strings.Split(body, "\n")

	var sections []string
	var current []string
	flush := func() {
		section := strings.TrimSpace(strings.Join(current, "\n"))
		if section != "" {
			sections = append(sections, section)
		}
		current = current[:0]
	}

	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if !inFence && (strings.HasPrefix(trimmed, "# ") || strings.HasPrefix(trimmed, "## ")) {
			flush()
		}
		current = append(current, line)
	}
	flush()
	return sections
}
