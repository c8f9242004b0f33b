package sanitize_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/sanitize"
)

func TestHTMLDropsScriptKeepsParagraph(t *testing.T) {
	got := sanitize.HTML(`<script>alert(1)</script><p>ok</p>`)
	if got != "<p>ok</p>" {
		t.Fatalf("expected script removed, got %q", got)
	}
}

func TestHTMLKeepsAllowedTags(t *testing.T) {
	input := `<h2>Head</h2><p>Text with <strong>bold</strong> and <em>italics</em></p><ul><li>one</li></ul>`
	got := sanitize.HTML(input)
	for _, fragment := range []string{"<h2>", "<strong>", "<em>", "<ul>", "<li>"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q to survive, got %q", fragment, got)
		}
	}
}

func TestHTMLRetainsTextOfRemovedTags(t *testing.T) {
	got := sanitize.HTML(`<article>kept text</article>`)
	if !strings.Contains(got, "kept text") {
		t.Fatalf("text of removed tag lost: %q", got)
	}
	if strings.Contains(got, "<article>") {
		t.Fatalf("disallowed tag survived: %q", got)
	}
}

func TestHTMLAnchorRewrite(t *testing.T) {
	got := sanitize.HTML(`<a href="https://x.com" onclick="steal()" class="btn">l</a>`)
	want := `<a href="https://x.com" rel="noopener noreferrer" target="_blank">l</a>`
	if got != want {
		t.Fatalf("anchor rewrite mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestHTMLDropsDisallowedSchemes(t *testing.T) {
	got := sanitize.HTML(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(got, "javascript") {
		t.Fatalf("javascript scheme survived: %q", got)
	}
	for _, ok := range []string{`href="https://x.com"`, `href="mailto:a@b.co"`} {
		input := `<a ` + ok + `>x</a>`
		if !strings.Contains(sanitize.HTML(input), ok) {
			t.Fatalf("allowed scheme stripped from %q", input)
		}
	}
}

func TestHTMLIsIdempotent(t *testing.T) {
	inputs := []string{
		`<p>plain</p>`,
		`<a href="https://x.com">l</a>`,
		`<div><span>nested</span><script>bad()</script></div>`,
		`<p>unclosed <b>bold`,
		`<blockquote><code>x &lt; y</code></blockquote>`,
	}
	for _, input := range inputs {
		once := sanitize.HTML(input)
		twice := sanitize.HTML(once)
		if once != twice {
			t.Fatalf("not idempotent for %q:\n once %q\ntwice %q", input, once, twice)
		}
	}
}

func TestBlocksNonArrayYieldsEmptyList(t *testing.T) {
	got := sanitize.Blocks(json.RawMessage(`{"surprise":true}`))
	if len(got) != 0 {
		t.Fatalf("expected empty list got %d blocks", len(got))
	}
}

func TestBlocksDropsMalformedElementsWithoutError(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"rt","type":"richText","data":{"content":{"en":"<p>hi</p><script>x()</script>"},"width":"full"}},
		"garbage",
		{"id":"img","type":"image","data":{"url":"/a.png","alt":{"en":"a"},"caption":{"en":"c"}}}
	]`)

	got := sanitize.Blocks(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 blocks got %d", len(got))
	}

	content := got[0].Data.(*blocks.RichTextData).Content
	if content.Get("en") != "<p>hi</p>" {
		t.Fatalf("expected sanitized content got %q", content.Get("en"))
	}
	image := got[1].Data.(*blocks.ImageData)
	if image.URL != "/a.png" {
		t.Fatalf("structural field modified: %q", image.URL)
	}
}

func TestBlockSanitizesNestedHTMLFields(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())

	faq := factory.New(blocks.TypeFAQ)
	data := faq.Data.(*blocks.FAQData)
	item := factory.NewFAQItem()
	item.Answer = item.Answer.Set("en", `<p>fine</p><iframe src="https://evil"></iframe>`)
	data.Items = append(data.Items, item)

	clean := sanitize.Block(faq)
	answer := clean.Data.(*blocks.FAQData).Items[0].Answer.Get("en")
	if answer != "<p>fine</p>" {
		t.Fatalf("expected iframe removed, got %q", answer)
	}

	// Original block untouched; sanitizer works on a deep copy.
	if !strings.Contains(data.Items[0].Answer.Get("en"), "iframe") {
		t.Fatal("sanitizer mutated its input")
	}
}

func TestBlockLeavesPlainFieldsAlone(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	contact := factory.New(blocks.TypeContact)
	data := contact.Data.(*blocks.ContactData)
	data.Title = data.Title.Set("en", `Say "hi" <now>`)
	data.Email = "owner@example.com"

	clean := sanitize.Block(contact)
	cleanData := clean.Data.(*blocks.ContactData)
	if cleanData.Title.Get("en") != `Say "hi" <now>` {
		t.Fatalf("plain field altered: %q", cleanData.Title.Get("en"))
	}
	if cleanData.Email != "owner@example.com" {
		t.Fatalf("email altered: %q", cleanData.Email)
	}
}
