package render_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/goliatone/go-sitekit/internal/render"
)

func heroBlock(factory *blocks.Factory, locale, title string) blocks.Block {
	block := factory.New(blocks.TypeHero)
	data := block.Data.(*blocks.HeroData)
	data.Title = data.Title.Set(locale, title)
	return block
}

func TestRenderFallsBackAcrossLocales(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	block := heroBlock(factory, "en", "Hi")

	doc := render.Render([]blocks.Block{block}, "de", nil)
	if len(doc.Fragments) != 1 {
		t.Fatalf("expected 1 fragment got %d", len(doc.Fragments))
	}
	if !strings.Contains(doc.Fragments[0].HTML, ">Hi</h1>") {
		t.Fatalf("expected english fallback in german render: %q", doc.Fragments[0].HTML)
	}
	if doc.Locale != "de" {
		t.Fatalf("unexpected locale %q", doc.Locale)
	}
}

func TestRenderEscapesPlainFields(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	block := heroBlock(factory, "en", `<script>alert(1)</script>`)

	doc := render.Render([]blocks.Block{block}, "en", nil)
	markup := doc.Fragments[0].HTML
	if strings.Contains(markup, "<script>") {
		t.Fatalf("plain field not escaped: %q", markup)
	}
	if !strings.Contains(markup, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup: %q", markup)
	}
}

func TestRenderWidthAndAlignModifiers(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())

	text := factory.New(blocks.TypeRichText)
	textData := text.Data.(*blocks.RichTextData)
	textData.Content = textData.Content.Set("en", "<p>Hi</p>")
	textData.Width = blocks.WidthNarrow

	imageText := factory.New(blocks.TypeImageText)
	imageTextData := imageText.Data.(*blocks.ImageTextData)
	imageTextData.Content = imageTextData.Content.Set("en", "<p>Side</p>")
	imageTextData.Align = blocks.ImageAlign("sideways")

	doc := render.Render([]blocks.Block{text, imageText}, "en", nil)
	if !strings.Contains(doc.Fragments[0].HTML, "sk-richtext--narrow") {
		t.Fatalf("narrow width modifier missing: %q", doc.Fragments[0].HTML)
	}
	if !strings.Contains(doc.Fragments[1].HTML, "sk-imagetext--left") {
		t.Fatalf("unknown align must fall back to left: %q", doc.Fragments[1].HTML)
	}
}

func TestRenderPassesSanitizedHTMLThrough(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	block := factory.New(blocks.TypeRichText)
	data := block.Data.(*blocks.RichTextData)
	data.Content = data.Content.Set("en", "<p>Hello <strong>there</strong></p>")

	doc := render.Render([]blocks.Block{block}, "en", nil)
	if !strings.Contains(doc.Fragments[0].HTML, "<p>Hello <strong>there</strong></p>") {
		t.Fatalf("sanitized html mangled: %q", doc.Fragments[0].HTML)
	}
}

func TestRenderSkipsUnknownBlockTypes(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	known := factory.New(blocks.TypeSpacer)
	unknown := blocks.Block{
		ID:   "x",
		Type: blocks.Type("carousel3d"),
		Data: &blocks.RichTextData{Content: i18n.LocalizedHTML{"en": "<p>hidden</p>"}},
	}

	doc := render.Render([]blocks.Block{unknown, known}, "en", nil)
	if len(doc.Fragments) != 1 {
		t.Fatalf("expected unknown block skipped, got %d fragments", len(doc.Fragments))
	}
	if doc.Fragments[0].Type != blocks.TypeSpacer {
		t.Fatalf("wrong surviving fragment: %q", doc.Fragments[0].Type)
	}
}

func TestRenderPreservesBlockOrder(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	list := []blocks.Block{
		factory.New(blocks.TypeSpacer),
		heroBlock(factory, "en", "A"),
		factory.New(blocks.TypeDivider),
	}

	doc := render.Render(list, "en", nil)
	if len(doc.Fragments) != 3 {
		t.Fatalf("expected 3 fragments got %d", len(doc.Fragments))
	}
	wanted := []blocks.Type{blocks.TypeSpacer, blocks.TypeHero, blocks.TypeDivider}
	for i, fragment := range doc.Fragments {
		if fragment.Type != wanted[i] {
			t.Fatalf("fragment %d: expected %q got %q", i, wanted[i], fragment.Type)
		}
	}
}

func TestRenderSpacerAndDividerDefaults(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	doc := render.Render([]blocks.Block{
		factory.New(blocks.TypeSpacer),
		factory.New(blocks.TypeDivider),
	}, "en", nil)

	if !strings.Contains(doc.Fragments[0].HTML, "height:48px") {
		t.Fatalf("spacer default size missing: %q", doc.Fragments[0].HTML)
	}
	if !strings.Contains(doc.Fragments[1].HTML, "sk-divider--line") {
		t.Fatalf("divider default style missing: %q", doc.Fragments[1].HTML)
	}
}

func TestRenderVideoEmbedAndPlaceholder(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())

	video := factory.New(blocks.TypeVideo)
	video.Data.(*blocks.VideoData).URL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	broken := factory.New(blocks.TypeVideo)
	broken.Data.(*blocks.VideoData).URL = "https://example.com/clip.mp4"

	doc := render.Render([]blocks.Block{video, broken}, "de", nil)
	if !strings.Contains(doc.Fragments[0].HTML, "https://www.youtube.com/embed/dQw4w9WgXcQ") {
		t.Fatalf("embed url missing: %q", doc.Fragments[0].HTML)
	}
	if !strings.Contains(doc.Fragments[1].HTML, "Medien nicht verf") {
		t.Fatalf("expected german placeholder: %q", doc.Fragments[1].HTML)
	}
}

func TestRenderPortfolioKinds(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	block := factory.New(blocks.TypePortfolio)
	data := block.Data.(*blocks.PortfolioData)

	video := factory.NewPortfolioItem()
	video.Kind = blocks.PortfolioKindVideo
	video.EmbedURL = "https://youtu.be/dQw4w9WgXcQ"

	locked := factory.NewPortfolioItem()
	locked.Kind = blocks.PortfolioKindLocked
	locked.EmbedURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	locked.ImageURL = "/secret.png"

	image := factory.NewPortfolioItem()
	image.Kind = blocks.PortfolioKindImage
	image.ImageURL = "/work.png"

	missing := factory.NewPortfolioItem()
	missing.Kind = blocks.PortfolioKindMap

	data.Items = append(data.Items, video, locked, image, missing)

	doc := render.Render([]blocks.Block{block}, "en", nil)
	markup := doc.Fragments[0].HTML

	if !strings.Contains(markup, "youtube.com/embed/dQw4w9WgXcQ") {
		t.Fatalf("video item not embedded: %q", markup)
	}
	if strings.Contains(markup, "/secret.png") || strings.Count(markup, "youtube.com/embed") != 1 {
		t.Fatalf("locked item leaked media: %q", markup)
	}
	if !strings.Contains(markup, `src="/work.png"`) {
		t.Fatalf("image item missing: %q", markup)
	}
	if !strings.Contains(markup, "Media unavailable") {
		t.Fatalf("missing media placeholder absent: %q", markup)
	}
}

func TestRenderStylesFromPalette(t *testing.T) {
	doc := render.Render(nil, "en", render.Palette{"accent": "#ff0000"})
	if !strings.Contains(doc.Styles, "--sk-accent: #ff0000;") {
		t.Fatalf("palette not emitted: %q", doc.Styles)
	}
}

func TestYouTubeEmbedURLShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/live/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/playlist?list=PL123abc", "https://www.youtube.com/embed/videoseries?list=PL123abc", true},
		{"https://www.youtube.com/channel/UCabc123", "https://www.youtube.com/embed/videoseries?list=UUabc123", true},
		{"https://www.youtube.com/@somecreator", "https://www.youtube.com/embed/?listType=user_uploads&list=somecreator", true},
		{"youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://vimeo.com/12345", "", false},
		{"not a url", "", false},
		{"", "", false},
		{"https://www.youtube.com/watch", "", false},
	}
	for _, tc := range cases {
		got, ok := render.YouTubeEmbedURL(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("YouTubeEmbedURL(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
