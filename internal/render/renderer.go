package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
)

// Fragment is the rendered view of a single block.
type Fragment struct {
	BlockID string
	Type    blocks.Type
	HTML    string
}

// Document is the rendered view of a whole block list for one locale.
type Document struct {
	Locale    string
	Styles    string
	Fragments []Fragment
}

// HTML concatenates the fragments in block order.
func (d Document) HTML() string {
	var b strings.Builder
	for _, fragment := range d.Fragments {
		b.WriteString(fragment.HTML)
	}
	return b.String()
}

// mediaPlaceholders backs the fallback shown where a block references media
// that is missing or unparseable.
var mediaPlaceholders = map[string]string{
	"en": "Media unavailable",
	"de": "Medien nicht verfügbar",
	"ru": "Медиа недоступно",
}

func mediaPlaceholder(locale string) string {
	if text, ok := mediaPlaceholders[i18n.NormalizeLocale(locale)]; ok {
		return text
	}
	return mediaPlaceholders[i18n.DefaultLocale]
}

// Render produces the document for a block list in one locale. It is a pure
// function: no I/O, no mutation of its inputs. Localized fields resolve with
// locale fallback, plain text is escaped, HTML fields are emitted as stored
// (the sanitizer owns their safety). Blocks of unknown type render nothing.
func Render(list []blocks.Block, locale string, palette Palette) Document {
	locale = i18n.NormalizeLocale(locale)
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	if palette == nil {
		palette = DefaultPalette()
	}

	doc := Document{
		Locale: locale,
		Styles: palette.CSSVariables(""),
	}
	for _, block := range list {
		markup, ok := renderBlock(block, locale)
		if !ok {
			continue
		}
		doc.Fragments = append(doc.Fragments, Fragment{
			BlockID: block.ID,
			Type:    block.Type,
			HTML:    markup,
		})
	}
	return doc
}

func renderBlock(block blocks.Block, locale string) (string, bool) {
	switch data := block.Data.(type) {
	case *blocks.HeroData:
		return renderHero(data, locale), true
	case *blocks.RichTextData:
		// Unknown tags decode with richText-shaped data; they render nothing.
		if block.Type != blocks.TypeRichText {
			return "", false
		}
		return renderRichText(data, locale), true
	case *blocks.ImageData:
		return renderImage(data, locale), true
	case *blocks.ImageTextData:
		return renderImageText(data, locale), true
	case *blocks.GalleryData:
		return renderGallery(data, locale), true
	case *blocks.VideoData:
		return renderVideo(data, locale), true
	case *blocks.PortfolioData:
		return renderPortfolio(data, locale), true
	case *blocks.CTAData:
		return renderCTA(data, locale), true
	case *blocks.FAQData:
		return renderFAQ(data, locale), true
	case *blocks.ContactData:
		return renderContact(data, locale), true
	case *blocks.SocialData:
		return renderSocial(data, locale), true
	case *blocks.ChatData:
		return renderChat(data, locale), true
	case *blocks.DividerData:
		return renderDivider(data), true
	case *blocks.SpacerData:
		return renderSpacer(data), true
	default:
		return "", false
	}
}

func renderHero(data *blocks.HeroData, locale string) string {
	var b strings.Builder
	b.WriteString(`<section class="sk-hero">`)
	if badge := data.Badge.Get(locale); badge != "" {
		fmt.Fprintf(&b, `<span class="sk-hero__badge">%s</span>`, esc(badge))
	}
	if title := data.Title.Get(locale); title != "" {
		fmt.Fprintf(&b, `<h1 class="sk-hero__title">%s</h1>`, esc(title))
	}
	if subtitle := data.Subtitle.Get(locale); subtitle != "" {
		fmt.Fprintf(&b, `<p class="sk-hero__subtitle">%s</p>`, esc(subtitle))
	}
	if description := data.Description.Get(locale); description != "" {
		fmt.Fprintf(&b, `<div class="sk-hero__description">%s</div>`, description)
	}
	if data.Image.URL != "" {
		fmt.Fprintf(&b, `<img class="sk-hero__image" src="%s" alt="%s">`,
			esc(data.Image.URL), esc(data.Image.Alt.Get(locale)))
	}
	writeCTALink(&b, data.PrimaryCTA, "sk-hero__cta sk-hero__cta--primary", locale)
	writeCTALink(&b, data.SecondaryCTA, "sk-hero__cta sk-hero__cta--secondary", locale)
	b.WriteString(`</section>`)
	return b.String()
}

func writeCTALink(b *strings.Builder, link blocks.CTALink, class, locale string) {
	label := link.Label.Get(locale)
	if label == "" || link.URL == "" {
		return
	}
	fmt.Fprintf(b, `<a class="%s" href="%s">%s</a>`, class, esc(link.URL), esc(label))
}

func renderRichText(data *blocks.RichTextData, locale string) string {
	width := data.Width
	if width != blocks.WidthNarrow {
		width = blocks.WidthFull
	}
	return fmt.Sprintf(`<div class="sk-richtext sk-richtext--%s">%s</div>`,
		width, data.Content.Get(locale))
}

func renderImage(data *blocks.ImageData, locale string) string {
	if data.URL == "" {
		return placeholderFigure("sk-image", locale)
	}
	var b strings.Builder
	b.WriteString(`<figure class="sk-image">`)
	fmt.Fprintf(&b, `<img src="%s" alt="%s">`, esc(data.URL), esc(data.Alt.Get(locale)))
	if caption := data.Caption.Get(locale); caption != "" {
		fmt.Fprintf(&b, `<figcaption>%s</figcaption>`, esc(caption))
	}
	b.WriteString(`</figure>`)
	return b.String()
}

func renderImageText(data *blocks.ImageTextData, locale string) string {
	align := data.Align
	if align != blocks.AlignRight {
		align = blocks.AlignLeft
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="sk-imagetext sk-imagetext--%s">`, align)
	if data.Image.URL != "" {
		fmt.Fprintf(&b, `<img src="%s" alt="%s">`, esc(data.Image.URL), esc(data.Image.Alt.Get(locale)))
	} else {
		b.WriteString(placeholderFigure("sk-imagetext__media", locale))
	}
	fmt.Fprintf(&b, `<div class="sk-imagetext__content">%s</div>`, data.Content.Get(locale))
	b.WriteString(`</div>`)
	return b.String()
}

func renderGallery(data *blocks.GalleryData, locale string) string {
	if len(data.Images) == 0 {
		return placeholderFigure("sk-gallery", locale)
	}
	var b strings.Builder
	b.WriteString(`<ul class="sk-gallery">`)
	for _, image := range data.Images {
		b.WriteString(`<li class="sk-gallery__item">`)
		if image.URL != "" {
			fmt.Fprintf(&b, `<img src="%s" alt="%s">`, esc(image.URL), esc(image.Alt.Get(locale)))
		} else {
			fmt.Fprintf(&b, `<span class="sk-gallery__placeholder">%s</span>`, esc(mediaPlaceholder(locale)))
		}
		if caption := image.Caption.Get(locale); caption != "" {
			fmt.Fprintf(&b, `<figcaption>%s</figcaption>`, esc(caption))
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func renderVideo(data *blocks.VideoData, locale string) string {
	var b strings.Builder
	b.WriteString(`<div class="sk-video">`)
	if title := data.Title.Get(locale); title != "" {
		fmt.Fprintf(&b, `<h3 class="sk-video__title">%s</h3>`, esc(title))
	}
	if embed, ok := YouTubeEmbedURL(data.URL); ok {
		fmt.Fprintf(&b, `<iframe src="%s" loading="lazy" allowfullscreen></iframe>`, esc(embed))
	} else {
		fmt.Fprintf(&b, `<span class="sk-video__placeholder">%s</span>`, esc(mediaPlaceholder(locale)))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderPortfolio(data *blocks.PortfolioData, locale string) string {
	var b strings.Builder
	b.WriteString(`<section class="sk-portfolio">`)
	if title := data.Title.Get(locale); title != "" {
		fmt.Fprintf(&b, `<h2 class="sk-portfolio__title">%s</h2>`, esc(title))
	}
	if subtitle := data.Subtitle.Get(locale); subtitle != "" {
		fmt.Fprintf(&b, `<p class="sk-portfolio__subtitle">%s</p>`, esc(subtitle))
	}
	b.WriteString(`<ul class="sk-portfolio__items">`)
	for _, item := range data.Items {
		writePortfolioItem(&b, item, locale)
	}
	b.WriteString(`</ul></section>`)
	return b.String()
}

func writePortfolioItem(b *strings.Builder, item blocks.PortfolioItem, locale string) {
	fmt.Fprintf(b, `<li class="sk-portfolio__item sk-portfolio__item--%s">`, item.Kind)
	if title := item.Title.Get(locale); title != "" {
		fmt.Fprintf(b, `<h3>%s</h3>`, esc(title))
	}
	b.WriteString(portfolioMedia(item, locale))
	if description := item.Description.Get(locale); description != "" {
		fmt.Fprintf(b, `<div class="sk-portfolio__description">%s</div>`, description)
	}
	if label := item.LinkLabel.Get(locale); label != "" && item.LinkURL != "" {
		fmt.Fprintf(b, `<a href="%s">%s</a>`, esc(item.LinkURL), esc(label))
	}
	b.WriteString(`</li>`)
}

// portfolioMedia resolves an item's media purely from kind and its url
// fields. Locked items never embed anything no matter what else is set.
func portfolioMedia(item blocks.PortfolioItem, locale string) string {
	placeholder := fmt.Sprintf(`<span class="sk-portfolio__placeholder">%s</span>`, esc(mediaPlaceholder(locale)))

	switch item.Kind {
	case blocks.PortfolioKindLocked:
		return `<span class="sk-portfolio__locked"></span>`
	case blocks.PortfolioKindVideo:
		if embed, ok := YouTubeEmbedURL(item.EmbedURL); ok {
			return fmt.Sprintf(`<iframe src="%s" loading="lazy" allowfullscreen></iframe>`, esc(embed))
		}
		return placeholder
	case blocks.PortfolioKindMap:
		if item.EmbedURL != "" {
			return fmt.Sprintf(`<iframe src="%s" loading="lazy"></iframe>`, esc(item.EmbedURL))
		}
		return placeholder
	case blocks.PortfolioKindImage:
		if item.ImageURL != "" {
			return fmt.Sprintf(`<img src="%s" alt="">`, esc(item.ImageURL))
		}
		return placeholder
	default:
		return placeholder
	}
}

func renderCTA(data *blocks.CTAData, locale string) string {
	var b strings.Builder
	b.WriteString(`<section class="sk-cta">`)
	if title := data.Title.Get(locale); title != "" {
		fmt.Fprintf(&b, `<h2>%s</h2>`, esc(title))
	}
	if description := data.Description.Get(locale); description != "" {
		fmt.Fprintf(&b, `<p>%s</p>`, esc(description))
	}
	if label := data.ButtonLabel.Get(locale); label != "" && data.ButtonURL != "" {
		fmt.Fprintf(&b, `<a class="sk-cta__button" href="%s">%s</a>`, esc(data.ButtonURL), esc(label))
	}
	b.WriteString(`</section>`)
	return b.String()
}

func renderFAQ(data *blocks.FAQData, locale string) string {
	var b strings.Builder
	b.WriteString(`<section class="sk-faq">`)
	if title := data.Title.Get(locale); title != "" {
		fmt.Fprintf(&b, `<h2>%s</h2>`, esc(title))
	}
	for _, item := range data.Items {
		question := item.Question.Get(locale)
		answer := item.Answer.Get(locale)
		if question == "" && answer == "" {
			continue
		}
		fmt.Fprintf(&b, `<details class="sk-faq__item"><summary>%s</summary><div>%s</div></details>`,
			esc(question), answer)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func renderContact(data *blocks.ContactData, locale string) string {
	var b strings.Builder
	b.WriteString(`<section class="sk-contact">`)
	if title := data.Title.Get(locale); title != "" {
		fmt.Fprintf(&b, `<h2>%s</h2>`, esc(title))
	}
	if description := data.Description.Get(locale); description != "" {
		fmt.Fprintf(&b, `<p>%s</p>`, esc(description))
	}
	if data.Email != "" {
		fmt.Fprintf(&b, `<a class="sk-contact__email" href="mailto:%s">%s</a>`, esc(data.Email), esc(data.Email))
	}
	if data.Phone != "" {
		fmt.Fprintf(&b, `<a class="sk-contact__phone" href="tel:%s">%s</a>`, esc(data.Phone), esc(data.Phone))
	}
	if address := data.Address.Get(locale); address != "" {
		fmt.Fprintf(&b, `<address>%s</address>`, esc(address))
	}
	b.WriteString(`</section>`)
	return b.String()
}

func renderSocial(data *blocks.SocialData, locale string) string {
	var b strings.Builder
	b.WriteString(`<nav class="sk-social">`)
	if title := data.Title.Get(locale); title != "" {
		fmt.Fprintf(&b, `<h2>%s</h2>`, esc(title))
	}
	b.WriteString(`<ul>`)
	for _, link := range data.Links {
		label := link.Label.Get(locale)
		if link.URL == "" || label == "" {
			continue
		}
		fmt.Fprintf(&b, `<li><a href="%s" data-icon="%s">%s</a></li>`,
			esc(link.URL), esc(link.Icon), esc(label))
	}
	b.WriteString(`</ul></nav>`)
	return b.String()
}

func renderChat(data *blocks.ChatData, locale string) string {
	var b strings.Builder
	b.WriteString(`<div class="sk-chat" data-chat-mount>`)
	if title := data.Title.Get(locale); title != "" {
		fmt.Fprintf(&b, `<h2>%s</h2>`, esc(title))
	}
	if description := data.Description.Get(locale); description != "" {
		fmt.Fprintf(&b, `<p>%s</p>`, esc(description))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderDivider(data *blocks.DividerData) string {
	style := data.Style
	if style != blocks.DividerSpace {
		style = blocks.DividerLine
	}
	return fmt.Sprintf(`<hr class="sk-divider sk-divider--%s">`, style)
}

func renderSpacer(data *blocks.SpacerData) string {
	size := data.Size
	if size <= 0 {
		size = blocks.DefaultSpacerSize
	}
	return fmt.Sprintf(`<div class="sk-spacer" style="height:%dpx"></div>`, size)
}

func placeholderFigure(class, locale string) string {
	return fmt.Sprintf(`<figure class="%s %s--placeholder"><span>%s</span></figure>`,
		class, class, esc(mediaPlaceholder(locale)))
}

func esc(s string) string {
	return html.EscapeString(s)
}
