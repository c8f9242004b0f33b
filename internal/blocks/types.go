package blocks

import (
	"github.com/goliatone/go-sitekit/internal/i18n"
)

// Type tags a block variant. The set is closed; consumers dispatch on the tag
// via type switches over the Data union so new variants surface everywhere a
// handler is required.
type Type string

const (
	TypeHero      Type = "hero"
	TypeRichText  Type = "richText"
	TypeImage     Type = "image"
	TypeImageText Type = "imageText"
	TypeGallery   Type = "gallery"
	TypeVideo     Type = "video"
	TypePortfolio Type = "portfolio"
	TypeCTA       Type = "cta"
	TypeFAQ       Type = "faq"
	TypeContact   Type = "contact"
	TypeSocial    Type = "social"
	TypeChat      Type = "chat"
	TypeDivider   Type = "divider"
	TypeSpacer    Type = "spacer"
)

// Types lists every registered variant tag in presentation order.
func Types() []Type {
	return []Type{
		TypeHero, TypeRichText, TypeImage, TypeImageText, TypeGallery,
		TypeVideo, TypePortfolio, TypeCTA, TypeFAQ, TypeContact,
		TypeSocial, TypeChat, TypeDivider, TypeSpacer,
	}
}

// Known reports whether the tag names a supported variant.
func Known(t Type) bool {
	switch t {
	case TypeHero, TypeRichText, TypeImage, TypeImageText, TypeGallery,
		TypeVideo, TypePortfolio, TypeCTA, TypeFAQ, TypeContact,
		TypeSocial, TypeChat, TypeDivider, TypeSpacer:
		return true
	default:
		return false
	}
}

// TextWidth constrains rich text rendering width.
type TextWidth string

const (
	WidthFull   TextWidth = "full"
	WidthNarrow TextWidth = "narrow"
)

// ImageAlign positions the image half of an image+text block.
type ImageAlign string

const (
	AlignLeft  ImageAlign = "left"
	AlignRight ImageAlign = "right"
)

// DividerStyle selects the divider treatment.
type DividerStyle string

const (
	DividerLine  DividerStyle = "line"
	DividerSpace DividerStyle = "space"
)

// PortfolioKind selects how a portfolio item resolves embedded media.
type PortfolioKind string

const (
	PortfolioKindMap    PortfolioKind = "map"
	PortfolioKindVideo  PortfolioKind = "video"
	PortfolioKindImage  PortfolioKind = "image"
	PortfolioKindLocked PortfolioKind = "locked"
)

// Block is one typed, independently addressable content unit inside a page
// revision. Data's concrete type is fully determined by Type.
type Block struct {
	ID   string `json:"id"`
	Type Type   `json:"type"`
	Data Data   `json:"data"`
}

// Data is the closed union over variant payloads.
type Data interface {
	isBlockData()
}

// CTALink pairs a localized call-to-action label with its target URL.
type CTALink struct {
	Label i18n.LocalizedString `json:"label"`
	URL   string               `json:"url"`
}

// ImageRef references an image asset with localized alternative text.
type ImageRef struct {
	URL string               `json:"url"`
	Alt i18n.LocalizedString `json:"alt"`
}

// HeroData is the leading banner variant.
type HeroData struct {
	Badge        i18n.LocalizedString `json:"badge"`
	Title        i18n.LocalizedString `json:"title"`
	Subtitle     i18n.LocalizedString `json:"subtitle"`
	Description  i18n.LocalizedHTML   `json:"description"`
	PrimaryCTA   CTALink              `json:"primaryCta"`
	SecondaryCTA CTALink              `json:"secondaryCta"`
	Image        ImageRef             `json:"image"`
}

// RichTextData carries a free-form HTML fragment.
type RichTextData struct {
	Content i18n.LocalizedHTML `json:"content"`
	Width   TextWidth          `json:"width"`
}

// ImageData shows a single captioned image.
type ImageData struct {
	URL     string               `json:"url"`
	Alt     i18n.LocalizedString `json:"alt"`
	Caption i18n.LocalizedString `json:"caption"`
}

// ImageTextData pairs an image with a rich text column.
type ImageTextData struct {
	Image   ImageRef           `json:"image"`
	Content i18n.LocalizedHTML `json:"content"`
	Align   ImageAlign         `json:"align"`
}

// GalleryImage is one entry in a gallery block. Item ids are scoped to the
// containing list, not global.
type GalleryImage struct {
	ID      string               `json:"id"`
	URL     string               `json:"url"`
	Alt     i18n.LocalizedString `json:"alt"`
	Caption i18n.LocalizedString `json:"caption"`
}

// GalleryData shows an ordered image grid.
type GalleryData struct {
	Images []GalleryImage `json:"images"`
}

// VideoData embeds an external video player.
type VideoData struct {
	URL   string               `json:"url"`
	Title i18n.LocalizedString `json:"title"`
}

// PortfolioItem is one showcase entry inside a portfolio block.
type PortfolioItem struct {
	ID          string               `json:"id"`
	Kind        PortfolioKind        `json:"kind"`
	Title       i18n.LocalizedString `json:"title"`
	Description i18n.LocalizedHTML   `json:"description"`
	EmbedURL    string               `json:"embedUrl"`
	ImageURL    string               `json:"imageUrl"`
	LinkLabel   i18n.LocalizedString `json:"linkLabel"`
	LinkURL     string               `json:"linkUrl"`
}

// PortfolioData showcases an ordered list of work items.
type PortfolioData struct {
	Title    i18n.LocalizedString `json:"title"`
	Subtitle i18n.LocalizedString `json:"subtitle"`
	Items    []PortfolioItem      `json:"items"`
}

// CTAData is a standalone call-to-action banner.
type CTAData struct {
	Title       i18n.LocalizedString `json:"title"`
	Description i18n.LocalizedString `json:"description"`
	ButtonLabel i18n.LocalizedString `json:"buttonLabel"`
	ButtonURL   string               `json:"buttonUrl"`
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	ID       string               `json:"id"`
	Question i18n.LocalizedString `json:"question"`
	Answer   i18n.LocalizedHTML   `json:"answer"`
}

// FAQData renders an accordion of questions.
type FAQData struct {
	Title i18n.LocalizedString `json:"title"`
	Items []FAQItem            `json:"items"`
}

// ContactData shows contact details. Email and phone are shared across
// locales; the address line is localized.
type ContactData struct {
	Title       i18n.LocalizedString `json:"title"`
	Description i18n.LocalizedString `json:"description"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone"`
	Address     i18n.LocalizedString `json:"address"`
}

// SocialLink is one entry in a social links block.
type SocialLink struct {
	ID    string               `json:"id"`
	Label i18n.LocalizedString `json:"label"`
	URL   string               `json:"url"`
	Icon  string               `json:"icon"`
}

// SocialData lists outbound social profiles.
type SocialData struct {
	Title i18n.LocalizedString `json:"title"`
	Links []SocialLink         `json:"links"`
}

// ChatData embeds the community chat widget.
type ChatData struct {
	Title       i18n.LocalizedString `json:"title"`
	Description i18n.LocalizedString `json:"description"`
}

// DividerData separates sections visually.
type DividerData struct {
	Style DividerStyle `json:"style"`
}

// SpacerData inserts fixed vertical whitespace.
type SpacerData struct {
	Size int `json:"size"`
}

func (*HeroData) isBlockData()      {}
func (*RichTextData) isBlockData()  {}
func (*ImageData) isBlockData()     {}
func (*ImageTextData) isBlockData() {}
func (*GalleryData) isBlockData()   {}
func (*VideoData) isBlockData()     {}
func (*PortfolioData) isBlockData() {}
func (*CTAData) isBlockData()       {}
func (*FAQData) isBlockData()       {}
func (*ContactData) isBlockData()   {}
func (*SocialData) isBlockData()    {}
func (*ChatData) isBlockData()      {}
func (*DividerData) isBlockData()   {}
func (*SpacerData) isBlockData()    {}
