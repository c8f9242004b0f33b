package blocks

import (
	"github.com/goliatone/go-sitekit/internal/i18n"
	"github.com/google/uuid"
)

// DefaultSpacerSize is the initial spacer height in pixels.
const DefaultSpacerSize = 48

// Factory produces fresh block instances with every localized field
// initialized to empty-per-locale and structural fields at documented
// defaults.
type Factory struct {
	locales []string
}

// NewFactory constructs a factory for the supplied locale set, defaulting to
// the reference set when empty.
func NewFactory(locales []string) *Factory {
	normalized := i18n.NormalizeLocales(locales)
	if len(normalized) == 0 {
		normalized = i18n.DefaultLocales()
	}
	return &Factory{locales: normalized}
}

// Locales returns the locale set the factory initializes values with.
func (f *Factory) Locales() []string {
	out := make([]string, len(f.locales))
	copy(out, f.locales)
	return out
}

// New returns a fresh block of the requested variant with a generated id.
// Unknown tags fall back to the richText variant; the fail-open default keeps
// editors working when stored content references variants newer than this
// binary.
func (f *Factory) New(t Type) Block {
	if !Known(t) {
		t = TypeRichText
	}
	return Block{
		ID:   uuid.NewString(),
		Type: t,
		Data: f.emptyData(t),
	}
}

// Clone deep-copies a block and assigns a fresh block id. Nested list-item
// ids (gallery images, portfolio items, FAQ items, social links) are kept
// as-is; they are scoped to their containing list.
func (f *Factory) Clone(b Block) Block {
	return Block{
		ID:   uuid.NewString(),
		Type: b.Type,
		Data: CloneData(b.Data),
	}
}

// NewGalleryImage returns an empty gallery entry with a generated item id.
func (f *Factory) NewGalleryImage() GalleryImage {
	return GalleryImage{
		ID:      uuid.NewString(),
		Alt:     i18n.NewLocalizedString(f.locales),
		Caption: i18n.NewLocalizedString(f.locales),
	}
}

// NewPortfolioItem returns an empty portfolio entry with a generated item id.
func (f *Factory) NewPortfolioItem() PortfolioItem {
	return PortfolioItem{
		ID:          uuid.NewString(),
		Kind:        PortfolioKindImage,
		Title:       i18n.NewLocalizedString(f.locales),
		Description: i18n.NewLocalizedHTML(f.locales),
		LinkLabel:   i18n.NewLocalizedString(f.locales),
	}
}

// NewFAQItem returns an empty question/answer pair with a generated item id.
func (f *Factory) NewFAQItem() FAQItem {
	return FAQItem{
		ID:       uuid.NewString(),
		Question: i18n.NewLocalizedString(f.locales),
		Answer:   i18n.NewLocalizedHTML(f.locales),
	}
}

// NewSocialLink returns an empty social entry with a generated item id.
func (f *Factory) NewSocialLink() SocialLink {
	return SocialLink{
		ID:    uuid.NewString(),
		Label: i18n.NewLocalizedString(f.locales),
	}
}

func (f *Factory) emptyData(t Type) Data {
	str := func() i18n.LocalizedString { return i18n.NewLocalizedString(f.locales) }
	htm := func() i18n.LocalizedHTML { return i18n.NewLocalizedHTML(f.locales) }

	switch t {
	case TypeHero:
		return &HeroData{
			Badge:        str(),
			Title:        str(),
			Subtitle:     str(),
			Description:  htm(),
			PrimaryCTA:   CTALink{Label: str()},
			SecondaryCTA: CTALink{Label: str()},
			Image:        ImageRef{Alt: str()},
		}
	case TypeRichText:
		return &RichTextData{Content: htm(), Width: WidthFull}
	case TypeImage:
		return &ImageData{Alt: str(), Caption: str()}
	case TypeImageText:
		return &ImageTextData{
			Image:   ImageRef{Alt: str()},
			Content: htm(),
			Align:   AlignLeft,
		}
	case TypeGallery:
		return &GalleryData{Images: []GalleryImage{}}
	case TypeVideo:
		return &VideoData{Title: str()}
	case TypePortfolio:
		return &PortfolioData{Title: str(), Subtitle: str(), Items: []PortfolioItem{}}
	case TypeCTA:
		return &CTAData{Title: str(), Description: str(), ButtonLabel: str()}
	case TypeFAQ:
		return &FAQData{Title: str(), Items: []FAQItem{}}
	case TypeContact:
		return &ContactData{Title: str(), Description: str(), Address: str()}
	case TypeSocial:
		return &SocialData{Title: str(), Links: []SocialLink{}}
	case TypeChat:
		return &ChatData{Title: str(), Description: str()}
	case TypeDivider:
		return &DividerData{Style: DividerLine}
	case TypeSpacer:
		return &SpacerData{Size: DefaultSpacerSize}
	default:
		return &RichTextData{Content: htm(), Width: WidthFull}
	}
}

// CloneData deep-copies a variant payload, including nested list items and
// every localized map.
func CloneData(data Data) Data {
	switch typed := data.(type) {
	case *HeroData:
		if typed == nil {
			return (*HeroData)(nil)
		}
		cloned := *typed
		cloned.Badge = typed.Badge.Clone()
		cloned.Title = typed.Title.Clone()
		cloned.Subtitle = typed.Subtitle.Clone()
		cloned.Description = typed.Description.Clone()
		cloned.PrimaryCTA = cloneCTALink(typed.PrimaryCTA)
		cloned.SecondaryCTA = cloneCTALink(typed.SecondaryCTA)
		cloned.Image = cloneImageRef(typed.Image)
		return &cloned
	case *RichTextData:
		if typed == nil {
			return (*RichTextData)(nil)
		}
		cloned := *typed
		cloned.Content = typed.Content.Clone()
		return &cloned
	case *ImageData:
		if typed == nil {
			return (*ImageData)(nil)
		}
		cloned := *typed
		cloned.Alt = typed.Alt.Clone()
		cloned.Caption = typed.Caption.Clone()
		return &cloned
	case *ImageTextData:
		if typed == nil {
			return (*ImageTextData)(nil)
		}
		cloned := *typed
		cloned.Image = cloneImageRef(typed.Image)
		cloned.Content = typed.Content.Clone()
		return &cloned
	case *GalleryData:
		if typed == nil {
			return (*GalleryData)(nil)
		}
		cloned := *typed
		cloned.Images = make([]GalleryImage, len(typed.Images))
		for i, image := range typed.Images {
			entry := image
			entry.Alt = image.Alt.Clone()
			entry.Caption = image.Caption.Clone()
			cloned.Images[i] = entry
		}
		return &cloned
	case *VideoData:
		if typed == nil {
			return (*VideoData)(nil)
		}
		cloned := *typed
		cloned.Title = typed.Title.Clone()
		return &cloned
	case *PortfolioData:
		if typed == nil {
			return (*PortfolioData)(nil)
		}
		cloned := *typed
		cloned.Title = typed.Title.Clone()
		cloned.Subtitle = typed.Subtitle.Clone()
		cloned.Items = make([]PortfolioItem, len(typed.Items))
		for i, item := range typed.Items {
			entry := item
			entry.Title = item.Title.Clone()
			entry.Description = item.Description.Clone()
			entry.LinkLabel = item.LinkLabel.Clone()
			cloned.Items[i] = entry
		}
		return &cloned
	case *CTAData:
		if typed == nil {
			return (*CTAData)(nil)
		}
		cloned := *typed
		cloned.Title = typed.Title.Clone()
		cloned.Description = typed.Description.Clone()
		cloned.ButtonLabel = typed.ButtonLabel.Clone()
		return &cloned
	case *FAQData:
		if typed == nil {
			return (*FAQData)(nil)
		}
		cloned := *typed
		cloned.Title = typed.Title.Clone()
		cloned.Items = make([]FAQItem, len(typed.Items))
		for i, item := range typed.Items {
			entry := item
			entry.Question = item.Question.Clone()
			entry.Answer = item.Answer.Clone()
			cloned.Items[i] = entry
		}
		return &cloned
	case *ContactData:
		if typed == nil {
			return (*ContactData)(nil)
		}
		cloned := *typed
		cloned.Title = typed.Title.Clone()
		cloned.Description = typed.Description.Clone()
		cloned.Address = typed.Address.Clone()
		return &cloned
	case *SocialData:
		if typed == nil {
			return (*SocialData)(nil)
		}
		cloned := *typed
		cloned.Title = typed.Title.Clone()
		cloned.Links = make([]SocialLink, len(typed.Links))
		for i, link := range typed.Links {
			entry := link
			entry.Label = link.Label.Clone()
			cloned.Links[i] = entry
		}
		return &cloned
	case *ChatData:
		if typed == nil {
			return (*ChatData)(nil)
		}
		cloned := *typed
		cloned.Title = typed.Title.Clone()
		cloned.Description = typed.Description.Clone()
		return &cloned
	case *DividerData:
		if typed == nil {
			return (*DividerData)(nil)
		}
		cloned := *typed
		return &cloned
	case *SpacerData:
		if typed == nil {
			return (*SpacerData)(nil)
		}
		cloned := *typed
		return &cloned
	default:
		return data
	}
}

func cloneCTALink(link CTALink) CTALink {
	link.Label = link.Label.Clone()
	return link
}

func cloneImageRef(ref ImageRef) ImageRef {
	ref.Alt = ref.Alt.Clone()
	return ref
}

// CloneBlocks deep-copies an ordered block list keeping every id intact.
// Editors use Factory.Clone when a fresh identity is required instead.
func CloneBlocks(list []Block) []Block {
	if len(list) == 0 {
		return nil
	}
	out := make([]Block, len(list))
	for i, block := range list {
		out[i] = Block{ID: block.ID, Type: block.Type, Data: CloneData(block.Data)}
	}
	return out
}
