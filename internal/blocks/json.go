package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type blockEnvelope struct {
	ID   string          `json:"id"`
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the discriminated union: the payload shape is chosen
// by the type tag. Unknown tags keep their tag (renderers skip them) and
// decode into the richText shape, matching the factory's fail-open default.
func (b *Block) UnmarshalJSON(raw []byte) error {
	var envelope blockEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("blocks: decode envelope: %w", err)
	}

	data := emptyDataFor(envelope.Type)
	if len(envelope.Data) > 0 && !bytes.Equal(bytes.TrimSpace(envelope.Data), []byte("null")) {
		if err := json.Unmarshal(envelope.Data, data); err != nil {
			return fmt.Errorf("blocks: decode %s data: %w", envelope.Type, err)
		}
	}

	b.ID = envelope.ID
	b.Type = envelope.Type
	b.Data = data
	return nil
}

// DecodeList leniently decodes an untrusted block list. Non-array input
// yields an empty list; elements that are not non-null objects, or whose
// payload cannot be decoded for their tag, are dropped without error.
func DecodeList(raw json.RawMessage) []Block {
	if len(raw) == 0 {
		return []Block{}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return []Block{}
	}

	out := make([]Block, 0, len(elements))
	for _, element := range elements {
		trimmed := bytes.TrimSpace(element)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var block Block
		if err := json.Unmarshal(trimmed, &block); err != nil {
			continue
		}
		if block.ID == "" {
			block.ID = uuid.NewString()
		}
		out = append(out, block)
	}
	return out
}

// EncodeList marshals an ordered block list for persistence.
func EncodeList(list []Block) (json.RawMessage, error) {
	if list == nil {
		list = []Block{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("blocks: encode list: %w", err)
	}
	return encoded, nil
}

func emptyDataFor(t Type) Data {
	switch t {
	case TypeHero:
		return &HeroData{}
	case TypeImage:
		return &ImageData{}
	case TypeImageText:
		return &ImageTextData{}
	case TypeGallery:
		return &GalleryData{}
	case TypeVideo:
		return &VideoData{}
	case TypePortfolio:
		return &PortfolioData{}
	case TypeCTA:
		return &CTAData{}
	case TypeFAQ:
		return &FAQData{}
	case TypeContact:
		return &ContactData{}
	case TypeSocial:
		return &SocialData{}
	case TypeChat:
		return &ChatData{}
	case TypeDivider:
		return &DividerData{}
	case TypeSpacer:
		return &SpacerData{}
	default:
		// richText plus the fail-open default for unknown tags.
		return &RichTextData{}
	}
}
