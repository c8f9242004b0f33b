package sanitize

import (
	"encoding/json"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
)

// Blocks decodes an untrusted block payload and filters every HTML-bearing
// localized field. Input is arbitrary JSON from a save request: non-array
// payloads yield an empty list and malformed elements are dropped without
// error, so a single bad block never fails a save.
func Blocks(raw json.RawMessage) []blocks.Block {
	list := blocks.DecodeList(raw)
	out := make([]blocks.Block, 0, len(list))
	for _, block := range list {
		out = append(out, Block(block))
	}
	return out
}

// Block returns a deep copy of the block with its HTML fields filtered.
// Plain localized fields and structural fields (urls, sizes, enums) pass
// through untouched; validating those is the editor's responsibility.
func Block(block blocks.Block) blocks.Block {
	block.Data = blocks.CloneData(block.Data)

	switch data := block.Data.(type) {
	case *blocks.HeroData:
		data.Description = HTMLValue(data.Description)
	case *blocks.RichTextData:
		data.Content = HTMLValue(data.Content)
	case *blocks.ImageTextData:
		data.Content = HTMLValue(data.Content)
	case *blocks.PortfolioData:
		for i := range data.Items {
			data.Items[i].Description = HTMLValue(data.Items[i].Description)
		}
	case *blocks.FAQData:
		for i := range data.Items {
			data.Items[i].Answer = HTMLValue(data.Items[i].Answer)
		}
	}
	return block
}

// HTMLValue filters every locale of an HTML-bearing value.
func HTMLValue(value i18n.LocalizedHTML) i18n.LocalizedHTML {
	if value == nil {
		return nil
	}
	out := make(i18n.LocalizedHTML, len(value))
	for locale, fragment := range value {
		out[locale] = HTML(fragment)
	}
	return out
}
