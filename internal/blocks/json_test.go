package blocks_test

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-sitekit/internal/blocks"
	"github.com/goliatone/go-sitekit/internal/i18n"
)

func TestBlockJSONRoundTrip(t *testing.T) {
	factory := blocks.NewFactory(i18n.DefaultLocales())
	block := factory.New(blocks.TypeHero)
	data := block.Data.(*blocks.HeroData)
	data.Title = data.Title.Set("en", "Welcome")
	data.PrimaryCTA.URL = "https://example.com/start"

	encoded, err := json.Marshal(block)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded blocks.Block
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.ID != block.ID {
		t.Fatalf("expected id %q got %q", block.ID, decoded.ID)
	}
	if decoded.Type != blocks.TypeHero {
		t.Fatalf("expected hero got %q", decoded.Type)
	}
	decodedData, ok := decoded.Data.(*blocks.HeroData)
	if !ok {
		t.Fatalf("expected *HeroData got %T", decoded.Data)
	}
	if decodedData.Title.Get("en") != "Welcome" {
		t.Fatalf("title lost in round trip: %q", decodedData.Title.Get("en"))
	}
	if decodedData.PrimaryCTA.URL != "https://example.com/start" {
		t.Fatalf("cta url lost: %q", decodedData.PrimaryCTA.URL)
	}
}

func TestBlockUnmarshalUnknownTypeKeepsTag(t *testing.T) {
	raw := []byte(`{"id":"b1","type":"carousel3d","data":{"content":{"en":"<p>x</p>"}}}`)

	var decoded blocks.Block
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Type != blocks.Type("carousel3d") {
		t.Fatalf("expected original tag preserved got %q", decoded.Type)
	}
	if _, ok := decoded.Data.(*blocks.RichTextData); !ok {
		t.Fatalf("expected richText-shaped data got %T", decoded.Data)
	}
}

func TestDecodeListNonArrayYieldsEmpty(t *testing.T) {
	for _, raw := range []string{`{"not":"a list"}`, `"text"`, `42`, ``} {
		got := blocks.DecodeList(json.RawMessage(raw))
		if len(got) != 0 {
			t.Fatalf("DecodeList(%q) returned %d blocks", raw, len(got))
		}
	}
}

func TestDecodeListDropsMalformedElements(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"keep","type":"spacer","data":{"size":16}},
		"not an object",
		null,
		7,
		{"id":"bad","type":"spacer","data":{"size":"tall"}},
		{"id":"keep2","type":"divider","data":{"style":"space"}}
	]`)

	got := blocks.DecodeList(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 surviving blocks got %d", len(got))
	}
	if got[0].ID != "keep" || got[1].ID != "keep2" {
		t.Fatalf("unexpected survivors: %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].Data.(*blocks.SpacerData).Size != 16 {
		t.Fatalf("spacer payload lost: %d", got[0].Data.(*blocks.SpacerData).Size)
	}
}

func TestDecodeListAssignsMissingIDs(t *testing.T) {
	raw := json.RawMessage(`[{"type":"divider","data":{"style":"line"}}]`)
	got := blocks.DecodeList(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 block got %d", len(got))
	}
	if got[0].ID == "" {
		t.Fatal("expected generated id for block without one")
	}
}
