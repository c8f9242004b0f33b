package blocks_test

import (
	"testing"

	"github.com/goliatone/go-sitekit/internal/blocks"
)

func TestRegistryListsBuiltinsInPresentationOrder(t *testing.T) {
	registry := blocks.NewRegistry()

	defs := registry.List()
	if len(defs) != len(blocks.Types()) {
		t.Fatalf("expected %d builtin definitions got %d", len(blocks.Types()), len(defs))
	}
	for i, want := range blocks.Types() {
		if defs[i].Type != want {
			t.Fatalf("definition %d: expected %q got %q", i, want, defs[i].Type)
		}
	}

	def, ok := registry.Get(blocks.TypeHero)
	if !ok {
		t.Fatal("hero definition missing")
	}
	if def.Label == "" || def.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("hero definition incomplete: %+v", def)
	}
}

func TestRegistryRejectsInvalidSchema(t *testing.T) {
	registry := blocks.NewRegistry()

	err := registry.Register(blocks.Definition{
		Type:  blocks.Type("testimonial"),
		Label: "Testimonial",
		Schema: map[string]any{
			"type": 42,
		},
	})
	if err == nil {
		t.Fatal("expected schema compile failure")
	}

	if _, ok := registry.Get(blocks.Type("testimonial")); ok {
		t.Fatal("invalid definition must not be registered")
	}
}

func TestRegistryAcceptsCustomDefinition(t *testing.T) {
	registry := blocks.NewRegistry()

	err := registry.Register(blocks.Definition{
		Type:  blocks.Type("testimonial"),
		Label: "Testimonial",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"quote": map[string]any{"type": "object"},
			},
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	defs := registry.List()
	last := defs[len(defs)-1]
	if last.Type != blocks.Type("testimonial") {
		t.Fatalf("custom definition should sort after builtins, got %q last", last.Type)
	}
}
