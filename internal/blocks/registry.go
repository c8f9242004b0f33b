package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-sitekit/internal/identity"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Definition describes a block variant to the visual editor: display
// metadata plus a JSON schema for the variant's data record.
type Definition struct {
	ID     uuid.UUID      `json:"id"`
	Type   Type           `json:"type"`
	Label  string         `json:"label"`
	Schema map[string]any `json:"schema,omitempty"`
}

// Registry stores block variant definitions keyed by type tag.
type Registry struct {
	mu      sync.RWMutex
	entries map[Type]Definition
}

// NewRegistry constructs a registry pre-populated with the built-in variants.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[Type]Definition)}
	for _, def := range builtinDefinitions() {
		// Built-in schemas are static; a registration failure is a programming error.
		if err := r.Register(def); err != nil {
			panic(fmt.Sprintf("blocks: builtin definition %s: %v", def.Type, err))
		}
	}
	return r
}

// Register records a definition after validating that its schema compiles.
func (r *Registry) Register(def Definition) error {
	tag := Type(strings.TrimSpace(string(def.Type)))
	if tag == "" {
		return fmt.Errorf("blocks: definition type required")
	}
	def.Type = tag
	if def.Label == "" {
		def.Label = string(tag)
	}
	if def.ID == uuid.Nil {
		def.ID = identity.BlockDefinitionUUID(string(tag))
	}
	if def.Schema != nil {
		if err := compileSchema(string(tag), def.Schema); err != nil {
			return fmt.Errorf("blocks: definition %s schema invalid: %w", tag, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[tag] = def
	return nil
}

// Get returns the definition for a type tag.
func (r *Registry) Get(t Type) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entries[t]
	return def, ok
}

// List returns every registered definition in presentation order, with
// variants outside the built-in set appended alphabetically.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rank := make(map[Type]int, len(r.entries))
	for i, t := range Types() {
		rank[t] = i
	}

	out := make([]Definition, 0, len(r.entries))
	for _, def := range r.entries {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, okI := rank[out[i].Type]
		rj, okJ := rank[out[j].Type]
		switch {
		case okI && okJ:
			return ri < rj
		case okI:
			return true
		case okJ:
			return false
		default:
			return out[i].Type < out[j].Type
		}
	})
	return out
}

func compileSchema(name string, schema map[string]any) error {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	resource := fmt.Sprintf("sitekit://blocks/%s.schema.json", name)
	if err := compiler.AddResource(resource, bytes.NewReader(encoded)); err != nil {
		return err
	}
	_, err = compiler.Compile(resource)
	return err
}

func builtinDefinitions() []Definition {
	localized := map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	listOf := func(itemProps map[string]any) map[string]any {
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":       "object",
				"properties": itemProps,
			},
		}
	}
	object := func(props map[string]any) map[string]any {
		return map[string]any{"type": "object", "properties": props}
	}
	str := map[string]any{"type": "string"}

	ctaLink := object(map[string]any{"label": localized, "url": str})
	imageRef := object(map[string]any{"url": str, "alt": localized})

	return []Definition{
		{Type: TypeHero, Label: "Hero", Schema: object(map[string]any{
			"badge": localized, "title": localized, "subtitle": localized,
			"description": localized, "primaryCta": ctaLink,
			"secondaryCta": ctaLink, "image": imageRef,
		})},
		{Type: TypeRichText, Label: "Rich Text", Schema: object(map[string]any{
			"content": localized,
			"width":   map[string]any{"type": "string", "enum": []any{"full", "narrow"}},
		})},
		{Type: TypeImage, Label: "Image", Schema: object(map[string]any{
			"url": str, "alt": localized, "caption": localized,
		})},
		{Type: TypeImageText, Label: "Image + Text", Schema: object(map[string]any{
			"image": imageRef, "content": localized,
			"align": map[string]any{"type": "string", "enum": []any{"left", "right"}},
		})},
		{Type: TypeGallery, Label: "Gallery", Schema: object(map[string]any{
			"images": listOf(map[string]any{"id": str, "url": str, "alt": localized, "caption": localized}),
		})},
		{Type: TypeVideo, Label: "Video", Schema: object(map[string]any{
			"url": str, "title": localized,
		})},
		{Type: TypePortfolio, Label: "Portfolio", Schema: object(map[string]any{
			"title": localized, "subtitle": localized,
			"items": listOf(map[string]any{
				"id":   str,
				"kind": map[string]any{"type": "string", "enum": []any{"map", "video", "image", "locked"}},
				"title": localized, "description": localized,
				"embedUrl": str, "imageUrl": str,
				"linkLabel": localized, "linkUrl": str,
			}),
		})},
		{Type: TypeCTA, Label: "Call To Action", Schema: object(map[string]any{
			"title": localized, "description": localized,
			"buttonLabel": localized, "buttonUrl": str,
		})},
		{Type: TypeFAQ, Label: "FAQ", Schema: object(map[string]any{
			"title": localized,
			"items": listOf(map[string]any{"id": str, "question": localized, "answer": localized}),
		})},
		{Type: TypeContact, Label: "Contact", Schema: object(map[string]any{
			"title": localized, "description": localized,
			"email": str, "phone": str, "address": localized,
		})},
		{Type: TypeSocial, Label: "Social Links", Schema: object(map[string]any{
			"title": localized,
			"links": listOf(map[string]any{"id": str, "label": localized, "url": str, "icon": str}),
		})},
		{Type: TypeChat, Label: "Chat", Schema: object(map[string]any{
			"title": localized, "description": localized,
		})},
		{Type: TypeDivider, Label: "Divider", Schema: object(map[string]any{
			"style": map[string]any{"type": "string", "enum": []any{"line", "space"}},
		})},
		{Type: TypeSpacer, Label: "Spacer", Schema: object(map[string]any{
			"size": map[string]any{"type": "integer", "minimum": 0},
		})},
	}
}
