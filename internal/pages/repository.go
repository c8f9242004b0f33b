package pages

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewPageModelRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID: func(p *Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Slug
		},
	})
}

func NewRevisionModelRepository(db *bun.DB) repository.Repository[*PageRevision] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageRevision]{
		NewRecord: func() *PageRevision { return &PageRevision{} },
		GetID: func(r *PageRevision) uuid.UUID {
			return r.ID
		},
		SetID: func(r *PageRevision, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *PageRevision) string {
			return r.ID.String()
		},
	})
}
