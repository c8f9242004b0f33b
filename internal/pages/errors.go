package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrPageRequired       = errors.New("pages: page id required")
	ErrTitleRequired      = errors.New("pages: title is required")
	ErrSlugRequired       = errors.New("pages: slug is required")
	ErrSlugInvalid        = errors.New("pages: slug contains invalid characters")
	ErrSlugReserved       = errors.New("pages: slug is reserved")
	ErrSlugExists         = errors.New("pages: slug already exists")
	ErrNoDraftToPublish   = errors.New("pages: no draft revision to publish")
	ErrRevisionRequired   = errors.New("pages: revision id required")
	ErrRevisionMismatch   = errors.New("pages: revision belongs to another page")
	ErrActorRequired      = errors.New("pages: actor id required")
	ErrNotAuthorized      = errors.New("pages: actor not authorized")
)

// PageNotFoundError reports a missing page lookup by id or slug.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return "pages: page not found"
	}
	return fmt.Sprintf("pages: page not found: %s", e.Key)
}

// RevisionNotFoundError reports a missing revision lookup.
type RevisionNotFoundError struct {
	PageID     uuid.UUID
	RevisionID uuid.UUID
}

func (e *RevisionNotFoundError) Error() string {
	if e == nil {
		return "pages: revision not found"
	}
	if e.RevisionID != uuid.Nil {
		return fmt.Sprintf("pages: revision not found: %s", e.RevisionID)
	}
	return fmt.Sprintf("pages: revision not found for page %s", e.PageID)
}

// SlugConflictError surfaces a storage-level uniqueness violation as a
// user-facing conflict.
type SlugConflictError struct {
	Slug string
}

func (e *SlugConflictError) Error() string {
	if e == nil {
		return ErrSlugExists.Error()
	}
	slug := strings.TrimSpace(e.Slug)
	if slug != "" {
		return fmt.Sprintf("%s: slug=%s", ErrSlugExists.Error(), slug)
	}
	return ErrSlugExists.Error()
}

func (e *SlugConflictError) Unwrap() error {
	return ErrSlugExists
}
