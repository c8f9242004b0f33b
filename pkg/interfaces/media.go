package interfaces

import (
	"context"
	"io"
	"time"
)

// MediaAsset references an uploaded binary by its publicly resolvable URL.
// Block fields only ever store the URL string; the binary never crosses the
// core boundary.
type MediaAsset struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

// MediaStorage is the external upload collaborator.
type MediaStorage interface {
	Store(ctx context.Context, name, mimeType string, body io.Reader) (MediaAsset, error)
}
