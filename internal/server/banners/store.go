// Package banners stores uploaded event banner images and hands back the
// reference recorded on the event. No content inspection or resizing is
// performed; the HTTP layer enforces the accepted-size ceiling.
package banners

import (
	"context"
	"io"
)

// Store persists a banner and returns the reference recorded on the event
// (a path under /uploads/).
type Store interface {
	Save(ctx context.Context, fileName, contentType string, data io.Reader) (string, error)
}

// URLResolver is implemented by stores whose objects are not served
// directly by this process; the HTTP layer redirects to the resolved URL.
type URLResolver interface {
	ResolveURL(ctx context.Context, key string) (string, error)
}
