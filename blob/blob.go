// Package blob abstracts storage for uploaded post images. The rest of the
// system treats the returned reference as an opaque string.
package blob

import (
	"context"
	"io"
)

// Store accepts an upload and returns a retrievable reference.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}
