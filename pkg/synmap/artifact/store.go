package artifact

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/synmap/pkg/synmap/internalerr"
)

// Store is a named, directory-scoped document store.
// Documents are written and read whole; there is no partial update.
type Store interface {
	Close() error

	// Write stores data under name, replacing any previous document.
	Write(ctx context.Context, name string, data []byte) error

	// Read returns the document stored under name.
	// A missing document yields an error wrapping internalerr.ErrNotFound.
	Read(ctx context.Context, name string) ([]byte, error)

	// Exists reports whether a document is stored under name.
	Exists(ctx context.Context, name string) (bool, error)
}

// ValidateName rejects names that would escape the store's scope.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("document name is empty: %w", internalerr.ErrInvalidInput)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("document name %q must be a plain file name: %w", name, internalerr.ErrInvalidInput)
	}
	return nil
}
