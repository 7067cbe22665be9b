package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists for the given id.
// Callers treat a missing settings document as all-defaults, not a failure.
var ErrNotFound = errors.New("document not found")

// DocumentStore is the persistence contract for settings documents. Merge
// replaces exactly the top-level fields present in fields; everything else
// already stored under the document is left untouched. Documents are created
// lazily by the first Merge.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string, dest interface{}) error
	Merge(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
}
