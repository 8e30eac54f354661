package savedsearches

import (
	"context"
	"errors"
)

// ErrNotFound indicates the saved search id does not resolve.
var ErrNotFound = errors.New("saved search not found")

// Repo defines persistence operations for saved searches.
type Repo interface {
	// Upsert inserts or, when the URL already exists, updates the record.
	Upsert(ctx context.Context, s SavedSearch) (SavedSearch, error)
	List(ctx context.Context) ([]SavedSearch, error)
	Delete(ctx context.Context, id string) error
}
