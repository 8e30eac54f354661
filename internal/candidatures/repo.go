package candidatures

import "context"

// Repo defines persistence operations for candidatures.
//
// Create must enforce the unique-URL constraint and return ErrDuplicateURL
// when violated; the aggregation engine relies on that instead of a
// check-then-create round trip, so the dedup has no race window.
type Repo interface {
	Create(ctx context.Context, c Candidature) error
	GetByID(ctx context.Context, id string) (Candidature, error)
	List(ctx context.Context) ([]Candidature, error)
	Update(ctx context.Context, c Candidature) error
	Delete(ctx context.Context, id string) error
}
