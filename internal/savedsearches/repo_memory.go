package savedsearches

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]SavedSearch
	byURL map[string]string
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items: make(map[string]SavedSearch),
		byURL: make(map[string]string),
	}
}

func (r *MemoryRepo) Upsert(ctx context.Context, s SavedSearch) (SavedSearch, error) {
	if err := ctx.Err(); err != nil {
		return SavedSearch{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, exists := r.byURL[s.URL]; exists {
		existing := r.items[id]
		existing.CompanyName = s.CompanyName
		existing.Type = s.Type
		r.items[id] = existing
		return existing, nil
	}

	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	r.items[s.ID] = s
	r.byURL[s.URL] = s.ID
	return s, nil
}

// List returns all saved searches newest-first.
func (r *MemoryRepo) List(ctx context.Context) ([]SavedSearch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SavedSearch, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	delete(r.byURL, s.URL)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
