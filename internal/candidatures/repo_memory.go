package candidatures

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Candidature
	byURL map[string]string
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items: make(map[string]Candidature),
		byURL: make(map[string]string),
	}
}

// Create enforces URL uniqueness the way the partial index does: blank URLs
// are exempt, so unlinked entries never conflict with each other.
func (r *MemoryRepo) Create(ctx context.Context, c Candidature) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.URL != "" {
		if _, exists := r.byURL[c.URL]; exists {
			return ErrDuplicateURL
		}
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.items[c.ID] = c
	if c.URL != "" {
		r.byURL[c.URL] = c.ID
	}
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Candidature, error) {
	if err := ctx.Err(); err != nil {
		return Candidature{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return Candidature{}, ErrNotFound
	}
	return c, nil
}

// List returns all candidatures newest-first.
func (r *MemoryRepo) List(ctx context.Context) ([]Candidature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Candidature, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, c Candidature) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[c.ID]
	if !ok {
		return ErrNotFound
	}
	if c.URL != existing.URL {
		if c.URL != "" {
			if _, taken := r.byURL[c.URL]; taken {
				return ErrDuplicateURL
			}
		}
		delete(r.byURL, existing.URL)
		if c.URL != "" {
			r.byURL[c.URL] = c.ID
		}
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.items[c.ID] = c
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	delete(r.byURL, c.URL)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
