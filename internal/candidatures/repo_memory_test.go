package candidatures

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepoBlankURLsNeverConflict(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		err := repo.Create(ctx, Candidature{ID: id, Company: "Acme", Title: "Dev", Status: StatusIdentified})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected both unlinked entries stored, got %d", len(items))
	}
}

func TestMemoryRepoDuplicateURLStillRejected(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, Candidature{ID: "a", URL: "https://jobs.example/1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, Candidature{ID: "b", URL: "https://jobs.example/1"})
	if !errors.Is(err, ErrDuplicateURL) {
		t.Fatalf("expected ErrDuplicateURL, got %v", err)
	}
}

func TestMemoryRepoUpdateToBlankURLFreesOldOne(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	c := Candidature{ID: "a", URL: "https://jobs.example/1"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}

	c.URL = ""
	if err := repo.Update(ctx, c); err != nil {
		t.Fatalf("update to blank url: %v", err)
	}

	// The old URL must be reusable once released.
	if err := repo.Create(ctx, Candidature{ID: "b", URL: "https://jobs.example/1"}); err != nil {
		t.Fatalf("recreate with freed url: %v", err)
	}
}
