package search

import (
	"context"

	"candidature-backend/internal/candidatures"
)

// JobResult is the normalized shape every provider adapter maps its API
// response into. Per-provider field naming differences stop at the adapter
// boundary.
type JobResult struct {
	Company     string
	Title       string
	Location    string
	Description string
	URL         string
	Email       string
	Platform    candidatures.Platform
}

// Provider is one job-board adapter. Search returns at most limit normalized
// results; implementations report errors instead of panicking, and the
// aggregator degrades a failed provider to an empty list.
type Provider interface {
	Platform() candidatures.Platform
	Search(ctx context.Context, keywords, location string, limit int) ([]JobResult, error)
}
