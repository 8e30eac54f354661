package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"candidature-backend/internal/candidatures"
	"candidature-backend/internal/shared/metrics"
	"candidature-backend/internal/shared/telemetry"
)

// ErrInvalidInput indicates missing keywords or location.
var ErrInvalidInput = errors.New("invalid input")

const defaultPerSource = 10

// Summary reports the outcome of one aggregation run.
// TotalFound == NewCount + DuplicateCount + results skipped for a blank URL.
type Summary struct {
	TotalFound     int `json:"total_trouvees"`
	NewCount       int `json:"nouvelles"`
	DuplicateCount int `json:"doublons"`
}

// Service fans a query out to every configured provider, merges the results
// and persists only genuinely new candidatures.
type Service struct {
	Providers []Provider
	Repo      candidatures.Repo

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Aggregate queries all providers concurrently with the same triple, then
// deduplicates against storage by attempting each create and treating a
// unique-URL conflict as an already-satisfied outcome. One provider's outage
// never blocks the others.
func (s *Service) Aggregate(ctx context.Context, keywords, location string, perSource int) (Summary, error) {
	if strings.TrimSpace(keywords) == "" || strings.TrimSpace(location) == "" {
		return Summary{}, fmt.Errorf("%w: keywords and location are required", ErrInvalidInput)
	}
	if perSource <= 0 {
		perSource = defaultPerSource
	}

	started := time.Now()
	metrics.IncSearchRuns()

	// Fan out, join all. Results keep the fixed provider order regardless of
	// which adapter finishes first.
	perProvider := make([][]JobResult, len(s.Providers))
	var wg sync.WaitGroup
	for i, p := range s.Providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			results, err := p.Search(ctx, keywords, location, perSource)
			if err != nil {
				telemetry.Error("search.provider_failed", map[string]any{
					"platform": string(p.Platform()),
					"error":    err.Error(),
				})
				return
			}
			perProvider[i] = results
		}(i, p)
	}
	wg.Wait()

	var all []JobResult
	for _, results := range perProvider {
		all = append(all, results...)
	}

	summary := Summary{TotalFound: len(all)}
	date := s.now().Format("2006-01-02")

	for _, result := range all {
		url := strings.TrimSpace(result.URL)
		if url == "" {
			continue // neither new nor duplicate
		}

		err := s.Repo.Create(ctx, candidatures.Candidature{
			ID:           uuid.NewString(),
			Company:      result.Company,
			Title:        result.Title,
			Platform:     result.Platform,
			Location:     result.Location,
			URL:          url,
			Description:  candidatures.TruncateDescription(result.Description),
			ContactEmail: result.Email,
			Status:       candidatures.StatusIdentified,
			Notes:        "",
			Date:         date,
		})
		switch {
		case err == nil:
			summary.NewCount++
		case errors.Is(err, candidatures.ErrDuplicateURL):
			summary.DuplicateCount++
		default:
			// A failed insert loses one offer, not the whole run.
			telemetry.Error("search.create_failed", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
		}
	}

	metrics.AddJobsDiscovered(summary.NewCount)
	metrics.ObserveSearchDurationMs(float64(time.Since(started).Milliseconds()))

	telemetry.Info("search.aggregated", map[string]any{
		"keywords":   keywords,
		"location":   location,
		"total":      summary.TotalFound,
		"new":        summary.NewCount,
		"duplicates": summary.DuplicateCount,
	})
	return summary, nil
}
