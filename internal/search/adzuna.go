package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"candidature-backend/internal/candidatures"
)

const adzunaDefaultBaseURL = "https://api.adzuna.com/v1/api"

// AdzunaProvider queries the Adzuna France job API.
type AdzunaProvider struct {
	AppID      string
	AppKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewAdzunaProvider(appID, appKey string) *AdzunaProvider {
	return &AdzunaProvider{
		AppID:      appID,
		AppKey:     appKey,
		BaseURL:    adzunaDefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *AdzunaProvider) Platform() candidatures.Platform {
	return candidatures.PlatformAdzuna
}

type adzunaResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		Description string `json:"description"`
		RedirectURL string `json:"redirect_url"`
	} `json:"results"`
}

func (p *AdzunaProvider) Search(ctx context.Context, keywords, location string, limit int) ([]JobResult, error) {
	if p.AppID == "" || p.AppKey == "" {
		return nil, fmt.Errorf("adzuna: ADZUNA_APP_ID / ADZUNA_APP_KEY are not configured")
	}

	query := url.Values{}
	query.Set("app_id", p.AppID)
	query.Set("app_key", p.AppKey)
	query.Set("what", keywords)
	query.Set("where", location)
	query.Set("results_per_page", strconv.Itoa(limit))
	query.Set("content-type", "application/json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/jobs/fr/search/1?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("adzuna: status %d", resp.StatusCode)
	}

	var body adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("adzuna: decode: %w", err)
	}

	results := make([]JobResult, 0, len(body.Results))
	for _, job := range body.Results {
		if len(results) >= limit {
			break
		}
		loc := job.Location.DisplayName
		if loc == "" {
			loc = location
		}
		results = append(results, JobResult{
			Company:     orUnknown(job.Company.DisplayName),
			Title:       job.Title,
			Location:    loc,
			Description: job.Description,
			URL:         job.RedirectURL,
			Platform:    candidatures.PlatformAdzuna,
		})
	}
	return results, nil
}
