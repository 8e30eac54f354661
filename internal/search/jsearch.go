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

const jsearchDefaultBaseURL = "https://jsearch.p.rapidapi.com"

// JSearchProvider queries the JSearch RapidAPI job board.
type JSearchProvider struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewJSearchProvider constructs the adapter with a sane request timeout.
func NewJSearchProvider(apiKey string) *JSearchProvider {
	return &JSearchProvider{
		APIKey:     apiKey,
		BaseURL:    jsearchDefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *JSearchProvider) Platform() candidatures.Platform {
	return candidatures.PlatformJSearch
}

type jsearchResponse struct {
	Data []struct {
		EmployerName   string `json:"employer_name"`
		JobTitle       string `json:"job_title"`
		JobCity        string `json:"job_city"`
		JobCountry     string `json:"job_country"`
		JobDescription string `json:"job_description"`
		JobApplyLink   string `json:"job_apply_link"`
	} `json:"data"`
}

// Search maps one JSearch query to normalized results.
func (p *JSearchProvider) Search(ctx context.Context, keywords, location string, limit int) ([]JobResult, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("jsearch: RAPIDAPI_KEY is not configured")
	}

	query := url.Values{}
	query.Set("query", keywords+" in "+location)
	query.Set("num_pages", "1")
	query.Set("page_size", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", p.APIKey)
	req.Header.Set("x-rapidapi-host", "jsearch.p.rapidapi.com")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("jsearch: status %d", resp.StatusCode)
	}

	var body jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("jsearch: decode: %w", err)
	}

	results := make([]JobResult, 0, len(body.Data))
	for _, job := range body.Data {
		if len(results) >= limit {
			break
		}
		loc := job.JobCity
		if loc == "" {
			loc = location
		}
		results = append(results, JobResult{
			Company:     orUnknown(job.EmployerName),
			Title:       job.JobTitle,
			Location:    loc,
			Description: job.JobDescription,
			URL:         job.JobApplyLink,
			Platform:    candidatures.PlatformJSearch,
		})
	}
	return results, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
