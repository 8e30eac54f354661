// Package scrape extracts contact details and an about text from a company
// website. Every fetch failure degrades to "no data from that page": the
// pipeline only comes back all-empty when the homepage itself is unreachable.
package scrape

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"candidature-backend/internal/shared/metrics"
	"candidature-backend/internal/shared/telemetry"
)

const (
	fetchTimeout    = 10 * time.Second
	maxAboutPages   = 3
	maxResponseSize = 4 << 20 // 4MB per page is plenty for contact extraction
	userAgent       = "Mozilla/5.0 (compatible; CandidatureBot/1.0)"
)

// Result is the outcome of one company scrape.
type Result struct {
	CompanyName string   `json:"companyName"`
	Description string   `json:"description"`
	AboutText   string   `json:"aboutText"`
	Emails      []string `json:"emails"`
	Phones      []string `json:"phones"`
}

// Scraper fetches and parses company pages.
type Scraper struct {
	HTTPClient *http.Client
}

// NewScraper constructs a Scraper with the pipeline's fetch timeout.
func NewScraper() *Scraper {
	return &Scraper{
		HTTPClient: &http.Client{Timeout: fetchTimeout},
	}
}

// ScrapeCompany runs the full pipeline: homepage, about/contact sub-page
// discovery, concurrent sub-page fetches, extraction and final dedup.
func (s *Scraper) ScrapeCompany(ctx context.Context, pageURL string) Result {
	result := Result{Emails: []string{}, Phones: []string{}}
	metrics.IncScrapes()

	homeHTML, ok := s.fetchPage(ctx, pageURL)
	if !ok {
		return result
	}

	homeDoc, err := goquery.NewDocumentFromReader(strings.NewReader(homeHTML))
	if err != nil {
		return result
	}

	result.CompanyName = extractCompanyName(homeDoc)
	result.Description = extractDescription(homeDoc)
	result.Emails = extractEmails(homeHTML)
	result.Phones = extractPhones(homeDoc.Text())

	aboutLinks := findAboutLinks(homeDoc, pageURL)
	if len(aboutLinks) > maxAboutPages {
		aboutLinks = aboutLinks[:maxAboutPages]
	}

	// Sub-pages fetch concurrently; pages slice keeps discovery order so the
	// "first page with enough text" rule stays deterministic.
	pages := make([]string, len(aboutLinks))
	var wg sync.WaitGroup
	for i, link := range aboutLinks {
		wg.Add(1)
		go func(i int, link string) {
			defer wg.Done()
			if html, ok := s.fetchPage(ctx, link); ok {
				pages[i] = html
			}
		}(i, link)
	}
	wg.Wait()

	for _, pageHTML := range pages {
		if pageHTML == "" {
			continue
		}
		pageDoc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
		if err != nil {
			continue
		}

		result.Emails = append(result.Emails, extractEmails(pageHTML)...)
		result.Phones = append(result.Phones, extractPhones(pageDoc.Text())...)

		if result.AboutText == "" {
			if text := extractAboutText(pageDoc); len([]rune(text)) > minAboutLen {
				result.AboutText = text
			}
		}
	}

	if result.AboutText == "" {
		result.AboutText = extractAboutText(homeDoc)
	}

	result.Emails = dedupeStrings(result.Emails)
	result.Phones = dedupeStrings(result.Phones)
	return result
}

// fetchPage retrieves one HTML page; any failure (network, timeout, non-2xx,
// wrong content type) reports ok=false instead of an error.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (string, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		telemetry.Info("scrape.fetch_failed", map[string]any{"url": pageURL, "error": err.Error()})
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", false
	}
	return string(body), true
}
