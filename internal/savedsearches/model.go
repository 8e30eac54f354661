package savedsearches

import "time"

// SearchType distinguishes a direct URL bookmark from a Google lookup.
type SearchType string

const (
	TypeURL    SearchType = "url"
	TypeGoogle SearchType = "google"
)

// ParseType converts a raw string to a SearchType, defaulting to url.
func ParseType(s string) SearchType {
	if SearchType(s) == TypeGoogle {
		return TypeGoogle
	}
	return TypeURL
}

// SavedSearch is a bookmarked company lookup pending promotion into a
// candidature. URL is the upsert key: re-saving the same URL updates the
// existing record.
type SavedSearch struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	CompanyName string     `json:"companyName"`
	Type        SearchType `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
}
