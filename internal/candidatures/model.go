package candidatures

import "time"

// Platform identifies the job board a candidature was discovered on.
type Platform string

const (
	PlatformJSearch       Platform = "JSearch"
	PlatformAdzuna        Platform = "Adzuna"
	PlatformFranceTravail Platform = "France Travail"
	PlatformOther         Platform = "Autre"
)

// ParsePlatform converts a raw string to a Platform, defaulting to Autre.
func ParsePlatform(s string) Platform {
	switch Platform(s) {
	case PlatformJSearch, PlatformAdzuna, PlatformFranceTravail:
		return Platform(s)
	default:
		return PlatformOther
	}
}

const maxDescriptionLen = 500

// Candidature is one tracked job opportunity and its derived artifacts.
// URL is the sole deduplication key: no two candidatures may share it.
type Candidature struct {
	ID           string    `json:"id"`
	Company      string    `json:"entreprise"`
	Title        string    `json:"poste"`
	Platform     Platform  `json:"plateforme"`
	Location     string    `json:"localisation"`
	URL          string    `json:"url"`
	Description  string    `json:"description"`
	ContactEmail string    `json:"email"`
	Status       Status    `json:"statut"`
	CoverLetter  *string   `json:"lettre"`
	CV           *string   `json:"cv"`
	Notes        string    `json:"notes"`
	Date         string    `json:"date"` // YYYY-MM-DD, day the offer was identified
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TruncateDescription enforces the stored description cap.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionLen {
		return s
	}
	return string(runes[:maxDescriptionLen])
}
