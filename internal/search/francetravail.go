package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"candidature-backend/internal/candidatures"
)

const (
	franceTravailDefaultBaseURL = "https://api.francetravail.io/partenaire/offresdemploi/v2"
	franceTravailDefaultAuthURL = "https://entreprise.francetravail.fr/connexion/oauth2/access_token?realm=/partenaire"
)

// FranceTravailProvider queries the France Travail (ex Pôle emploi) offers
// API. Access tokens are client-credential grants cached until shortly
// before expiry.
type FranceTravailProvider struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	AuthURL      string
	HTTPClient   *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewFranceTravailProvider(clientID, clientSecret string) *FranceTravailProvider {
	return &FranceTravailProvider{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      franceTravailDefaultBaseURL,
		AuthURL:      franceTravailDefaultAuthURL,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *FranceTravailProvider) Platform() candidatures.Platform {
	return candidatures.PlatformFranceTravail
}

type franceTravailResponse struct {
	Resultats []struct {
		Intitule   string `json:"intitule"`
		Entreprise struct {
			Nom string `json:"nom"`
		} `json:"entreprise"`
		LieuTravail struct {
			Libelle string `json:"libelle"`
		} `json:"lieuTravail"`
		Description  string `json:"description"`
		Contact      struct {
			Courriel string `json:"courriel"`
		} `json:"contact"`
		OrigineOffre struct {
			URLOrigine string `json:"urlOrigine"`
		} `json:"origineOffre"`
	} `json:"resultats"`
}

func (p *FranceTravailProvider) Search(ctx context.Context, keywords, location string, limit int) ([]JobResult, error) {
	if p.ClientID == "" || p.ClientSecret == "" {
		return nil, fmt.Errorf("francetravail: FRANCE_TRAVAIL_CLIENT_ID / FRANCE_TRAVAIL_CLIENT_SECRET are not configured")
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("motsCles", keywords)
	query.Set("lieux", location)
	query.Set("range", fmt.Sprintf("0-%d", limit-1))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/offres/search?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	// 204 and 206 are normal for empty / partial result windows.
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("francetravail: status %d", resp.StatusCode)
	}

	var body franceTravailResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("francetravail: decode: %w", err)
	}

	results := make([]JobResult, 0, len(body.Resultats))
	for _, offre := range body.Resultats {
		if len(results) >= limit {
			break
		}
		loc := offre.LieuTravail.Libelle
		if loc == "" {
			loc = location
		}
		results = append(results, JobResult{
			Company:     orUnknown(offre.Entreprise.Nom),
			Title:       offre.Intitule,
			Location:    loc,
			Description: offre.Description,
			URL:         offre.OrigineOffre.URLOrigine,
			Email:       offre.Contact.Courriel,
			Platform:    candidatures.PlatformFranceTravail,
		})
	}
	return results, nil
}

type franceTravailToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (p *FranceTravailProvider) accessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != "" && time.Now().Before(p.tokenExpiry) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.ClientSecret)
	form.Set("scope", "api_offresdemploiv2 o2dsoffre")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("francetravail: token status %d", resp.StatusCode)
	}

	var token franceTravailToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("francetravail: token decode: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("francetravail: empty access token")
	}

	p.token = token.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - 30*time.Second)
	return p.token, nil
}
