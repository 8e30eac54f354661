package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func htmlHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	}
}

func TestScrapeCompanyHomepageOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/", htmlHandler(`<html><head>
		<meta property="og:site_name" content="Acme">
		<meta name="description" content="Editeur de logiciels de gestion.">
	</head><body>
		<p>Contact : rh@acme.fr ou 01 23 45 67 89</p>
		<p>`+strings.Repeat("Acme développe des outils pour les PME françaises. ", 4)+`</p>
	</body></html>`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := NewScraper()
	result := s.ScrapeCompany(context.Background(), srv.URL)

	if result.CompanyName != "Acme" {
		t.Fatalf("company name: %q", result.CompanyName)
	}
	if result.Description != "Editeur de logiciels de gestion." {
		t.Fatalf("description: %q", result.Description)
	}
	if len(result.Emails) != 1 || result.Emails[0] != "rh@acme.fr" {
		t.Fatalf("emails: %v", result.Emails)
	}
	if len(result.Phones) != 1 || result.Phones[0] != "0123456789" {
		t.Fatalf("phones: %v", result.Phones)
	}
	if result.AboutText == "" {
		t.Fatal("expected homepage fallback about text")
	}
}

func TestScrapeCompanyUsesAboutSubPage(t *testing.T) {
	aboutBody := strings.Repeat("Fondée en 2005, Acme accompagne les PME dans leur transformation numérique. ", 3)

	mux := http.NewServeMux()
	mux.Handle("/a-propos", htmlHandler(`<html><body>
		<main><p>`+aboutBody+`</p></main>
		<p>Ecrivez à direction@acme.fr</p>
	</body></html>`))
	mux.Handle("/", htmlHandler(`<html><head><title>Acme | Accueil</title></head><body>
		<a href="/a-propos">Qui sommes-nous</a>
		<p>Contact : rh@acme.fr</p>
	</body></html>`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := NewScraper()
	result := s.ScrapeCompany(context.Background(), srv.URL)

	if result.CompanyName != "Acme" {
		t.Fatalf("company name: %q", result.CompanyName)
	}
	if !strings.Contains(result.AboutText, "Fondée en 2005") {
		t.Fatalf("about text must come from the sub-page: %q", result.AboutText)
	}
	// Emails merge across pages.
	if len(result.Emails) != 2 {
		t.Fatalf("expected emails from both pages, got %v", result.Emails)
	}
}

func TestScrapeCompanyUnreachableHomepage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewScraper()
	result := s.ScrapeCompany(context.Background(), srv.URL)

	if result.CompanyName != "" || result.AboutText != "" {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.Emails == nil || result.Phones == nil {
		t.Fatal("slices must be non-nil for JSON encoding")
	}
}

func TestScrapeCompanyRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4")
	}))
	defer srv.Close()

	s := NewScraper()
	result := s.ScrapeCompany(context.Background(), srv.URL)
	if result.CompanyName != "" {
		t.Fatalf("expected empty result for non-HTML, got %+v", result)
	}
}

func TestScrapeCompanyBrokenSubPageDegrades(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/contact", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	mux.Handle("/", htmlHandler(`<html><head><title>Acme</title></head><body>
		<a href="/contact">Contact</a>
		<p>Contact : rh@acme.fr</p>
	</body></html>`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := NewScraper()
	result := s.ScrapeCompany(context.Background(), srv.URL)

	if result.CompanyName != "Acme" {
		t.Fatalf("homepage data must survive a broken sub-page: %+v", result)
	}
	if len(result.Emails) != 1 {
		t.Fatalf("emails: %v", result.Emails)
	}
}
