package websearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchNotConfigured(t *testing.T) {
	c := NewClient("", "")
	if _, err := c.Search(context.Background(), "acme", ""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSearchMapsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "key-1" || q.Get("cx") != "cx-1" {
			t.Errorf("missing credentials in query")
		}
		if q.Get("q") != "acme Paris" {
			t.Errorf("expected location appended, got %q", q.Get("q"))
		}
		fmt.Fprint(w, `{"items":[
			{"title":"Acme SAS","link":"https://acme.fr","snippet":"Editeur","displayLink":"acme.fr"}
		]}`)
	}))
	defer srv.Close()

	c := NewClient("key-1", "cx-1")
	c.BaseURL = srv.URL

	results, err := c.Search(context.Background(), "acme", "Paris")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Name != "Acme SAS" || results[0].DisplayURL != "acme.fr" {
		t.Fatalf("unexpected result: %+v", results[0])
	}
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("key-1", "cx-1")
	c.BaseURL = srv.URL

	if _, err := c.Search(context.Background(), "acme", ""); err == nil {
		t.Fatal("expected error on 429")
	}
}
