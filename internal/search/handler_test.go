package search

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/candidatures"
)

func TestSearchHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &Service{
		Repo: candidatures.NewMemoryRepo(),
		Providers: []Provider{
			stubProvider{
				platform: candidatures.PlatformJSearch,
				results:  jobs(candidatures.PlatformJSearch, "https://jobs.example/a", "https://jobs.example/b"),
			},
		},
	}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(`{"keywords":"go","location":"Paris"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Message    string `json:"message"`
		TotalFound int    `json:"total_trouvees"`
		NewCount   int    `json:"nouvelles"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.TotalFound != 2 || payload.NewCount != 2 {
		t.Fatalf("unexpected payload: %s", resp.Body.String())
	}
	if payload.Message != "2 nouvelles offres sauvegardées" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}

func TestSearchHandlerMissingKeywords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &Service{Repo: candidatures.NewMemoryRepo()}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(`{"location":"Paris"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
