package scrape

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestScrapeHandlerRejectsInvalidURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewScraper()).RegisterRoutes(r.Group("/api/v1"))

	cases := []string{
		`{"url":""}`,
		`{"url":"ftp://acme.fr"}`,
		`{"url":"notaurl"}`,
		`{}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, resp.Code)
		}
	}
}
