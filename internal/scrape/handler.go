package scrape

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/shared/server/respond"
)

// Handler exposes the scraper pipeline over HTTP.
type Handler struct {
	Scraper *Scraper
}

func NewHandler(scraper *Scraper) *Handler {
	return &Handler{Scraper: scraper}
}

// RegisterRoutes attaches the scrape route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scrape", h.scrape)
}

type scrapeRequest struct {
	URL string `json:"url"`
}

func (h *Handler) scrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.URL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid url", nil)
		return
	}

	respond.OK(c, h.Scraper.ScrapeCompany(c.Request.Context(), req.URL))
}
