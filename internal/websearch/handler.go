package websearch

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/shared/server/respond"
)

// Handler exposes company lookups over HTTP.
type Handler struct {
	Client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes attaches the company-search route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search-companies", h.search)
}

type searchRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "query is required", nil)
		return
	}

	results, err := h.Client.Search(c.Request.Context(), req.Query, req.Location)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "company search failed", err.Error())
		}
		return
	}

	respond.OK(c, gin.H{"results": results})
}
