package savedsearches

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the repo.
type Handler struct {
	Repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches saved-search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/saved-searches", h.list)
	rg.POST("/saved-searches", h.save)
	rg.DELETE("/saved-searches", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	searches, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch saved searches", nil)
		return
	}
	if searches == nil {
		searches = []SavedSearch{}
	}
	respond.OK(c, gin.H{"searches": searches})
}

type saveRequest struct {
	URL         string `json:"url"`
	CompanyName string `json:"companyName"`
	Type        string `json:"type"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if req.URL == "" || req.CompanyName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url and companyName are required", nil)
		return
	}

	saved, err := h.Repo.Upsert(c.Request.Context(), SavedSearch{
		URL:         req.URL,
		CompanyName: req.CompanyName,
		Type:        ParseType(req.Type),
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save search", nil)
		return
	}

	respond.OK(c, gin.H{"search": saved})
}

func (h *Handler) remove(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id query param is required", nil)
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "saved search not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete search", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "Deleted"})
}
