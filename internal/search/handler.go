package search

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/shared/server/respond"
)

// Handler exposes the aggregation engine over HTTP.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the search route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.search)
}

type searchRequest struct {
	Keywords  string `json:"keywords"`
	Location  string `json:"location"`
	NbResults int    `json:"nb_results"`
}

type searchResponse struct {
	Message string `json:"message"`
	Summary
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	summary, err := h.Svc.Aggregate(c.Request.Context(), req.Keywords, req.Location, req.NbResults)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "search failed", err.Error())
		}
		return
	}

	respond.OK(c, searchResponse{
		Message: fmt.Sprintf("%d nouvelles offres sauvegardées", summary.NewCount),
		Summary: summary,
	})
}
