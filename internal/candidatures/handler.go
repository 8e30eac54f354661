package candidatures

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/shared/server/respond"
)

// LetterRenderer exports a stored cover letter as a PDF document.
type LetterRenderer interface {
	Render(letter, company, title string) ([]byte, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
	PDF LetterRenderer
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, pdf LetterRenderer) *Handler {
	return &Handler{Svc: svc, PDF: pdf}
}

// RegisterRoutes attaches candidature routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/candidatures", h.list)
	rg.POST("/candidatures", h.create)
	rg.PATCH("/candidatures/:id", h.update)
	rg.DELETE("/candidatures/:id", h.remove)
	rg.POST("/candidatures/:id/follow-up", h.followUp)
	rg.GET("/candidatures/:id/letter.pdf", h.letterPDF)
	rg.POST("/generate-letter", h.generateLetter)
	rg.POST("/send-email", h.sendEmail)
}

func (h *Handler) list(c *gin.Context) {
	result, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch candidatures", nil)
		return
	}
	respond.OK(c, listResponse{
		Candidatures: result.Candidatures,
		Stats:        result.Stats,
		Total:        result.Total,
	})
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Company:      req.Company,
		Title:        req.Title,
		Platform:     req.Platform,
		Location:     req.Location,
		URL:          req.URL,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		Notes:        req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrDuplicateURL):
			respond.Error(c, http.StatusConflict, "conflict", "a candidature with this url already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create candidature", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), UpdateInput{
		Status:       req.Status,
		Notes:        req.Notes,
		ContactEmail: req.ContactEmail,
		CV:           req.CV,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidature not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update candidature", nil)
		}
		return
	}

	respond.OK(c, updated)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidature not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete candidature", nil)
		}
		return
	}
	respond.OK(c, gin.H{"message": "Deleted"})
}

func (h *Handler) followUp(c *gin.Context) {
	var req followUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	updated, err := h.Svc.ScheduleFollowUp(c.Request.Context(), c.Param("id"), req.Template)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidature not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to schedule follow-up", nil)
		}
		return
	}

	respond.OK(c, updated)
}

func (h *Handler) generateLetter(c *gin.Context) {
	var req generateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.CandidatureID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "candidature_id is required", nil)
		return
	}

	updated, err := h.Svc.GenerateLetter(c.Request.Context(), req.CandidatureID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidature not found", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to generate letter", err.Error())
		}
		return
	}

	letter := ""
	if updated.CoverLetter != nil {
		letter = *updated.CoverLetter
	}
	respond.OK(c, generateLetterResponse{
		Letter:        letter,
		CandidatureID: updated.ID,
		Status:        updated.Status,
	})
}

func (h *Handler) sendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.CandidatureID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "candidature_id is required", nil)
		return
	}

	updated, err := h.Svc.SendApplication(c.Request.Context(), req.CandidatureID, req.Recipient)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidature not found", nil)
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrLetterMissing):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to send email", err.Error())
		}
		return
	}

	respond.OK(c, sendEmailResponse{
		Message:       "Email sent successfully",
		CandidatureID: updated.ID,
		Status:        updated.Status,
	})
}

func (h *Handler) letterPDF(c *gin.Context) {
	cand, err := h.Svc.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidature not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch candidature", nil)
		}
		return
	}
	if cand.CoverLetter == nil || strings.TrimSpace(*cand.CoverLetter) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "cover letter not generated yet", nil)
		return
	}

	buf, err := h.PDF.Render(*cand.CoverLetter, cand.Company, cand.Title)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render letter", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="lettre-motivation.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf)
}
