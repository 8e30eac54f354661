// Package cv handles CV uploads. The stored file feeds the cover-letter
// prompt through text extraction.
package cv

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/extract"
	"candidature-backend/internal/shared/server/respond"
	"candidature-backend/internal/shared/storage/object"
	"candidature-backend/internal/shared/telemetry"
)

const maxUploadBytes = 10 << 20

// Handler stores uploaded CVs and returns the extracted text.
type Handler struct {
	Store object.ObjectStore
}

func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches the CV upload route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cv", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file field is required", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read upload", nil)
		return
	}
	defer f.Close()

	key, size, mimeType, err := h.Store.Save(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		telemetry.Error("cv.save_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store file", nil)
		return
	}

	text, err := extract.CVText(c.Request.Context(), h.Store, key, mimeType, fileHeader.Filename)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported mime type") {
			respond.Error(c, http.StatusBadRequest, "validation_error", "only PDF and DOCX files are supported", nil)
			return
		}
		telemetry.Error("cv.extract_failed", map[string]any{"key": key, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to extract text", nil)
		return
	}

	telemetry.Info("cv.uploaded", map[string]any{"key": key, "size": size, "mime": mimeType})
	respond.OK(c, gin.H{
		"key":  key,
		"size": size,
		"text": text,
	})
}
