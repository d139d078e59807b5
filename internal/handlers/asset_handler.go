package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shaysadin/wedding-seating-api/internal/assets"
	"github.com/shaysadin/wedding-seating-api/internal/response"
	"github.com/shaysadin/wedding-seating-api/internal/validation"
)

// AssetHandler exposes event asset upload and download endpoints
type AssetHandler struct {
	store *assets.Store
}

func NewAssetHandler(store *assets.Store) *AssetHandler {
	return &AssetHandler{store: store}
}

// Upload handles POST /api/events/:event_id/assets
func (h *AssetHandler) Upload(c *gin.Context) {
	eventID := c.Param("event_id")
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequestError(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "failed to read upload")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := h.store.Upload(c.Request.Context(), eventID, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		response.InternalServerError(c, "failed to store asset")
		return
	}

	response.Created(c, "asset uploaded", gin.H{"key": key})
}

// Presign handles GET /api/events/:event_id/assets/presign?key=...
func (h *AssetHandler) Presign(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		response.BadRequestError(c, "key query parameter is required")
		return
	}

	u, err := h.store.PresignedURL(c.Request.Context(), key)
	if err != nil {
		response.InternalServerError(c, "failed to presign asset")
		return
	}

	response.OK(c, "", gin.H{"url": u.String()})
}
