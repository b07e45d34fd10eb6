package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iconstore-backend/dtos"
	"iconstore-backend/storage"
)

const presignTTL = 300 * time.Second

var allowedUploadTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

type UploadHandler struct {
	Storage storage.Client
}

// PresignUpload issues a short-lived signed PUT URL for a new image. The
// object key is generated server-side so clients can never choose their own
// paths in the bucket.
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	var dto dtos.PresignRequest
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindingError(c, err)
		return
	}

	if !allowedUploadTypes[dto.ContentType] {
		respondError(c, http.StatusUnsupportedMediaType, CodeUnsupportedMediaType,
			"Content type must be image/png, image/jpeg or image/webp")
		return
	}

	key := storage.BuildObjectKey(dto.Section, dto.Filename)
	uploadURL, err := h.Storage.PresignUpload(c.Request.Context(), key, dto.ContentType, presignTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to create upload URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"publicUrl": h.Storage.PublicBase() + "/" + key,
		"key":       key,
		"expiresIn": int(presignTTL.Seconds()),
	})
}
