package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo-backend/internal/service"
)

// UploadHandler exposes the stored image library to the admin panel. Images
// referenced by products are managed through the product endpoints; this is
// the manual upload and cleanup surface.
type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, service.ErrUploadMissing)
		return
	}

	url, err := h.uploadService.SaveImage(file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *UploadHandler) List(c *gin.Context) {
	uploads, err := h.uploadService.ListUploads()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	if err := h.uploadService.DeleteUpload(url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "upload deleted successfully"})
}
