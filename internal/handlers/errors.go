package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"catalogo-backend/internal/service"
)

// respondError maps service errors onto HTTP statuses so handlers stay
// uniform about what is a client mistake versus a server failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrUnsupportedImageFormat),
		errors.Is(err, service.ErrUploadTooLarge),
		errors.Is(err, service.ErrUploadMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrCategoryHasProducts):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUploadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
