package middleware

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"catalogo-backend/pkg/validator"
)

// UploadsProtection restricts the public uploads route to image files, so
// nothing else that ends up under the storage root can be fetched.
func UploadsProtection() gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(validator.AllowedImageExtensions))
	for _, ext := range validator.AllowedImageExtensions {
		allowed[ext] = struct{}{}
	}

	return func(c *gin.Context) {
		rawPath := strings.ToLower(strings.TrimSpace(c.Param("filepath")))
		ext := filepath.Ext(rawPath)
		if ext != "" {
			if _, ok := allowed[ext]; ok {
				c.Next()
				return
			}
		}

		c.AbortWithStatus(http.StatusNotFound)
	}
}

// MaxBodySize caps the request body before any handler reads it.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
