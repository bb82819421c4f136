package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo-backend/internal/repository"
	"catalogo-backend/internal/service"
)

// DashboardHandler aggregates the counters shown on the admin landing page.
type DashboardHandler struct {
	categoryRepo  repository.CategoryRepository
	productRepo   repository.ProductRepository
	uploadService *service.UploadService
}

func NewDashboardHandler(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, uploadService *service.UploadService) *DashboardHandler {
	return &DashboardHandler{
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		uploadService: uploadService,
	}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	var stats struct {
		TotalProducts    int64 `json:"total_products"`
		ActiveProducts   int64 `json:"active_products"`
		FeaturedProducts int64 `json:"featured_products"`
		TotalCategories  int64 `json:"total_categories"`
		StoredUploads    int   `json:"stored_uploads"`
	}

	var err error
	if stats.TotalProducts, err = h.productRepo.Count(); err != nil {
		respondError(c, err)
		return
	}
	if stats.ActiveProducts, err = h.productRepo.CountActive(); err != nil {
		respondError(c, err)
		return
	}
	if stats.FeaturedProducts, err = h.productRepo.CountFeatured(); err != nil {
		respondError(c, err)
		return
	}
	if stats.TotalCategories, err = h.categoryRepo.Count(); err != nil {
		respondError(c, err)
		return
	}

	if uploads, err := h.uploadService.ListUploads(); err == nil {
		stats.StoredUploads = len(uploads)
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
