package service

import (
	"fmt"
	"mime/multipart"
	"time"

	"catalogo-backend/internal/models"
	"catalogo-backend/internal/repository"
	"catalogo-backend/pkg/cache"
	"catalogo-backend/pkg/utils"
)

const (
	featuredLimit = 8
	relatedLimit  = 4
)

type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	uploads      *UploadService
	cache        *cache.Cache
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, uploads *UploadService, cacheService *cache.Cache) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		uploads:      uploads,
		cache:        cacheService,
	}
}

// Create derives the slug from the product name and optionally ingests an
// attached image. A nil image leaves the reference empty.
func (s *ProductService) Create(req models.CreateProductRequest, image *multipart.FileHeader) (*models.Product, error) {
	slug := utils.GenerateSlug(req.Name)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	exists, err := s.productRepo.ExistsBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check product existence: %w", err)
	}
	if exists {
		return nil, ErrSlugTaken
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}

	imageURL := ""
	if image != nil {
		imageURL, err = s.uploads.SaveImage(image)
		if err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		Name:         req.Name,
		Slug:         slug,
		CategoryID:   req.CategoryID,
		Origin:       req.Origin,
		Description:  req.Description,
		Presentation: req.Presentation,
		Image:        imageURL,
		Featured:     req.Featured,
		Active:       req.Active,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(product.Slug)

	return product, nil
}

// Update edits a product. The slug stays stable unless RegenerateSlug is
// set; the image reference is only replaced when a new file is supplied,
// and the previous stored asset is intentionally left on disk.
func (s *ProductService) Update(id uint, req models.UpdateProductRequest, image *multipart.FileHeader) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldSlug := product.Slug

	if req.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
			return nil, fmt.Errorf("category not found: %w", err)
		}
	}

	product.Name = req.Name
	product.CategoryID = req.CategoryID
	product.Origin = req.Origin
	product.Description = req.Description
	product.Presentation = req.Presentation
	product.Featured = req.Featured
	product.Active = req.Active

	if req.RegenerateSlug {
		slug := utils.GenerateSlug(req.Name)
		if slug == "" {
			return nil, ErrInvalidSlug
		}
		if slug != product.Slug {
			exists, err := s.productRepo.ExistsBySlug(slug)
			if err != nil {
				return nil, fmt.Errorf("failed to check product existence: %w", err)
			}
			if exists {
				return nil, ErrSlugTaken
			}
			product.Slug = slug
		}
	}

	if image != nil {
		imageURL, err := s.uploads.SaveImage(image)
		if err != nil {
			return nil, err
		}
		product.Image = imageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.invalidate(oldSlug)
	s.invalidate(product.Slug)

	return product, nil
}

func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.invalidate(product.Slug)
	return nil
}

func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *ProductService) GetActiveBySlug(slug string) (*models.Product, error) {
	if s.cache != nil {
		var product models.Product
		if err := s.cache.GetCachedProduct(slug, &product); err == nil {
			return &product, nil
		}
	}

	product, err := s.productRepo.GetActiveBySlug(slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheProduct(slug, product)
	}

	return product, nil
}

func (s *ProductService) GetAll() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

func (s *ProductService) ListActive() ([]models.Product, error) {
	if s.cache != nil {
		var products []models.Product
		if err := s.cache.Get("products:active", &products); err == nil {
			return products, nil
		}
	}

	products, err := s.productRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("products:active", products, 30*time.Minute)
	}

	return products, nil
}

func (s *ProductService) ListByCategorySlug(slug string) (*models.Category, []models.Product, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}

	products, err := s.productRepo.ListByCategory(category.ID)
	if err != nil {
		return nil, nil, err
	}

	return category, products, nil
}

func (s *ProductService) ListFeatured() ([]models.Product, error) {
	if s.cache != nil {
		var products []models.Product
		if err := s.cache.Get("products:featured", &products); err == nil {
			return products, nil
		}
	}

	products, err := s.productRepo.ListFeatured(featuredLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("products:featured", products, 30*time.Minute)
	}

	return products, nil
}

func (s *ProductService) ListRelated(product *models.Product) ([]models.Product, error) {
	return s.productRepo.ListRelated(product.CategoryID, product.ID, relatedLimit)
}

func (s *ProductService) invalidate(slug string) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateProduct(slug)
}
