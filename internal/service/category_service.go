package service

import (
	"errors"
	"fmt"
	"time"

	"catalogo-backend/internal/models"
	"catalogo-backend/internal/repository"
	"catalogo-backend/pkg/cache"
	"catalogo-backend/pkg/utils"
)

var (
	// ErrInvalidSlug means the name collapsed to an empty slug and cannot
	// identify the entity in a URL.
	ErrInvalidSlug = errors.New("name does not produce a valid slug")

	// ErrSlugTaken means another entity of the same type already owns the
	// derived slug; the caller must pick a different name.
	ErrSlugTaken = errors.New("an entry with this name already exists")

	ErrCategoryHasProducts = errors.New("category has associated products and cannot be deleted")
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        *cache.Cache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, cacheService *cache.Cache) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cacheService,
	}
}

func (s *CategoryService) Create(req models.CreateCategoryRequest) (*models.Category, error) {
	slug := utils.GenerateSlug(req.Name)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	exists, err := s.categoryRepo.ExistsBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check category existence: %w", err)
	}
	if exists {
		return nil, ErrSlugTaken
	}

	category := &models.Category{
		Name:  req.Name,
		Slug:  slug,
		Order: req.Order,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidateCategories()
	}

	return category, nil
}

func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	if s.cache != nil {
		var category models.Category
		cacheKey := fmt.Sprintf("category:slug:%s", slug)
		if err := s.cache.Get(cacheKey, &category); err == nil {
			return &category, nil
		}
	}

	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(fmt.Sprintf("category:slug:%s", slug), category, 2*time.Hour)
	}

	return category, nil
}

func (s *CategoryService) GetAll() ([]models.Category, error) {
	if s.cache != nil {
		var categories []models.Category
		if err := s.cache.Get("categories:all", &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("categories:all", categories, 2*time.Hour)
	}

	return categories, nil
}

func (s *CategoryService) GetWithProductCount() ([]repository.CategoryWithCount, error) {
	return s.categoryRepo.GetWithProductCount()
}

// Update renames a category. The slug is kept stable so published URLs
// survive renames; pass RegenerateSlug to re-derive it from the new name.
func (s *CategoryService) Update(id uint, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldSlug := category.Slug

	category.Name = req.Name
	category.Order = req.Order

	if req.RegenerateSlug {
		slug := utils.GenerateSlug(req.Name)
		if slug == "" {
			return nil, ErrInvalidSlug
		}
		if slug != category.Slug {
			exists, err := s.categoryRepo.ExistsBySlug(slug)
			if err != nil {
				return nil, fmt.Errorf("failed to check category existence: %w", err)
			}
			if exists {
				return nil, ErrSlugTaken
			}
			category.Slug = slug
		}
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateCategories()
		s.cache.Delete(fmt.Sprintf("category:slug:%s", oldSlug))
	}

	return category, nil
}

func (s *CategoryService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.InvalidateCategories()
		s.cache.Delete(fmt.Sprintf("category:slug:%s", category.Slug))
	}

	return nil
}
