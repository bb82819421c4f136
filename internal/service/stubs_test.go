package service

import (
	"sort"

	"gorm.io/gorm"

	"catalogo-backend/internal/models"
	"catalogo-backend/internal/repository"
)

// In-memory repositories used by the service tests.

type stubCategoryRepo struct {
	nextID     uint
	categories map[uint]*models.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{nextID: 1, categories: make(map[uint]*models.Category)}
}

func (r *stubCategoryRepo) Create(category *models.Category) error {
	for _, c := range r.categories {
		if c.Slug == category.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	category.ID = r.nextID
	r.nextID++
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) GetByID(id uint) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) GetBySlug(slug string) (*models.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) GetAll() ([]models.Category, error) {
	result := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result, nil
}

func (r *stubCategoryRepo) Update(category *models.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Delete(id uint) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) ExistsBySlug(slug string) (bool, error) {
	_, err := r.GetBySlug(slug)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *stubCategoryRepo) GetWithProductCount() ([]repository.CategoryWithCount, error) {
	all, _ := r.GetAll()
	result := make([]repository.CategoryWithCount, 0, len(all))
	for _, c := range all {
		result = append(result, repository.CategoryWithCount{Category: c})
	}
	return result, nil
}

func (r *stubCategoryRepo) Count() (int64, error) {
	return int64(len(r.categories)), nil
}

type stubProductRepo struct {
	nextID   uint
	products map[uint]*models.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{nextID: 1, products: make(map[uint]*models.Product)}
}

func (r *stubProductRepo) Create(product *models.Product) error {
	for _, p := range r.products {
		if p.Slug == product.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	product.ID = r.nextID
	r.nextID++
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *stubProductRepo) GetByID(id uint) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) GetBySlug(slug string) (*models.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) GetActiveBySlug(slug string) (*models.Product, error) {
	p, err := r.GetBySlug(slug)
	if err != nil || !p.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) GetAll() ([]models.Product, error) {
	result := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *stubProductRepo) ListActive() ([]models.Product, error) {
	all, _ := r.GetAll()
	var result []models.Product
	for _, p := range all {
		if p.Active {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) ListByCategory(categoryID uint) ([]models.Product, error) {
	active, _ := r.ListActive()
	var result []models.Product
	for _, p := range active {
		if p.CategoryID == categoryID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) ListFeatured(limit int) ([]models.Product, error) {
	active, _ := r.ListActive()
	var result []models.Product
	for _, p := range active {
		if p.Featured && len(result) < limit {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) ListRelated(categoryID, excludeID uint, limit int) ([]models.Product, error) {
	active, _ := r.ListActive()
	var result []models.Product
	for _, p := range active {
		if p.CategoryID == categoryID && p.ID != excludeID && len(result) < limit {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) Update(product *models.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(id uint) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ExistsBySlug(slug string) (bool, error) {
	_, err := r.GetBySlug(slug)
	return err == nil, nil
}

func (r *stubProductRepo) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *stubProductRepo) Count() (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) CountActive() (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.Active {
			count++
		}
	}
	return count, nil
}

func (r *stubProductRepo) CountFeatured() (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.Featured {
			count++
		}
	}
	return count, nil
}

type stubSettingRepo struct {
	settings map[string]string
}

func newStubSettingRepo() *stubSettingRepo {
	return &stubSettingRepo{settings: make(map[string]string)}
}

func (r *stubSettingRepo) Get(key string) (*models.Setting, error) {
	value, ok := r.settings[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Setting{Key: key, Value: value}, nil
}

func (r *stubSettingRepo) Set(key, value string) error {
	r.settings[key] = value
	return nil
}

func (r *stubSettingRepo) Delete(key string) error {
	delete(r.settings, key)
	return nil
}
