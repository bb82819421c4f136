package repository

import (
	"catalogo-backend/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetActiveBySlug(slug string) (*models.Product, error)
	GetAll() ([]models.Product, error)
	ListActive() ([]models.Product, error)
	ListByCategory(categoryID uint) ([]models.Product, error)
	ListFeatured(limit int) ([]models.Product, error)
	ListRelated(categoryID, excludeID uint, limit int) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	ExistsBySlug(slug string) (bool, error)
	CountByCategory(categoryID uint) (int64, error)
	Count() (int64, error)
	CountActive() (int64, error)
	CountFeatured() (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").First(&product, id).Error
	return &product, err
}

func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Where("slug = ?", slug).First(&product).Error
	return &product, err
}

func (r *productRepository) GetActiveBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Where("slug = ? AND active = true", slug).First(&product).Error
	return &product, err
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepository) ListActive() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").Where("active = true").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) ListByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Where("active = true AND category_id = ?", categoryID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) ListFeatured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Where("active = true AND featured = true").
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) ListRelated(categoryID, excludeID uint, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("active = true AND category_id = ? AND id <> ?", categoryID, excludeID).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Product{}, id).Error
}

func (r *productRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *productRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("active = true").Count(&count).Error
	return count, err
}

func (r *productRepository) CountFeatured() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("featured = true").Count(&count).Error
	return count, err
}
