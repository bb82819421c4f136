package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`

	Order int `gorm:"default:0" json:"order"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"not null" json:"name"`
	Slug         string `gorm:"uniqueIndex;not null" json:"slug"`
	Origin       string `json:"origin"`
	Description  string `gorm:"type:text" json:"description"`
	Presentation string `json:"presentation"`

	// Image holds the public reference path of the stored asset; empty
	// means the product has no image.
	Image string `json:"image"`

	Featured bool `gorm:"default:false" json:"featured"`
	Active   bool `gorm:"default:false" json:"active"`

	CategoryID uint     `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category"`
}

// Setting is a site-wide key/value entry (whatsapp, email, hero_image).
type Setting struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name" form:"name" binding:"required,no_html"`
	Order int    `json:"order" form:"order"`
}

type UpdateCategoryRequest struct {
	Name  string `json:"name" form:"name" binding:"required,no_html"`
	Order int    `json:"order" form:"order"`

	// RegenerateSlug re-derives the slug from the new name. Off by default
	// so renames do not silently break published URLs.
	RegenerateSlug bool `json:"regenerate_slug" form:"regenerate_slug"`
}

type CreateProductRequest struct {
	Name         string `json:"name" form:"name" binding:"required,no_html"`
	CategoryID   uint   `json:"category_id" form:"category_id" binding:"required"`
	Origin       string `json:"origin" form:"origin"`
	Description  string `json:"description" form:"description"`
	Presentation string `json:"presentation" form:"presentation"`
	Featured     bool   `json:"featured" form:"featured"`
	Active       bool   `json:"active" form:"active"`
}

type UpdateProductRequest struct {
	Name         string `json:"name" form:"name" binding:"required,no_html"`
	CategoryID   uint   `json:"category_id" form:"category_id" binding:"required"`
	Origin       string `json:"origin" form:"origin"`
	Description  string `json:"description" form:"description"`
	Presentation string `json:"presentation" form:"presentation"`
	Featured     bool   `json:"featured" form:"featured"`
	Active       bool   `json:"active" form:"active"`

	RegenerateSlug bool `json:"regenerate_slug" form:"regenerate_slug"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateSettingsRequest struct {
	WhatsApp string `json:"whatsapp" form:"whatsapp"`
	Email    string `json:"email" form:"email"`
}

// ContactSettings is the public projection of the site settings, with the
// WhatsApp number normalized for wa.me links.
type ContactSettings struct {
	WhatsAppRaw     string `json:"whatsapp_raw"`
	WhatsAppDigits  string `json:"whatsapp_digits"`
	WhatsAppLink    string `json:"whatsapp_link"`
	WhatsAppDisplay string `json:"whatsapp_display"`
	Email           string `json:"email"`
	HeroImage       string `json:"hero_image"`
}
