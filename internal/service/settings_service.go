package service

import (
	"errors"
	"mime/multipart"

	"gorm.io/gorm"

	"catalogo-backend/internal/models"
	"catalogo-backend/internal/repository"
	"catalogo-backend/pkg/cache"
	"catalogo-backend/pkg/validator"
)

const (
	SettingWhatsApp  = "whatsapp"
	SettingEmail     = "email"
	SettingHeroImage = "hero_image"

	whatsAppPlaceholder = "+595 XXX XXX XXX"
)

var ErrInvalidEmail = errors.New("invalid email address")

// SettingsService manages the handful of site-wide settings edited from the
// admin panel.
type SettingsService struct {
	settingRepo repository.SettingRepository
	uploads     *UploadService
	cache       *cache.Cache
}

func NewSettingsService(settingRepo repository.SettingRepository, uploads *UploadService, cacheService *cache.Cache) *SettingsService {
	return &SettingsService{
		settingRepo: settingRepo,
		uploads:     uploads,
		cache:       cacheService,
	}
}

func (s *SettingsService) Get(key, fallback string) string {
	setting, err := s.settingRepo.Get(key)
	if err != nil {
		return fallback
	}
	return setting.Value
}

func (s *SettingsService) Set(key, value string) error {
	if err := s.settingRepo.Set(key, value); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateSettings()
	}
	return nil
}

// Exists reports whether a setting has ever been written, distinguishing
// "unset" from "set to empty" for the seeder.
func (s *SettingsService) Exists(key string) (bool, error) {
	_, err := s.settingRepo.Get(key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// Contact assembles the public projection of the site settings, deriving
// the wa.me link from the stored WhatsApp number.
func (s *SettingsService) Contact() models.ContactSettings {
	if s.cache != nil {
		var contact models.ContactSettings
		if err := s.cache.Get("settings:contact", &contact); err == nil {
			return contact
		}
	}

	raw := s.Get(SettingWhatsApp, "")
	digits := validator.DigitsOnly(raw)

	link := "#"
	if digits != "" {
		link = "https://wa.me/" + digits
	}

	display := raw
	if display == "" {
		display = whatsAppPlaceholder
	}

	contact := models.ContactSettings{
		WhatsAppRaw:     raw,
		WhatsAppDigits:  digits,
		WhatsAppLink:    link,
		WhatsAppDisplay: display,
		Email:           s.Get(SettingEmail, ""),
		HeroImage:       s.Get(SettingHeroImage, ""),
	}

	if s.cache != nil {
		s.cache.Set("settings:contact", contact, 0)
	}

	return contact
}

// Update persists the admin settings form. The hero image is only replaced
// when a new file is uploaded.
func (s *SettingsService) Update(req models.UpdateSettingsRequest, heroImage *multipart.FileHeader) error {
	if req.Email != "" && !validator.ValidateEmail(req.Email) {
		return ErrInvalidEmail
	}

	if err := s.Set(SettingWhatsApp, req.WhatsApp); err != nil {
		return err
	}
	if err := s.Set(SettingEmail, req.Email); err != nil {
		return err
	}

	if heroImage != nil {
		url, err := s.uploads.SaveImage(heroImage)
		if err != nil {
			return err
		}
		if err := s.Set(SettingHeroImage, url); err != nil {
			return err
		}
	}

	return nil
}
