package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo-backend/internal/models"
	"catalogo-backend/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Contact returns the public contact projection consumed by the storefront.
func (h *SettingsHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"contact": h.settingsService.Contact()})
}

// AdminGet returns the raw setting values for the admin form.
func (h *SettingsHandler) AdminGet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"whatsapp":   h.settingsService.Get(service.SettingWhatsApp, ""),
		"email":      h.settingsService.Get(service.SettingEmail, ""),
		"hero_image": h.settingsService.Get(service.SettingHeroImage, ""),
	})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := bindRequest(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hero, _ := c.FormFile("hero_image")

	if err := h.settingsService.Update(req, hero); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": h.settingsService.Contact()})
}
