package seed

import (
	"catalogo-backend/internal/models"
	"catalogo-backend/internal/service"
	"catalogo-backend/pkg/logger"
)

type productSeed struct {
	name         string
	category     string
	origin       string
	description  string
	presentation string
	featured     bool
}

var defaultCategories = []models.CreateCategoryRequest{
	{Name: "Especias y Condimentos", Order: 1},
	{Name: "Hierbas Medicinales", Order: 2},
	{Name: "Tés e Infusiones", Order: 3},
	{Name: "Productos Naturales", Order: 4},
	{Name: "Frutos Secos y Semillas", Order: 5},
}

var defaultProducts = []productSeed{
	{
		name:         "Cúrcuma en Polvo",
		category:     "Especias y Condimentos",
		origin:       "India",
		description:  "Cúrcuma molida de primera calidad, de color intenso y aroma fresco.",
		presentation: "Bolsas de 100g, 500g y 1kg",
		featured:     true,
	},
	{
		name:         "Canela en Rama 6cm",
		category:     "Especias y Condimentos",
		origin:       "Sri Lanka",
		description:  "Ramas de canela de Ceilán cortadas a 6cm, ideales para infusiones y repostería.",
		presentation: "Bolsas de 250g y 1kg",
		featured:     true,
	},
	{
		name:         "Anís Estrellado",
		category:     "Especias y Condimentos",
		origin:       "Vietnam",
		description:  "Anís estrellado entero, seleccionado a mano.",
		presentation: "Bolsas de 100g y 500g",
		featured:     true,
	},
	{
		name:         "Clavo de Olor",
		category:     "Especias y Condimentos",
		origin:       "Madagascar",
		description:  "Clavo de olor entero de aroma intenso.",
		presentation: "Bolsas de 100g y 500g",
	},
	{
		name:         "Comino en Grano",
		category:     "Especias y Condimentos",
		origin:       "Turquía",
		description:  "Comino en grano para moler al momento.",
		presentation: "Bolsas de 250g y 1kg",
	},
	{
		name:         "Manzanilla Flor",
		category:     "Hierbas Medicinales",
		origin:       "Paraguay",
		description:  "Flores de manzanilla secadas al aire, para infusión.",
		presentation: "Bolsas de 50g y 250g",
		featured:     true,
	},
}

var defaultSettings = map[string]string{
	service.SettingWhatsApp: "+595 983 002 684",
	service.SettingEmail:    "ventas@catalogo.com.py",
}

// EnsureDefaultCatalog populates an empty store with the starter categories
// and products. A store with any existing category is left untouched.
func EnsureDefaultCatalog(categoryService *service.CategoryService, productService *service.ProductService) {
	if categoryService == nil || productService == nil {
		return
	}

	existing, err := categoryService.GetAll()
	if err != nil {
		logger.Error(err, "Failed to inspect categories before seeding", nil)
		return
	}
	if len(existing) > 0 {
		return
	}

	byName := make(map[string]uint, len(defaultCategories))

	for _, req := range defaultCategories {
		category, err := categoryService.Create(req)
		if err != nil {
			logger.Error(err, "Failed to seed category", map[string]interface{}{"name": req.Name})
			continue
		}
		byName[category.Name] = category.ID
		logger.Info("Seeded category", map[string]interface{}{
			"id":   category.ID,
			"name": category.Name,
			"slug": category.Slug,
		})
	}

	for _, p := range defaultProducts {
		categoryID, ok := byName[p.category]
		if !ok {
			continue
		}

		product, err := productService.Create(models.CreateProductRequest{
			Name:         p.name,
			CategoryID:   categoryID,
			Origin:       p.origin,
			Description:  p.description,
			Presentation: p.presentation,
			Featured:     p.featured,
			Active:       true,
		}, nil)
		if err != nil {
			logger.Error(err, "Failed to seed product", map[string]interface{}{"name": p.name})
			continue
		}
		logger.Info("Seeded product", map[string]interface{}{
			"id":   product.ID,
			"name": product.Name,
			"slug": product.Slug,
		})
	}
}

// EnsureDefaultSettings writes the starter contact settings for keys that
// have never been set. Values the admin cleared stay cleared.
func EnsureDefaultSettings(settingsService *service.SettingsService) {
	if settingsService == nil {
		return
	}

	for key, value := range defaultSettings {
		exists, err := settingsService.Exists(key)
		if err != nil {
			logger.Error(err, "Failed to inspect setting before seeding", map[string]interface{}{"key": key})
			continue
		}
		if exists {
			continue
		}

		if err := settingsService.Set(key, value); err != nil {
			logger.Error(err, "Failed to seed setting", map[string]interface{}{"key": key})
		}
	}
}
