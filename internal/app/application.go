package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalogo-backend/internal/config"
	"catalogo-backend/internal/handlers"
	"catalogo-backend/internal/middleware"
	"catalogo-backend/internal/models"
	"catalogo-backend/internal/repository"
	"catalogo-backend/internal/seed"
	"catalogo-backend/internal/service"
	"catalogo-backend/pkg/cache"
	"catalogo-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	rateLimiter *middleware.RateLimitManager
	router      *gin.Engine
	server      *http.Server
}

type repositoryContainer struct {
	Category repository.CategoryRepository
	Product  repository.ProductRepository
	Setting  repository.SettingRepository
}

type serviceContainer struct {
	Auth     *service.AuthService
	Category *service.CategoryService
	Product  *service.ProductService
	Settings *service.SettingsService
	Upload   *service.UploadService
}

type handlerContainer struct {
	Auth      *handlers.AuthHandler
	Category  *handlers.CategoryHandler
	Product   *handlers.ProductHandler
	Settings  *handlers.SettingsHandler
	Upload    *handlers.UploadHandler
	SEO       *handlers.SEOHandler
	Dashboard *handlers.DashboardHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	app.initCache()
	app.initRepositories()

	if err := app.initServices(); err != nil {
		return nil, err
	}

	seed.EnsureDefaultCatalog(app.services.Category, app.services.Product)
	seed.EnsureDefaultSettings(app.services.Settings)

	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	gormConfig := &gorm.Config{
		Logger: logger.NewGormLogger(),
	}

	var (
		db  *gorm.DB
		err error
	)

	if a.cfg.UseSQLite() {
		logger.Info("Connecting to database", map[string]interface{}{
			"driver": "sqlite",
			"path":   a.cfg.SQLitePath,
		})
		db, err = gorm.Open(sqlite.Open(a.cfg.SQLitePath), gormConfig)
	} else {
		logger.Info("Connecting to database", map[string]interface{}{"driver": "postgres"})
		db, err = gorm.Open(postgres.Open(a.cfg.DatabaseURL), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_active ON products(active)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(featured)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() {
	cacheService, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableRedis)
	if err != nil {
		logger.Error(err, "Redis unavailable, continuing without cache", nil)
		cacheService, _ = cache.NewCache("", false)
	}
	a.cache = cacheService
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Category: repository.NewCategoryRepository(a.db),
		Product:  repository.NewProductRepository(a.db),
		Setting:  repository.NewSettingRepository(a.db),
	}
}

func (a *Application) initServices() error {
	authService, err := service.NewAuthService(a.cfg.AdminUsername, a.cfg.AdminPassword, a.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}

	uploadService := service.NewUploadService(a.cfg.UploadDir, a.cfg.PublicUploadPrefix, a.cfg.MaxUploadSize)

	a.services = serviceContainer{
		Auth:     authService,
		Upload:   uploadService,
		Category: service.NewCategoryService(a.repositories.Category, a.repositories.Product, a.cache),
		Product:  service.NewProductService(a.repositories.Product, a.repositories.Category, uploadService, a.cache),
		Settings: service.NewSettingsService(a.repositories.Setting, uploadService, a.cache),
	}

	return nil
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Auth:      handlers.NewAuthHandler(a.services.Auth),
		Category:  handlers.NewCategoryHandler(a.services.Category),
		Product:   handlers.NewProductHandler(a.services.Product),
		Settings:  handlers.NewSettingsHandler(a.services.Settings),
		Upload:    handlers.NewUploadHandler(a.services.Upload),
		SEO:       handlers.NewSEOHandler(a.services.Product, a.services.Category, a.cfg),
		Dashboard: handlers.NewDashboardHandler(a.repositories.Category, a.repositories.Product, a.services.Upload),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimiter = middleware.NewRateLimitManager()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(middleware.RequestIDMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimiter))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.GET("/robots.txt", a.handlers.SEO.Robots)
	router.GET("/sitemap.xml", a.handlers.SEO.Sitemap)

	router.Static("/static", "./static")

	// Stored images are only ever served with allow-listed extensions, no
	// matter what ends up in the upload directory.
	uploads := router.Group("/uploads")
	uploads.Use(middleware.UploadsProtection())
	uploads.Static("", a.cfg.UploadDir)

	uploadLimit := middleware.MaxBodySize(a.cfg.MaxUploadSize + 1<<20)

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		{
			public.POST("/login", a.handlers.Auth.Login)
			public.POST("/logout", a.handlers.Auth.Logout)

			public.GET("/categories", a.handlers.Category.GetAll)
			public.GET("/categories/:slug", a.handlers.Category.GetBySlug)

			public.GET("/products", a.handlers.Product.GetAll)
			public.GET("/products/featured", a.handlers.Product.GetFeatured)
			public.GET("/products/:slug", a.handlers.Product.GetBySlug)

			public.GET("/settings/contact", a.handlers.Settings.Contact)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		admin.Use(middleware.AdminMiddleware())
		admin.Use(middleware.NoIndexMiddleware())
		{
			admin.GET("/dashboard", a.handlers.Dashboard.Stats)

			admin.GET("/categories", a.handlers.Category.GetWithProductCount)
			admin.POST("/categories", a.handlers.Category.Create)
			admin.PUT("/categories/:id", a.handlers.Category.Update)
			admin.DELETE("/categories/:id", a.handlers.Category.Delete)

			admin.GET("/products", a.handlers.Product.AdminGetAll)
			admin.POST("/products", uploadLimit, a.handlers.Product.Create)
			admin.PUT("/products/:id", uploadLimit, a.handlers.Product.Update)
			admin.DELETE("/products/:id", a.handlers.Product.Delete)

			admin.GET("/settings", a.handlers.Settings.AdminGet)
			admin.PUT("/settings", uploadLimit, a.handlers.Settings.Update)

			admin.POST("/uploads", uploadLimit, a.handlers.Upload.Upload)
			admin.GET("/uploads", a.handlers.Upload.List)
			admin.DELETE("/uploads", a.handlers.Upload.Delete)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	a.router = router
}
