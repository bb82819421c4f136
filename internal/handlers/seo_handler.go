package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"catalogo-backend/internal/config"
	"catalogo-backend/internal/service"
	"catalogo-backend/pkg/logger"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SEOHandler provides responses for SEO-focused endpoints like sitemap.xml and
// robots.txt.
type SEOHandler struct {
	productService  *service.ProductService
	categoryService *service.CategoryService
	config          *config.Config
}

func NewSEOHandler(productService *service.ProductService, categoryService *service.CategoryService, cfg *config.Config) *SEOHandler {
	return &SEOHandler{
		productService:  productService,
		categoryService: categoryService,
		config:          cfg,
	}
}

// Sitemap renders an XML sitemap covering the storefront pages along with
// every category and active product.
func (h *SEOHandler) Sitemap(c *gin.Context) {
	baseURL := h.normalizedBaseURL()
	if baseURL == "" {
		c.String(http.StatusInternalServerError, "Unable to determine site URL")
		return
	}

	categories, err := h.categoryService.GetAll()
	if err != nil {
		logger.Error(err, "Failed to load categories for sitemap", nil)
		c.String(http.StatusInternalServerError, "Failed to build sitemap")
		return
	}

	products, err := h.productService.ListActive()
	if err != nil {
		logger.Error(err, "Failed to load products for sitemap", nil)
		c.String(http.StatusInternalServerError, "Failed to build sitemap")
		return
	}

	urls := []sitemapURL{
		{Loc: baseURL + "/", ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: h.joinURL(baseURL, "/productos"), ChangeFreq: "weekly", Priority: "0.8"},
	}

	for _, category := range categories {
		if category.Slug == "" {
			continue
		}

		urls = append(urls, sitemapURL{
			Loc:        h.joinURL(baseURL, fmt.Sprintf("/productos/%s", category.Slug)),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	for _, product := range products {
		if product.Slug == "" {
			continue
		}

		lastMod := product.UpdatedAt
		if lastMod.IsZero() {
			lastMod = product.CreatedAt
		}

		urls = append(urls, sitemapURL{
			Loc:        h.joinURL(baseURL, fmt.Sprintf("/producto/%s", product.Slug)),
			LastMod:    h.formatLastMod(lastMod),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	response := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.XML(http.StatusOK, response)
}

// Robots renders a robots.txt that keeps crawlers out of the admin surface
// and references the generated sitemap.
func (h *SEOHandler) Robots(c *gin.Context) {
	baseURL := h.normalizedBaseURL()

	lines := []string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /admin",
		"Disallow: /api/",
	}

	if baseURL != "" {
		lines = append(lines, fmt.Sprintf("Sitemap: %s", h.joinURL(baseURL, "/sitemap.xml")))
	}

	body := strings.Join(lines, "\n") + "\n"

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *SEOHandler) normalizedBaseURL() string {
	trimmed := strings.TrimSpace(h.config.SiteURL)
	return strings.TrimSuffix(trimmed, "/")
}

func (h *SEOHandler) joinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (h *SEOHandler) formatLastMod(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
