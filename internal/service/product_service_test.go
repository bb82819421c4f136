package service

import (
	"errors"
	"strings"
	"testing"

	"catalogo-backend/internal/models"
)

func newTestProductService(t *testing.T) (*ProductService, *stubProductRepo, *stubCategoryRepo) {
	t.Helper()
	productRepo := newStubProductRepo()
	categoryRepo := newStubCategoryRepo()
	uploads := NewUploadService(t.TempDir(), "/static/uploads/", 10*1024*1024)
	return NewProductService(productRepo, categoryRepo, uploads, nil), productRepo, categoryRepo
}

func seedCategory(t *testing.T, repo *stubCategoryRepo, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	if err := repo.Create(category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func TestProductCreateDerivesSlug(t *testing.T) {
	svc, _, categoryRepo := newTestProductService(t)
	category := seedCategory(t, categoryRepo, "Especias", "especias")

	product, err := svc.Create(models.CreateProductRequest{
		Name:       "Cúrcuma en Polvo",
		CategoryID: category.ID,
		Active:     true,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if product.Slug != "curcuma-en-polvo" {
		t.Fatalf("unexpected slug %q", product.Slug)
	}
	if product.Image != "" {
		t.Fatalf("expected empty image reference, got %q", product.Image)
	}
}

func TestProductCreateWithImage(t *testing.T) {
	svc, _, categoryRepo := newTestProductService(t)
	category := seedCategory(t, categoryRepo, "Especias", "especias")

	image := createMultipartFile(t, "photo.JPG", []byte{0xFF, 0xD8, 0xFF})

	product, err := svc.Create(models.CreateProductRequest{
		Name:       "Canela en Rama 6cm",
		CategoryID: category.ID,
		Active:     true,
	}, image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if product.Slug != "canela-en-rama-6cm" {
		t.Fatalf("unexpected slug %q", product.Slug)
	}
	if !strings.HasPrefix(product.Image, "/static/uploads/") || !strings.HasSuffix(product.Image, ".jpg") {
		t.Fatalf("unexpected image reference %q", product.Image)
	}
}

func TestProductCreateRejectsBadImageWithoutPersisting(t *testing.T) {
	svc, productRepo, categoryRepo := newTestProductService(t)
	category := seedCategory(t, categoryRepo, "Especias", "especias")

	image := createMultipartFile(t, "malware.exe", []byte("MZ"))

	_, err := svc.Create(models.CreateProductRequest{
		Name:       "Comino",
		CategoryID: category.ID,
	}, image)
	if !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Fatalf("expected ErrUnsupportedImageFormat, got %v", err)
	}

	if count, _ := productRepo.Count(); count != 0 {
		t.Fatalf("expected nothing persisted, found %d products", count)
	}
}

func TestProductCreateRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestProductService(t)

	if _, err := svc.Create(models.CreateProductRequest{Name: "Comino", CategoryID: 42}, nil); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestProductCreateRejectsSlugCollision(t *testing.T) {
	svc, _, categoryRepo := newTestProductService(t)
	category := seedCategory(t, categoryRepo, "Especias", "especias")

	if _, err := svc.Create(models.CreateProductRequest{Name: "Clavo de Olor", CategoryID: category.ID}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(models.CreateProductRequest{Name: "Clavo de Olor!", CategoryID: category.ID}, nil); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestProductUpdateRetainsImageWhenNoneSupplied(t *testing.T) {
	svc, _, categoryRepo := newTestProductService(t)
	category := seedCategory(t, categoryRepo, "Especias", "especias")

	image := createMultipartFile(t, "photo.png", []byte{0x89, 0x50, 0x4E, 0x47})
	product, err := svc.Create(models.CreateProductRequest{
		Name:       "Manzanilla Flor",
		CategoryID: category.ID,
		Active:     true,
	}, image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	previousImage := product.Image

	updated, err := svc.Update(product.ID, models.UpdateProductRequest{
		Name:       "Manzanilla Flor",
		CategoryID: category.ID,
		Origin:     "Brasil",
		Active:     true,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Image != previousImage {
		t.Fatalf("expected image %q to be retained, got %q", previousImage, updated.Image)
	}
	if updated.Origin != "Brasil" {
		t.Fatalf("unexpected origin %q", updated.Origin)
	}
}

func TestProductUpdateReplacesImageWhenSupplied(t *testing.T) {
	svc, _, categoryRepo := newTestProductService(t)
	category := seedCategory(t, categoryRepo, "Especias", "especias")

	first := createMultipartFile(t, "old.png", []byte("old"))
	product, err := svc.Create(models.CreateProductRequest{
		Name:       "Anis Estrellado",
		CategoryID: category.ID,
		Active:     true,
	}, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := createMultipartFile(t, "new.webp", []byte("new"))
	updated, err := svc.Update(product.ID, models.UpdateProductRequest{
		Name:       "Anis Estrellado",
		CategoryID: category.ID,
		Active:     true,
	}, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Image == product.Image {
		t.Fatal("expected image reference to change")
	}
	if !strings.HasSuffix(updated.Image, ".webp") {
		t.Fatalf("unexpected image reference %q", updated.Image)
	}
}

func TestProductUpdateKeepsSlugByDefault(t *testing.T) {
	svc, _, categoryRepo := newTestProductService(t)
	category := seedCategory(t, categoryRepo, "Especias", "especias")

	product, err := svc.Create(models.CreateProductRequest{
		Name:       "Comino en Grano",
		CategoryID: category.ID,
		Active:     true,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(product.ID, models.UpdateProductRequest{
		Name:       "Comino Molido",
		CategoryID: category.ID,
		Active:     true,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Slug != "comino-en-grano" {
		t.Fatalf("expected slug to survive rename, got %q", updated.Slug)
	}

	regenerated, err := svc.Update(product.ID, models.UpdateProductRequest{
		Name:           "Comino Molido",
		CategoryID:     category.ID,
		Active:         true,
		RegenerateSlug: true,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if regenerated.Slug != "comino-molido" {
		t.Fatalf("expected regenerated slug, got %q", regenerated.Slug)
	}
}

func TestProductListingAndRelated(t *testing.T) {
	svc, _, categoryRepo := newTestProductService(t)
	spices := seedCategory(t, categoryRepo, "Especias", "especias")
	herbs := seedCategory(t, categoryRepo, "Hierbas", "hierbas")

	names := []struct {
		name     string
		category uint
		featured bool
		active   bool
	}{
		{"Comino", spices.ID, true, true},
		{"Clavo", spices.ID, false, true},
		{"Canela", spices.ID, false, true},
		{"Manzanilla", herbs.ID, true, true},
		{"Oculto", spices.ID, true, false},
	}
	for _, n := range names {
		if _, err := svc.Create(models.CreateProductRequest{
			Name:       n.name,
			CategoryID: n.category,
			Featured:   n.featured,
			Active:     n.active,
		}, nil); err != nil {
			t.Fatalf("failed to create %s: %v", n.name, err)
		}
	}

	featured, err := svc.ListFeatured()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(featured) != 2 {
		t.Fatalf("expected 2 featured active products, got %d", len(featured))
	}

	category, inCategory, err := svc.ListByCategorySlug("especias")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.ID != spices.ID {
		t.Fatalf("unexpected category %d", category.ID)
	}
	if len(inCategory) != 3 {
		t.Fatalf("expected 3 active products in category, got %d", len(inCategory))
	}

	comino, err := svc.GetActiveBySlug("comino")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	related, err := svc.ListRelated(comino)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range related {
		if p.ID == comino.ID {
			t.Fatal("related products must exclude the product itself")
		}
		if p.CategoryID != comino.CategoryID {
			t.Fatal("related products must share the category")
		}
	}
	if len(related) != 2 {
		t.Fatalf("expected 2 related products, got %d", len(related))
	}

	if _, err := svc.GetActiveBySlug("oculto"); err == nil {
		t.Fatal("expected inactive product to be hidden")
	}
}
