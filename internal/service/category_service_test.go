package service

import (
	"errors"
	"testing"

	"catalogo-backend/internal/models"
)

func newTestCategoryService() (*CategoryService, *stubCategoryRepo, *stubProductRepo) {
	categoryRepo := newStubCategoryRepo()
	productRepo := newStubProductRepo()
	return NewCategoryService(categoryRepo, productRepo, nil), categoryRepo, productRepo
}

func TestCategoryCreateDerivesSlug(t *testing.T) {
	svc, _, _ := newTestCategoryService()

	category, err := svc.Create(models.CreateCategoryRequest{Name: "Tés e Infusiones", Order: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if category.Slug != "tes-e-infusiones" {
		t.Fatalf("unexpected slug %q", category.Slug)
	}
	if category.Order != 3 {
		t.Fatalf("unexpected order %d", category.Order)
	}
}

func TestCategoryCreateRejectsEmptySlug(t *testing.T) {
	svc, _, _ := newTestCategoryService()

	if _, err := svc.Create(models.CreateCategoryRequest{Name: "???"}); !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestCategoryCreateRejectsSlugCollision(t *testing.T) {
	svc, _, _ := newTestCategoryService()

	if _, err := svc.Create(models.CreateCategoryRequest{Name: "Café & Té"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A different name deriving the same slug collides.
	if _, err := svc.Create(models.CreateCategoryRequest{Name: "café te"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCategoryUpdateKeepsSlugByDefault(t *testing.T) {
	svc, _, _ := newTestCategoryService()

	category, err := svc.Create(models.CreateCategoryRequest{Name: "Hierbas Medicinales"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(category.ID, models.UpdateCategoryRequest{Name: "Hierbas y Plantas"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "Hierbas y Plantas" {
		t.Fatalf("unexpected name %q", updated.Name)
	}
	if updated.Slug != "hierbas-medicinales" {
		t.Fatalf("expected slug to survive rename, got %q", updated.Slug)
	}
}

func TestCategoryUpdateRegeneratesSlugOnRequest(t *testing.T) {
	svc, _, _ := newTestCategoryService()

	category, err := svc.Create(models.CreateCategoryRequest{Name: "Hierbas Medicinales"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(category.ID, models.UpdateCategoryRequest{
		Name:           "Hierbas y Plantas",
		RegenerateSlug: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Slug != "hierbas-y-plantas" {
		t.Fatalf("expected regenerated slug, got %q", updated.Slug)
	}
}

func TestCategoryUpdateRegenerateRejectsCollision(t *testing.T) {
	svc, _, _ := newTestCategoryService()

	if _, err := svc.Create(models.CreateCategoryRequest{Name: "Especias"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Create(models.CreateCategoryRequest{Name: "Condimentos"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Update(second.ID, models.UpdateCategoryRequest{
		Name:           "Especias!",
		RegenerateSlug: true,
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCategoryDeleteRefusedWithProducts(t *testing.T) {
	svc, _, productRepo := newTestCategoryService()

	category, err := svc.Create(models.CreateCategoryRequest{Name: "Especias"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	productRepo.Create(&models.Product{Name: "Comino", Slug: "comino", CategoryID: category.ID})

	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryHasProducts) {
		t.Fatalf("expected ErrCategoryHasProducts, got %v", err)
	}
}

func TestCategoryDeleteEmptyCategory(t *testing.T) {
	svc, categoryRepo, _ := newTestCategoryService()

	category, err := svc.Create(models.CreateCategoryRequest{Name: "Especias"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count, _ := categoryRepo.Count(); count != 0 {
		t.Fatalf("expected empty repo, found %d categories", count)
	}
}
