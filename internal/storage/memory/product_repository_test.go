package memory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
	"github.com/vladislavdragonenkov/ecom/internal/storage/memory"
)

func newProduct(id string, qty int) domain.Product {
	product, err := domain.NewProduct(id, "Widget", 9.99, qty, "gadgets", 0.5, "supplier-1")
	if err != nil {
		panic(err)
	}
	return product
}

func TestProductRepository_DeductStock(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Add(newProduct("product-1", 10)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	updated, err := repo.DeductStock("product-1", 4)
	if err != nil {
		t.Fatalf("deduct failed: %v", err)
	}
	if updated.QuantityAvailable != 6 {
		t.Fatalf("expected 6 left, got %d", updated.QuantityAvailable)
	}

	if _, err := repo.DeductStock("product-1", 7); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	// Неудачное списание не должно менять остаток.
	stored, err := repo.Get("product-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.QuantityAvailable != 6 {
		t.Fatalf("stock changed after failed deduct: %d", stored.QuantityAvailable)
	}

	if _, err := repo.DeductStock("missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_RestoreStock(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Add(newProduct("product-1", 2)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	updated, err := repo.RestoreStock("product-1", 3)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if updated.QuantityAvailable != 5 {
		t.Fatalf("expected 5, got %d", updated.QuantityAvailable)
	}
}
