package inventory_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
	"github.com/vladislavdragonenkov/ecom/internal/service/inventory"
	"github.com/vladislavdragonenkov/ecom/internal/storage/memory"
)

func newFixture(t *testing.T) (*inventory.Service, domain.ProductRepository) {
	t.Helper()

	products := memory.NewProductRepository()
	suppliers := memory.NewSupplierRepository()

	supplier, err := domain.NewSupplier("supplier-1", "Acme Parts", "orders@acme.example", 0.9)
	if err != nil {
		t.Fatalf("supplier: %v", err)
	}
	if err := suppliers.Add(supplier); err != nil {
		t.Fatalf("add supplier: %v", err)
	}

	product, err := domain.NewProduct("product-1", "Widget", 9.99, 10, "gadgets", 0.5, "supplier-1")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if err := products.Add(product); err != nil {
		t.Fatalf("add product: %v", err)
	}

	return inventory.NewService(products, suppliers, nil), products
}

func TestService_CheckAvailability(t *testing.T) {
	svc, _ := newFixture(t)

	if !svc.CheckAvailability("product-1", 10) {
		t.Fatal("expected available at exact stock")
	}
	if svc.CheckAvailability("product-1", 11) {
		t.Fatal("expected unavailable above stock")
	}
	if svc.CheckAvailability("product-1", 0) {
		t.Fatal("expected unavailable for non-positive qty")
	}
	if svc.CheckAvailability("missing", 1) {
		t.Fatal("expected unavailable for unknown product")
	}
}

func TestService_DeductForSale(t *testing.T) {
	svc, products := newFixture(t)

	updated, err := svc.DeductForSale("product-1", 4)
	if err != nil {
		t.Fatalf("deduct: %v", err)
	}
	if updated.QuantityAvailable != 6 {
		t.Fatalf("expected 6 left, got %d", updated.QuantityAvailable)
	}

	logs := svc.Logs("product-1")
	if len(logs) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logs))
	}
	if logs[0].Reason != domain.InventoryReasonSale || logs[0].QuantityChange != -4 {
		t.Fatalf("unexpected log entry: %+v", logs[0])
	}

	// Неудачное списание не пишет запись в журнал.
	if _, err := svc.DeductForSale("product-1", 100); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(svc.Logs("product-1")) != 1 {
		t.Fatal("failed deduct produced a log entry")
	}

	stored, err := products.Get("product-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.QuantityAvailable != 6 {
		t.Fatalf("stock changed after failed deduct: %d", stored.QuantityAvailable)
	}
}

func TestService_RestoreForCancellation(t *testing.T) {
	svc, _ := newFixture(t)

	if _, err := svc.DeductForSale("product-1", 5); err != nil {
		t.Fatalf("deduct: %v", err)
	}
	updated, err := svc.RestoreForCancellation("product-1", 5, 17)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if updated.QuantityAvailable != 10 {
		t.Fatalf("expected 10 after restore, got %d", updated.QuantityAvailable)
	}

	logs := svc.Logs("product-1")
	if len(logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs))
	}
	if logs[1].Reason != "order_cancelled_17" || logs[1].QuantityChange != 5 {
		t.Fatalf("unexpected cancellation log: %+v", logs[1])
	}
}

func TestService_Restock(t *testing.T) {
	svc, _ := newFixture(t)

	updated, err := svc.Restock("product-1", "supplier-1", 7)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if updated.QuantityAvailable != 17 {
		t.Fatalf("expected 17 after restock, got %d", updated.QuantityAvailable)
	}

	logs := svc.Logs("product-1")
	if len(logs) != 1 || logs[0].Reason != domain.InventoryReasonRestock {
		t.Fatalf("unexpected restock log: %+v", logs)
	}
}

func TestService_RestockSupplierMismatch(t *testing.T) {
	svc, _ := newFixture(t)

	if _, err := svc.Restock("product-1", "supplier-2", 7); !errors.Is(err, domain.ErrSupplierNotFound) {
		t.Fatalf("expected ErrSupplierNotFound, got %v", err)
	}
}

func TestService_RestockWrongSupplier(t *testing.T) {
	products := memory.NewProductRepository()
	suppliers := memory.NewSupplierRepository()

	for _, id := range []string{"supplier-1", "supplier-2"} {
		supplier, err := domain.NewSupplier(id, "Supplier "+id, id+"@example.com", 0.8)
		if err != nil {
			t.Fatalf("supplier: %v", err)
		}
		if err := suppliers.Add(supplier); err != nil {
			t.Fatalf("add supplier: %v", err)
		}
	}
	product, err := domain.NewProduct("product-1", "Widget", 9.99, 10, "gadgets", 0.5, "supplier-1")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if err := products.Add(product); err != nil {
		t.Fatalf("add product: %v", err)
	}

	svc := inventory.NewService(products, suppliers, nil)
	if _, err := svc.Restock("product-1", "supplier-2", 7); !errors.Is(err, domain.ErrSupplierMismatch) {
		t.Fatalf("expected ErrSupplierMismatch, got %v", err)
	}
}

func TestService_LowStockProducts(t *testing.T) {
	svc, products := newFixture(t)

	low, err := domain.NewProduct("product-2", "Bolt", 0.5, 3, "gadgets", 0.01, "supplier-1")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if err := products.Add(low); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Порог включительный.
	result, err := svc.LowStockProducts(3)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(result) != 1 || result[0].ID != "product-2" {
		t.Fatalf("expected only product-2, got %+v", result)
	}

	result, err = svc.LowStockProducts(10)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected both products, got %d", len(result))
	}
}
