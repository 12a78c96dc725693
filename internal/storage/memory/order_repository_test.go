package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
	"github.com/vladislavdragonenkov/ecom/internal/storage/memory"
)

func newOrder(id int64) domain.Order {
	return domain.Order{
		ID:         id,
		CustomerID: "customer-1",
		Status:     domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: "product-1", Quantity: 5, UnitPrice: domain.MustMoney(1)},
		},
		CreatedAt:    time.Now().UTC(),
		TotalPrice:   domain.MustMoney(5),
		ShippingCost: domain.MustMoney(0),
	}
}

func TestOrderRepository_NextIDSequential(t *testing.T) {
	repo := memory.NewOrderRepository()

	for want := int64(1); want <= 3; want++ {
		got, err := repo.NextID()
		if err != nil {
			t.Fatalf("next id: %v", err)
		}
		if got != want {
			t.Fatalf("expected id %d, got %d", want, got)
		}
	}
}

func TestOrderRepository_AddGet(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder(1)

	if err := repo.Add(order); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := repo.Add(order); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	stored, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CustomerID != order.CustomerID {
		t.Fatalf("expected customer %s, got %s", order.CustomerID, stored.CustomerID)
	}

	if _, err := repo.Get(42); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_Update(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder(1)
	if err := repo.Add(order); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	order.Status = domain.OrderStatusShipped
	order.TrackingNumber = "TRACK1-abc"
	if err := repo.Update(order); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != domain.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", stored.Status)
	}
	if stored.TrackingNumber != "TRACK1-abc" {
		t.Fatalf("expected tracking number, got %q", stored.TrackingNumber)
	}
}

func TestOrderRepository_GetAllReturnsCopies(t *testing.T) {
	repo := memory.NewOrderRepository()
	if err := repo.Add(newOrder(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	all, err := repo.GetAll()
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 order, got %d", len(all))
	}

	// Мутация копии не должна влиять на хранилище.
	mutated := all[1]
	mutated.Items[0].Quantity = 99
	stored, err := repo.Get(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Items[0].Quantity != 5 {
		t.Fatalf("repository leaked internal state: qty %d", stored.Items[0].Quantity)
	}
}
