package domain

import "time"

// Причины изменения остатков в журнале инвентаря.
const (
	InventoryReasonInitialStock = "initial_stock"
	InventoryReasonRestock      = "restock"
	InventoryReasonSale         = "sale"
)

// InventoryLogEntry — запись журнала изменения остатков.
type InventoryLogEntry struct {
	ID        string
	ProductID string
	// QuantityChange — дельта со знаком: отрицательная при продаже,
	// положительная при пополнении и отмене заказа.
	QuantityChange int
	Reason         string
	OccurredAt     time.Time
}
