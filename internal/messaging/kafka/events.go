package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Order события
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderCanceled      EventType = "order.canceled"
	EventTypeOrderStatusChanged EventType = "order.status_changed"

	// Inventory события
	EventTypeInventoryLowStock EventType = "inventory.low_stock"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "ecom.order.events"
	TopicInventoryEvents = "ecom.inventory.events"
)

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType  EventType              `json:"event_type"`
	OrderID    int64                  `json:"order_id"`
	CustomerID string                 `json:"customer_id"`
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// InventoryEvent представляет событие изменения остатков
type InventoryEvent struct {
	EventType EventType              `json:"event_type"`
	ProductID string                 `json:"product_id"`
	Available int                    `json:"available"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID int64, customerID, status string, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     status,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}
}

// NewInventoryEvent создает новое событие остатков
func NewInventoryEvent(eventType EventType, productID string, available int, metadata map[string]interface{}) *InventoryEvent {
	return &InventoryEvent{
		EventType: eventType,
		ProductID: productID,
		Available: available,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}
