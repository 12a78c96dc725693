package domain

// NotificationService отправляет уведомления клиентам и поставщикам.
// Контракт fire-and-forget: ошибки доставки обрабатываются внутри
// реализации и никогда не прерывают обработку заказа.
type NotificationService interface {
	// SendOrderConfirmation уведомляет клиента об успешном заказе.
	SendOrderConfirmation(customer Customer, order Order)
	// SendOrderCancellation уведомляет клиента об отмене заказа.
	SendOrderCancellation(customer Customer, orderID int64, reason string)
	// SendShipmentNotification уведомляет клиента об отгрузке.
	SendShipmentNotification(customer Customer, orderID int64)
	// SendStatusUpdate уведомляет клиента о смене статуса заказа.
	SendStatusUpdate(customer Customer, orderID int64, status OrderStatus)
	// SendLowStockAlert уведомляет поставщика о низком остатке товара.
	SendLowStockAlert(supplierEmail Email, productName string)
}

// SupplierService уведомляет поставщика о необходимости дозаказа.
// Тот же контракт fire-and-forget, что и у NotificationService.
type SupplierService interface {
	NotifySupplierReorder(productID, supplierID string)
}

// ShipmentService создаёт отправления. Вызывается только при переходе
// заказа в статус shipped.
type ShipmentService interface {
	// CreateShipment регистрирует отправление и возвращает трек-номер.
	CreateShipment(orderID int64, method ShippingMethod, address string) (string, error)
}
