package domain

import "time"

// ShippingMethod описывает способ доставки заказа.
type ShippingMethod string

const (
	ShippingStandard  ShippingMethod = "standard"
	ShippingExpress   ShippingMethod = "express"
	ShippingOvernight ShippingMethod = "overnight"
)

// ParseShippingMethod преобразует внешнюю строку в способ доставки.
func ParseShippingMethod(value string) (ShippingMethod, error) {
	switch ShippingMethod(value) {
	case ShippingStandard, ShippingExpress, ShippingOvernight:
		return ShippingMethod(value), nil
	default:
		return "", ErrUnknownShippingMethod
	}
}

// ShipmentStatus описывает состояние отправления.
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
)

// Shipment — отправление, привязанное к заказу через трек-номер.
type Shipment struct {
	ID             int64
	OrderID        int64
	TrackingNumber string
	Method         ShippingMethod
	Address        string
	Status         ShipmentStatus
	CreatedAt      time.Time
}
