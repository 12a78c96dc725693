package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и оплачен, но ещё не отгружен.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusShipped — заказ передан в доставку, трек-номер присвоен.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён; терминальный статус.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus преобразует внешнюю строку в статус заказа.
func ParseOrderStatus(value string) (OrderStatus, error) {
	switch OrderStatus(value) {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(value), nil
	default:
		return "", ErrUnknownOrderStatus
	}
}

// CanTransitionTo проверяет переход по машине состояний
// PENDING → SHIPPED → DELIVERED, PENDING/SHIPPED → CANCELLED.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	ProductID string
	Quantity  int
	UnitPrice Money
	// DiscountApplied — справочное поле, в расчёте цены не участвует.
	DiscountApplied float64
}

// Order агрегирует состояние заказа. После создания мутируются только
// Status и TrackingNumber.
type Order struct {
	ID             int64
	CustomerID     string
	Items          []OrderItem
	Status         OrderStatus
	CreatedAt      time.Time
	TotalPrice     Money
	ShippingCost   Money
	TrackingNumber string
	PaymentMethod  PaymentMethod
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает
// список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerNotFound)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
	}

	return errs
}

// ItemCount возвращает суммарное количество единиц товара в заказе.
func (o *Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
