package domain

import "errors"

var (
	// Ошибки валидации денежных значений.
	ErrMoneyInvalid  = errors.New("money amount must be a finite number")
	ErrMoneyNegative = errors.New("money amount must be non-negative")

	// Ошибки валидации value objects.
	ErrEmailInvalid   = errors.New("email must contain @ and must not be empty")
	ErrPhoneInvalid   = errors.New("phone number must contain 5 to 15 digits")
	ErrAddressInvalid = errors.New("address must be 5 to 200 characters long")

	// Ошибки валидации сущностей.
	ErrNameRequired          = errors.New("name must be a non-empty string")
	ErrCodeRequired          = errors.New("promotion code must be a non-empty string")
	ErrDiscountPercentRange  = errors.New("discount percent must be between 0 and 100")
	ErrQuantityNegative      = errors.New("quantity must be non-negative")
	ErrWeightNegative        = errors.New("weight must be non-negative")
	ErrLoyaltyPointsNegative = errors.New("loyalty points must be non-negative")
	ErrReliabilityRange      = errors.New("reliability score must be between 0 and 1")
	ErrItemsRequired         = errors.New("order must contain at least one item")
	ErrItemQtyInvalid        = errors.New("order item quantity must be greater than zero")
	ErrUnknownTier           = errors.New("unknown membership tier")
	ErrUnknownOrderStatus    = errors.New("unknown order status")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")

	// Ошибки отсутствия сущностей в репозиториях.
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrShipmentNotFound  = errors.New("shipment not found")

	// ErrAlreadyExists возвращается при попытке добавить сущность с занятым ID.
	ErrAlreadyExists = errors.New("entity already exists")

	// Бизнес-ошибки пайплайна создания заказа.
	ErrCustomerSuspended = errors.New("customer account is suspended")
	ErrInsufficientStock = errors.New("not enough stock for product")
	ErrSupplierMismatch  = errors.New("restock supplier does not match product supplier")
	ErrOrderNotPending   = errors.New("operation allowed only for pending orders")
	ErrShipmentFinal     = errors.New("shipment already in a final status")

	// Ошибки платёжного сервиса. Недостаточная сумма — отдельный случай,
	// не совпадающий с некорректными платёжными данными.
	ErrPaymentDeclined          = errors.New("payment declined")
	ErrInsufficientPayment      = errors.New("insufficient payment amount")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
	ErrRefundNotAllowed         = errors.New("refund requires a completed original transaction")
)

// IsNotFound проверяет, относится ли ошибка к классу «сущность не найдена».
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrPromotionNotFound) ||
		errors.Is(err, ErrSupplierNotFound) ||
		errors.Is(err, ErrShipmentNotFound)
}
