package domain

import "time"

// PaymentMethod описывает способ оплаты заказа.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodPayPal     PaymentMethod = "paypal"
)

// PaymentStatus описывает состояние платёжной транзакции.
type PaymentStatus string

const (
	// PaymentStatusCompleted — платёж проведён успешно.
	PaymentStatusCompleted PaymentStatus = "completed"
	// PaymentStatusRefunded — транзакция возврата средств.
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentInfo — платёжные данные, предоставленные клиентом при оформлении
// заказа. Валидируются стратегией соответствующего способа оплаты.
type PaymentInfo struct {
	Method     PaymentMethod
	Valid      bool
	CardNumber string
	Email      string
	Amount     Money
}

// PaymentTransaction — неизменяемая запись в истории платежей.
// Возвраты записываются как новые транзакции с отрицательной суммой,
// исходная запись никогда не мутируется.
type PaymentTransaction struct {
	ID      string
	OrderID int64
	// Amount — сумма со знаком: положительная для платежей,
	// отрицательная для возвратов.
	Amount    float64
	Method    PaymentMethod
	Status    PaymentStatus
	Reason    string
	CreatedAt time.Time
}

// IsRefund сообщает, является ли транзакция возвратом.
func (t PaymentTransaction) IsRefund() bool {
	return t.Status == PaymentStatusRefunded
}
