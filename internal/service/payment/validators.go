package payment

import (
	"strings"
	"unicode"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Validator проверяет платёжные данные конкретного способа оплаты.
type Validator interface {
	Validate(info domain.PaymentInfo) error
}

// CreditCardValidator требует флаг валидности и номер карты не короче
// 16 цифр. Алгоритм Луна намеренно не применяется: шлюз-заглушка
// проверяет только форму номера.
type CreditCardValidator struct{}

func (CreditCardValidator) Validate(info domain.PaymentInfo) error {
	if !info.Valid {
		return domain.ErrPaymentDeclined
	}
	digits := 0
	for _, r := range info.CardNumber {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 16 {
		return domain.ErrPaymentDeclined
	}
	return nil
}

// PayPalValidator требует флаг валидности и адрес электронной почты.
type PayPalValidator struct{}

func (PayPalValidator) Validate(info domain.PaymentInfo) error {
	if !info.Valid {
		return domain.ErrPaymentDeclined
	}
	if info.Email == "" || !strings.Contains(info.Email, "@") {
		return domain.ErrPaymentDeclined
	}
	return nil
}

var (
	_ Validator = CreditCardValidator{}
	_ Validator = PayPalValidator{}
)
