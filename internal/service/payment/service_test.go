package payment_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
	"github.com/vladislavdragonenkov/ecom/internal/service/payment"
)

func validCard() domain.PaymentInfo {
	return domain.PaymentInfo{
		Method:     domain.PaymentMethodCreditCard,
		Valid:      true,
		CardNumber: "4111 1111 1111 1111",
		Amount:     domain.MustMoney(200),
	}
}

func TestService_ProcessPayment(t *testing.T) {
	svc := payment.NewService(nil)

	if err := svc.ProcessPayment(1, domain.MustMoney(150), validCard()); err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	txns := svc.Transactions(1)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Status != domain.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", txns[0].Status)
	}
	if txns[0].Amount != 150 {
		t.Fatalf("expected charged amount 150, got %v", txns[0].Amount)
	}
	if txns[0].ID == "" {
		t.Fatal("expected non-empty transaction id")
	}
}

func TestService_ProcessPaymentDeclined(t *testing.T) {
	svc := payment.NewService(nil)

	info := validCard()
	info.Valid = false
	if err := svc.ProcessPayment(1, domain.MustMoney(10), info); !errors.Is(err, domain.ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}

	info = validCard()
	info.CardNumber = "4111 1111"
	if err := svc.ProcessPayment(1, domain.MustMoney(10), info); !errors.Is(err, domain.ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined for short card, got %v", err)
	}

	if txns := svc.Transactions(1); len(txns) != 0 {
		t.Fatalf("declined payment recorded: %d transactions", len(txns))
	}
}

func TestService_ProcessPaymentInsufficientAmount(t *testing.T) {
	svc := payment.NewService(nil)

	info := validCard()
	info.Amount = domain.MustMoney(99.99)
	err := svc.ProcessPayment(1, domain.MustMoney(100.05), info)
	if !errors.Is(err, domain.ErrInsufficientPayment) {
		t.Fatalf("expected ErrInsufficientPayment, got %v", err)
	}
}

func TestService_ProcessPaymentUnsupportedMethod(t *testing.T) {
	svc := payment.NewService(nil)

	info := validCard()
	info.Method = "crypto"
	err := svc.ProcessPayment(1, domain.MustMoney(10), info)
	if !errors.Is(err, domain.ErrUnsupportedPaymentMethod) {
		t.Fatalf("expected ErrUnsupportedPaymentMethod, got %v", err)
	}
}

func TestService_PayPalValidation(t *testing.T) {
	svc := payment.NewService(nil)

	info := domain.PaymentInfo{
		Method: domain.PaymentMethodPayPal,
		Valid:  true,
		Email:  "buyer@example.com",
		Amount: domain.MustMoney(50),
	}
	if err := svc.ProcessPayment(2, domain.MustMoney(50), info); err != nil {
		t.Fatalf("paypal payment failed: %v", err)
	}

	info.Email = "not-an-email"
	if err := svc.ProcessPayment(3, domain.MustMoney(50), info); !errors.Is(err, domain.ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}
}

func TestService_ProcessRefund(t *testing.T) {
	svc := payment.NewService(nil)

	if err := svc.ProcessPayment(1, domain.MustMoney(80), validCard()); err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if err := svc.ProcessRefund(1, "customer request"); err != nil {
		t.Fatalf("refund failed: %v", err)
	}

	txns := svc.Transactions(1)
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	refund := txns[1]
	if !refund.IsRefund() {
		t.Fatalf("expected refund transaction, got status %s", refund.Status)
	}
	if refund.Amount != -80 {
		t.Fatalf("expected amount -80, got %v", refund.Amount)
	}
	if refund.Reason != "customer request" {
		t.Fatalf("expected reason recorded, got %q", refund.Reason)
	}
	// Исходная транзакция не мутируется.
	if txns[0].Status != domain.PaymentStatusCompleted {
		t.Fatalf("original transaction mutated: %s", txns[0].Status)
	}

	// Повторный возврат запрещён.
	if err := svc.ProcessRefund(1, "again"); !errors.Is(err, domain.ErrRefundNotAllowed) {
		t.Fatalf("expected ErrRefundNotAllowed, got %v", err)
	}
}

func TestService_ProcessRefundWithoutPayment(t *testing.T) {
	svc := payment.NewService(nil)
	if err := svc.ProcessRefund(42, "no such order"); !errors.Is(err, domain.ErrRefundNotAllowed) {
		t.Fatalf("expected ErrRefundNotAllowed, got %v", err)
	}
}
