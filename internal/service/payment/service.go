package payment

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Service проводит платежи через валидаторы способов оплаты и хранит
// историю транзакций в памяти. Возвраты добавляются как новые записи
// с отрицательной суммой: история append-only.
type Service struct {
	mu         sync.Mutex
	validators map[domain.PaymentMethod]Validator
	history    []domain.PaymentTransaction
	logger     *log.Entry
	now        func() time.Time
}

// NewService создаёт платёжный сервис с валидаторами карт и PayPal.
func NewService(logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	return &Service{
		validators: map[domain.PaymentMethod]Validator{
			domain.PaymentMethodCreditCard: CreditCardValidator{},
			domain.PaymentMethodPayPal:     PayPalValidator{},
		},
		logger: logger,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени (для тестов).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ProcessPayment валидирует платёжные данные и проводит платёж на сумму
// amount. Предоставленная сумма должна покрывать итог заказа; сдача
// не возвращается. Успешный платёж фиксируется в истории со статусом
// completed.
func (s *Service) ProcessPayment(orderID int64, amount domain.Money, info domain.PaymentInfo) error {
	validator, ok := s.validators[info.Method]
	if !ok {
		return domain.ErrUnsupportedPaymentMethod
	}
	if err := validator.Validate(info); err != nil {
		s.logger.WithFields(log.Fields{
			"order_id": orderID,
			"method":   info.Method,
		}).Warn("payment declined by validator")
		return err
	}
	if info.Amount.LessThan(amount) {
		return domain.ErrInsufficientPayment
	}

	txn := domain.PaymentTransaction{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Amount:    amount.Amount(),
		Method:    info.Method,
		Status:    domain.PaymentStatusCompleted,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.history = append(s.history, txn)
	s.mu.Unlock()

	s.logger.WithFields(log.Fields{
		"order_id":       orderID,
		"transaction_id": txn.ID,
		"amount":         txn.Amount,
		"method":         txn.Method,
	}).Info("payment processed")
	return nil
}

// ProcessRefund проводит возврат по заказу. Требуется завершённая
// исходная транзакция платежа; возврат записывается отдельной
// транзакцией с отрицательной суммой и причиной.
func (s *Service) ProcessRefund(orderID int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var original *domain.PaymentTransaction
	for i := range s.history {
		txn := &s.history[i]
		if txn.OrderID != orderID {
			continue
		}
		if txn.IsRefund() {
			// Повторный возврат по заказу запрещён.
			return domain.ErrRefundNotAllowed
		}
		if txn.Status == domain.PaymentStatusCompleted && original == nil {
			original = txn
		}
	}
	if original == nil {
		return domain.ErrRefundNotAllowed
	}

	refund := domain.PaymentTransaction{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Amount:    -original.Amount,
		Method:    original.Method,
		Status:    domain.PaymentStatusRefunded,
		Reason:    reason,
		CreatedAt: s.now().UTC(),
	}
	s.history = append(s.history, refund)

	s.logger.WithFields(log.Fields{
		"order_id":       orderID,
		"transaction_id": refund.ID,
		"amount":         refund.Amount,
		"reason":         reason,
	}).Info("refund processed")
	return nil
}

// Transactions возвращает копию истории транзакций по заказу в порядке
// добавления.
func (s *Service) Transactions(orderID int64) []domain.PaymentTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.PaymentTransaction
	for _, txn := range s.history {
		if txn.OrderID == orderID {
			result = append(result, txn)
		}
	}
	return result
}
