package notification

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Service — реализация NotificationService поверх структурного лога.
// Реального канала доставки (почта, SMS) здесь нет: уведомление
// фиксируется в логе, контракт fire-and-forget соблюдается.
type Service struct {
	logger *log.Entry
}

// NewService создаёт сервис уведомлений.
func NewService(logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "notification")
	}
	return &Service{logger: logger}
}

func (s *Service) SendOrderConfirmation(customer domain.Customer, order domain.Order) {
	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"email":       customer.Email.Value(),
		"order_id":    order.ID,
		"total":       order.TotalPrice.Amount(),
	}).Info("order confirmation sent")
}

func (s *Service) SendOrderCancellation(customer domain.Customer, orderID int64, reason string) {
	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"order_id":    orderID,
		"reason":      reason,
	}).Info("order cancellation sent")
}

func (s *Service) SendShipmentNotification(customer domain.Customer, orderID int64) {
	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"order_id":    orderID,
	}).Info("shipment notification sent")
}

func (s *Service) SendStatusUpdate(customer domain.Customer, orderID int64, status domain.OrderStatus) {
	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"order_id":    orderID,
		"status":      status,
	}).Info("status update sent")
}

func (s *Service) SendLowStockAlert(supplierEmail domain.Email, productName string) {
	s.logger.WithFields(log.Fields{
		"supplier_email": supplierEmail.Value(),
		"product_name":   productName,
	}).Warn("low stock alert sent")
}

var _ domain.NotificationService = (*Service)(nil)
