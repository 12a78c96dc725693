package shipment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Service регистрирует отправления и сопровождает их жизненный цикл:
// pending → in_transit → delivered, отмена возможна до доставки.
type Service struct {
	shipments domain.ShipmentRepository
	logger    *log.Entry
	now       func() time.Time
}

// NewService создаёт сервис отправлений.
func NewService(shipments domain.ShipmentRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "shipment")
	}
	return &Service{
		shipments: shipments,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateShipment регистрирует отправление для заказа и возвращает
// трек-номер вида TRACK<orderID>-<fragment>.
func (s *Service) CreateShipment(orderID int64, method domain.ShippingMethod, address string) (string, error) {
	id, err := s.shipments.NextID()
	if err != nil {
		return "", err
	}

	trackingNumber := fmt.Sprintf("TRACK%d-%s", orderID, uuid.NewString()[:8])
	shipment := domain.Shipment{
		ID:             id,
		OrderID:        orderID,
		TrackingNumber: trackingNumber,
		Method:         method,
		Address:        address,
		Status:         domain.ShipmentStatusPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.shipments.Add(shipment); err != nil {
		return "", err
	}

	s.logger.WithFields(log.Fields{
		"order_id":        orderID,
		"tracking_number": trackingNumber,
		"method":          method,
	}).Info("shipment created")
	return trackingNumber, nil
}

// UpdateShipmentStatus переводит отправление в новый статус.
// Доставленное или отменённое отправление дальше не меняется.
func (s *Service) UpdateShipmentStatus(trackingNumber string, status domain.ShipmentStatus) error {
	shipment, err := s.shipments.FindByTracking(trackingNumber)
	if err != nil {
		return err
	}
	if shipment.Status == domain.ShipmentStatusDelivered || shipment.Status == domain.ShipmentStatusCancelled {
		return domain.ErrShipmentFinal
	}
	shipment.Status = status
	return s.shipments.Update(shipment)
}

// MarkDelivered помечает отправление доставленным.
func (s *Service) MarkDelivered(trackingNumber string) error {
	return s.UpdateShipmentStatus(trackingNumber, domain.ShipmentStatusDelivered)
}

// CancelShipment отменяет недоставленное отправление.
func (s *Service) CancelShipment(trackingNumber string) error {
	return s.UpdateShipmentStatus(trackingNumber, domain.ShipmentStatusCancelled)
}

// TrackingInfo возвращает отправление по трек-номеру.
func (s *Service) TrackingInfo(trackingNumber string) (domain.Shipment, error) {
	return s.shipments.FindByTracking(trackingNumber)
}

// ShipmentsByOrder возвращает все отправления заказа.
func (s *Service) ShipmentsByOrder(orderID int64) ([]domain.Shipment, error) {
	return s.shipments.FindByOrder(orderID)
}

var _ domain.ShipmentService = (*Service)(nil)
