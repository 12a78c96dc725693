package supplier

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Service — реестр поставщиков и канал уведомлений о дозаказе.
type Service struct {
	suppliers     domain.SupplierRepository
	products      domain.ProductRepository
	notifications domain.NotificationService
	logger        *log.Entry
}

// NewService создаёт сервис поставщиков.
func NewService(
	suppliers domain.SupplierRepository,
	products domain.ProductRepository,
	notifications domain.NotificationService,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "supplier")
	}
	return &Service{
		suppliers:     suppliers,
		products:      products,
		notifications: notifications,
		logger:        logger,
	}
}

// AddSupplier регистрирует поставщика.
func (s *Service) AddSupplier(supplier domain.Supplier) error {
	return s.suppliers.Add(supplier)
}

// GetSupplier возвращает поставщика по идентификатору.
func (s *Service) GetSupplier(id string) (domain.Supplier, error) {
	return s.suppliers.Get(id)
}

// UpdateReliability обновляет оценку надёжности поставщика.
func (s *Service) UpdateReliability(id string, score float64) error {
	supplier, err := s.suppliers.Get(id)
	if err != nil {
		return err
	}
	if err := supplier.SetReliability(score); err != nil {
		return err
	}
	return s.suppliers.Update(supplier)
}

// ReliableSuppliers возвращает поставщиков с надёжностью не ниже порога.
func (s *Service) ReliableSuppliers(min float64) ([]domain.Supplier, error) {
	all, err := s.suppliers.GetAll()
	if err != nil {
		return nil, err
	}
	var result []domain.Supplier
	for _, supplier := range all {
		if supplier.ReliabilityScore >= min {
			result = append(result, supplier)
		}
	}
	return result, nil
}

// NotifySupplierReorder шлёт поставщику сигнал о низком остатке товара.
// Контракт fire-and-forget: ошибки поиска логируются и не возвращаются.
func (s *Service) NotifySupplierReorder(productID, supplierID string) {
	supplier, err := s.suppliers.Get(supplierID)
	if err != nil {
		s.logger.WithFields(log.Fields{
			"product_id":  productID,
			"supplier_id": supplierID,
		}).WithError(err).Warn("reorder notification skipped: supplier lookup failed")
		return
	}
	product, err := s.products.Get(productID)
	if err != nil {
		s.logger.WithFields(log.Fields{
			"product_id":  productID,
			"supplier_id": supplierID,
		}).WithError(err).Warn("reorder notification skipped: product lookup failed")
		return
	}

	s.notifications.SendLowStockAlert(supplier.Email, product.Name)
	s.logger.WithFields(log.Fields{
		"product_id":  productID,
		"supplier_id": supplierID,
		"available":   product.QuantityAvailable,
	}).Info("supplier reorder notification sent")
}

var _ domain.SupplierService = (*Service)(nil)
