package inventory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Service управляет остатками товаров и ведёт журнал их изменений.
// Каждая мутация остатка сопровождается записью в журнал с причиной
// и дельтой со знаком.
type Service struct {
	products  domain.ProductRepository
	suppliers domain.SupplierRepository

	mu   sync.Mutex
	logs []domain.InventoryLogEntry

	logger *log.Entry
	now    func() time.Time
}

// NewService создаёт сервис управления остатками.
func NewService(products domain.ProductRepository, suppliers domain.SupplierRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "inventory")
	}
	return &Service{
		products:  products,
		suppliers: suppliers,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckAvailability сообщает, хватает ли остатка товара на qty единиц.
// Отсутствующий товар считается недоступным.
func (s *Service) CheckAvailability(productID string, qty int) bool {
	if qty <= 0 {
		return false
	}
	product, err := s.products.Get(productID)
	if err != nil {
		return false
	}
	return product.QuantityAvailable >= qty
}

// DeductForSale списывает остаток под продажу и пишет запись "sale".
// Возвращает товар с обновлённым остатком.
func (s *Service) DeductForSale(productID string, qty int) (domain.Product, error) {
	product, err := s.products.DeductStock(productID, qty)
	if err != nil {
		return domain.Product{}, err
	}
	s.LogChange(productID, -qty, domain.InventoryReasonSale)
	return product, nil
}

// RestoreForCancellation возвращает остаток отменённого заказа и пишет
// запись "order_cancelled_<id>".
func (s *Service) RestoreForCancellation(productID string, qty int, orderID int64) (domain.Product, error) {
	product, err := s.products.RestoreStock(productID, qty)
	if err != nil {
		return domain.Product{}, err
	}
	s.LogChange(productID, qty, fmt.Sprintf("order_cancelled_%d", orderID))
	return product, nil
}

// Restock пополняет остаток товара от его поставщика. Поставщик обязан
// совпадать с поставщиком товара.
func (s *Service) Restock(productID, supplierID string, qty int) (domain.Product, error) {
	if qty <= 0 {
		return domain.Product{}, domain.ErrItemQtyInvalid
	}
	product, err := s.products.Get(productID)
	if err != nil {
		return domain.Product{}, err
	}
	if _, err := s.suppliers.Get(supplierID); err != nil {
		return domain.Product{}, err
	}
	if product.SupplierID != supplierID {
		return domain.Product{}, domain.ErrSupplierMismatch
	}

	product, err = s.products.RestoreStock(productID, qty)
	if err != nil {
		return domain.Product{}, err
	}
	s.LogChange(productID, qty, domain.InventoryReasonRestock)

	s.logger.WithFields(log.Fields{
		"product_id":  productID,
		"supplier_id": supplierID,
		"quantity":    qty,
		"available":   product.QuantityAvailable,
	}).Info("product restocked")
	return product, nil
}

// LowStockProducts возвращает товары с остатком не выше порога
// (порог включительный).
func (s *Service) LowStockProducts(threshold int) ([]domain.Product, error) {
	all, err := s.products.GetAll()
	if err != nil {
		return nil, err
	}
	var result []domain.Product
	for _, product := range all {
		if product.QuantityAvailable <= threshold {
			result = append(result, product)
		}
	}
	return result, nil
}

// LogChange добавляет запись в журнал изменений остатков.
func (s *Service) LogChange(productID string, quantityChange int, reason string) {
	entry := domain.InventoryLogEntry{
		ID:             uuid.NewString(),
		ProductID:      productID,
		QuantityChange: quantityChange,
		Reason:         reason,
		OccurredAt:     s.now().UTC(),
	}

	s.mu.Lock()
	s.logs = append(s.logs, entry)
	s.mu.Unlock()

	s.logger.WithFields(log.Fields{
		"product_id": productID,
		"change":     quantityChange,
		"reason":     reason,
	}).Debug("inventory change logged")
}

// Logs возвращает копию журнала по товару в порядке добавления.
// Пустой productID возвращает весь журнал.
func (s *Service) Logs(productID string) []domain.InventoryLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.InventoryLogEntry
	for _, entry := range s.logs {
		if productID == "" || entry.ProductID == productID {
			result = append(result, entry)
		}
	}
	return result
}
