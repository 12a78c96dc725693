package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// shipmentRepositoryInMemory — in-memory реализация ShipmentRepository.
type shipmentRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Shipment
	nextID int64
}

// NewShipmentRepository возвращает in-memory репозиторий отправлений.
func NewShipmentRepository() domain.ShipmentRepository {
	return &shipmentRepositoryInMemory{
		items: make(map[int64]domain.Shipment),
	}
}

// Add сохраняет новое отправление, если ID ещё не занят.
func (r *shipmentRepositoryInMemory) Add(shipment domain.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[shipment.ID]; exists {
		return domain.ErrAlreadyExists
	}
	r.items[shipment.ID] = shipment
	return nil
}

// FindByTracking возвращает отправление по трек-номеру.
func (r *shipmentRepositoryInMemory) FindByTracking(trackingNumber string) (domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, shipment := range r.items {
		if shipment.TrackingNumber == trackingNumber {
			return shipment, nil
		}
	}
	return domain.Shipment{}, domain.ErrShipmentNotFound
}

// FindByOrder возвращает отправления заказа, отсортированные по ID.
func (r *shipmentRepositoryInMemory) FindByOrder(orderID int64) ([]domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Shipment, 0)
	for _, shipment := range r.items {
		if shipment.OrderID == orderID {
			result = append(result, shipment)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update перезаписывает существующее отправление.
func (r *shipmentRepositoryInMemory) Update(shipment domain.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[shipment.ID]; !ok {
		return domain.ErrShipmentNotFound
	}
	r.items[shipment.ID] = shipment
	return nil
}

// NextID резервирует следующий последовательный идентификатор.
func (r *shipmentRepositoryInMemory) NextID() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	return r.nextID, nil
}

var _ domain.ShipmentRepository = (*shipmentRepositoryInMemory)(nil)
