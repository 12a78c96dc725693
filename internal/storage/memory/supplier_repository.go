package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// supplierRepositoryInMemory — in-memory реализация SupplierRepository.
type supplierRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Supplier
}

// NewSupplierRepository возвращает in-memory репозиторий поставщиков.
func NewSupplierRepository() domain.SupplierRepository {
	return &supplierRepositoryInMemory{
		items: make(map[string]domain.Supplier),
	}
}

// Add сохраняет нового поставщика, если ID ещё не занят.
func (r *supplierRepositoryInMemory) Add(supplier domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[supplier.ID]; exists {
		return domain.ErrAlreadyExists
	}
	r.items[supplier.ID] = supplier
	return nil
}

// Get возвращает поставщика или ErrSupplierNotFound.
func (r *supplierRepositoryInMemory) Get(id string) (domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	supplier, ok := r.items[id]
	if !ok {
		return domain.Supplier{}, domain.ErrSupplierNotFound
	}
	return supplier, nil
}

// Update перезаписывает существующего поставщика.
func (r *supplierRepositoryInMemory) Update(supplier domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[supplier.ID]; !ok {
		return domain.ErrSupplierNotFound
	}
	r.items[supplier.ID] = supplier
	return nil
}

// GetAll возвращает копию всех поставщиков.
func (r *supplierRepositoryInMemory) GetAll() (map[string]domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]domain.Supplier, len(r.items))
	for id, supplier := range r.items {
		result[id] = supplier
	}
	return result, nil
}

var _ domain.SupplierRepository = (*supplierRepositoryInMemory)(nil)
