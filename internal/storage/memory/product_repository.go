package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Add сохраняет новый товар, если ID ещё не занят.
func (r *productRepositoryInMemory) Add(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrAlreadyExists
	}
	r.items[product.ID] = product
	return nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// Update перезаписывает существующий товар.
func (r *productRepositoryInMemory) Update(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.items[product.ID] = product
	return nil
}

// GetAll возвращает копию всех товаров.
func (r *productRepositoryInMemory) GetAll() (map[string]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]domain.Product, len(r.items))
	for id, product := range r.items {
		result[id] = product
	}
	return result, nil
}

// Exists проверяет наличие товара.
func (r *productRepositoryInMemory) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok
}

// DeductStock атомарно проверяет остаток и списывает qty единиц.
// Проверка и запись выполняются под одной блокировкой.
func (r *productRepositoryInMemory) DeductStock(id string, qty int) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if qty <= 0 {
		return domain.Product{}, domain.ErrItemQtyInvalid
	}
	if product.QuantityAvailable < qty {
		return domain.Product{}, domain.ErrInsufficientStock
	}

	product.QuantityAvailable -= qty
	r.items[id] = product
	return product, nil
}

// RestoreStock возвращает qty единиц на остаток.
func (r *productRepositoryInMemory) RestoreStock(id string, qty int) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if qty <= 0 {
		return domain.Product{}, domain.ErrItemQtyInvalid
	}

	product.QuantityAvailable += qty
	r.items[id] = product
	return product, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
