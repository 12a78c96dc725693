package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий клиентов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[string]domain.Customer),
	}
}

// Add сохраняет нового клиента, если ID ещё не занят.
func (r *customerRepositoryInMemory) Add(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[customer.ID]; exists {
		return domain.ErrAlreadyExists
	}
	r.items[customer.ID] = copyCustomer(customer)
	return nil
}

// Get возвращает клиента или ErrCustomerNotFound.
func (r *customerRepositoryInMemory) Get(id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return copyCustomer(customer), nil
}

// Update перезаписывает существующего клиента.
func (r *customerRepositoryInMemory) Update(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	r.items[customer.ID] = copyCustomer(customer)
	return nil
}

// GetAll возвращает копию всех клиентов.
func (r *customerRepositoryInMemory) GetAll() (map[string]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]domain.Customer, len(r.items))
	for id, customer := range r.items {
		result[id] = copyCustomer(customer)
	}
	return result, nil
}

// Exists проверяет наличие клиента.
func (r *customerRepositoryInMemory) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok
}

// copyCustomer копирует клиента вместе со срезом истории заказов, чтобы
// избежать непредсказуемых мутаций извне.
func copyCustomer(customer domain.Customer) domain.Customer {
	history := make([]int64, len(customer.OrderHistory))
	copy(history, customer.OrderHistory)
	customer.OrderHistory = history
	return customer
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
