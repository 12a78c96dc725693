package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// promotionRepositoryInMemory — in-memory реализация PromotionRepository.
// Ключом выступает код промоакции: коды уникальны.
type promotionRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Promotion
}

// NewPromotionRepository возвращает in-memory репозиторий промокодов.
func NewPromotionRepository() domain.PromotionRepository {
	return &promotionRepositoryInMemory{
		items: make(map[string]domain.Promotion),
	}
}

// Add сохраняет новую промоакцию, если код ещё не занят.
func (r *promotionRepositoryInMemory) Add(promotion domain.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[promotion.Code]; exists {
		return domain.ErrAlreadyExists
	}
	r.items[promotion.Code] = promotion
	return nil
}

// GetByCode возвращает промоакцию или ErrPromotionNotFound.
func (r *promotionRepositoryInMemory) GetByCode(code string) (domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	promotion, ok := r.items[code]
	if !ok {
		return domain.Promotion{}, domain.ErrPromotionNotFound
	}
	return promotion, nil
}

// Update перезаписывает существующую промоакцию.
func (r *promotionRepositoryInMemory) Update(promotion domain.Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[promotion.Code]; !ok {
		return domain.ErrPromotionNotFound
	}
	r.items[promotion.Code] = promotion
	return nil
}

// GetAll возвращает копию всех промоакций.
func (r *promotionRepositoryInMemory) GetAll() (map[string]domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]domain.Promotion, len(r.items))
	for code, promotion := range r.items {
		result[code] = promotion
	}
	return result, nil
}

var _ domain.PromotionRepository = (*promotionRepositoryInMemory)(nil)
