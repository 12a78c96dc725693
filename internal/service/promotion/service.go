package promotion

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Service управляет промоакциями. Истёкшая промоакция для вызывающего
// кода неотличима от отсутствующей.
type Service struct {
	promotions domain.PromotionRepository
	logger     *log.Entry
	now        func() time.Time
}

// NewService создаёт сервис промоакций.
func NewService(promotions domain.PromotionRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "promotion")
	}
	return &Service{
		promotions: promotions,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock подменяет источник времени (для тестов срока действия).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AddPromotion регистрирует новую промоакцию.
func (s *Service) AddPromotion(promotion domain.Promotion) error {
	if err := s.promotions.Add(promotion); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"code":        promotion.Code,
		"percent":     promotion.DiscountPercent,
		"valid_until": promotion.ValidUntil,
	}).Info("promotion registered")
	return nil
}

// Resolve возвращает действующую промоакцию по коду.
// Истёкшая или отсутствующая промоакция даёт ErrPromotionNotFound.
func (s *Service) Resolve(code string) (domain.Promotion, error) {
	promotion, err := s.promotions.GetByCode(code)
	if err != nil {
		return domain.Promotion{}, err
	}
	if promotion.ExpiredAt(s.now()) {
		return domain.Promotion{}, domain.ErrPromotionNotFound
	}
	return promotion, nil
}

// IncrementUsage увеличивает счётчик применений промоакции.
func (s *Service) IncrementUsage(code string) error {
	promotion, err := s.promotions.GetByCode(code)
	if err != nil {
		return err
	}
	promotion.UsedCount++
	return s.promotions.Update(promotion)
}

// ActivePromotions возвращает все неистёкшие промоакции.
func (s *Service) ActivePromotions() ([]domain.Promotion, error) {
	all, err := s.promotions.GetAll()
	if err != nil {
		return nil, err
	}
	now := s.now()
	var result []domain.Promotion
	for _, promotion := range all {
		if !promotion.ExpiredAt(now) {
			result = append(result, promotion)
		}
	}
	return result, nil
}
