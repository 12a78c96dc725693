package pricing

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Service компонует четыре стратегии скидок в фиксированном порядке:
// членство → промокод → объём → баллы лояльности. Шаги 1–3 применяются
// мультипликативно (каждая скидка считается от уже уменьшенного итога),
// шаг 4 — аддитивно. Порядок унаследован от legacy-системы и обязан
// сохраняться для числовой совместимости.
type Service struct {
	membership  MembershipDiscount
	promotional PromotionalDiscount
	bulk        BulkDiscount
	loyalty     LoyaltyDiscount
	logger      *log.Entry
	now         func() time.Time
}

// NewService создаёт сервис ценообразования.
func NewService(logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "pricing")
	}
	return &Service{
		logger: logger,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени (для тестов срока действия промокодов).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Subtotal считает исходный итог и суммарный вес по позициям заказа.
// Позиции, для которых товар не найден, игнорируются.
func (s *Service) Subtotal(items []domain.OrderItem, products map[string]domain.Product) (domain.Money, float64) {
	subtotal := domain.Money{}
	totalWeight := 0.0

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(float64(item.Quantity)))
		totalWeight += product.WeightKg * float64(item.Quantity)
	}

	return subtotal, totalWeight
}

// ApplyAllDiscounts прогоняет цепочку скидок и возвращает снимок расчёта.
func (s *Service) ApplyAllDiscounts(
	customer domain.Customer,
	items []domain.OrderItem,
	products map[string]domain.Product,
	promotion *domain.Promotion,
) (domain.PricingResult, error) {
	subtotal, totalWeight := s.Subtotal(items, products)

	membershipDiscount := s.membership.Calculate(customer.Tier, subtotal)
	afterMembership := subtotal.Sub(membershipDiscount)

	// Право на промоскидку проверяется по исходному итогу, сумма — от
	// уже уменьшенного.
	promoDiscount := s.promotional.Calculate(promotion, subtotal, afterMembership, items, products, s.now())
	afterPromo := afterMembership.Sub(promoDiscount)

	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}
	bulkDiscount := s.bulk.Calculate(totalItems, afterPromo)
	afterBulk := afterPromo.Sub(bulkDiscount)

	loyaltyDiscount, pointsUsed := s.loyalty.Calculate(customer.LoyaltyPoints, afterBulk)
	final := afterBulk.Sub(loyaltyDiscount)

	s.logger.WithFields(log.Fields{
		"customer_id":  customer.ID,
		"subtotal":     subtotal.Amount(),
		"membership":   membershipDiscount.Amount(),
		"promotional":  promoDiscount.Amount(),
		"bulk":         bulkDiscount.Amount(),
		"loyalty":      loyaltyDiscount.Amount(),
		"points_used":  pointsUsed,
		"final":        final.Amount(),
		"total_weight": totalWeight,
	}).Debug("discount chain applied")

	return domain.NewPricingResult(subtotal, pointsUsed, final, totalWeight)
}

// AdditionalDiscount считает ручную процентную скидку поверх текущей цены.
// Применима только к заказам в статусе pending (контролируется оркестратором).
func (s *Service) AdditionalDiscount(current domain.Money, percent float64) (domain.Money, error) {
	if percent < 0 || percent > 100 {
		return domain.Money{}, domain.ErrDiscountPercentRange
	}
	return current.Mul(1 - percent/100), nil
}
