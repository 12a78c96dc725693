package domain

import "time"

// PromotionCategoryAll — промокод действует на любую категорию товаров.
const PromotionCategoryAll = "all"

// Promotion — ограниченная по времени процентная скидка с порогом
// минимальной покупки и областью действия по категории. UsedCount
// только растёт.
type Promotion struct {
	ID              string
	Code            string
	DiscountPercent float64
	MinPurchase     Money
	ValidUntil      time.Time
	Category        string
	UsedCount       int
}

// NewPromotion валидирует входные данные и создаёт промокод.
func NewPromotion(id, code string, discountPercent, minPurchase float64, validUntil time.Time, category string) (Promotion, error) {
	if code == "" {
		return Promotion{}, ErrCodeRequired
	}
	if discountPercent < 0 || discountPercent > 100 {
		return Promotion{}, ErrDiscountPercentRange
	}
	minPurchaseVO, err := NewMoney(minPurchase)
	if err != nil {
		return Promotion{}, err
	}
	return Promotion{
		ID:              id,
		Code:            code,
		DiscountPercent: discountPercent,
		MinPurchase:     minPurchaseVO,
		ValidUntil:      validUntil,
		Category:        category,
	}, nil
}

// ExpiredAt сообщает, истёк ли срок действия на указанный момент.
func (p *Promotion) ExpiredAt(now time.Time) bool {
	return now.After(p.ValidUntil)
}

// AppliesToCategory проверяет, действует ли промокод на категорию товара.
func (p *Promotion) AppliesToCategory(category string) bool {
	return p.Category == PromotionCategoryAll || p.Category == category
}
