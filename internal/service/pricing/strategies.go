package pricing

import (
	"math"
	"time"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Стратегии скидок — чистые калькуляторы без состояния. Каждая принимает
// текущий агрегат заказа и возвращает сумму скидки, которая вычитается из
// промежуточного итога. Сумма скидки никогда не превышает итог, к
// которому применяется.

// MembershipDiscount считает скидку по уровню членства клиента.
type MembershipDiscount struct{}

// Rate возвращает ставку скидки для уровня: GOLD 15%, SILVER 7%, BRONZE 3%.
// STANDARD и SUSPENDED скидки не дают.
func (MembershipDiscount) Rate(tier domain.MembershipTier) float64 {
	switch tier {
	case domain.TierGold:
		return 0.15
	case domain.TierSilver:
		return 0.07
	case domain.TierBronze:
		return 0.03
	default:
		return 0
	}
}

// Calculate возвращает сумму скидки от промежуточного итога.
func (d MembershipDiscount) Calculate(tier domain.MembershipTier, subtotal domain.Money) domain.Money {
	return subtotal.Mul(d.Rate(tier))
}

// BulkDiscount считает скидку за объём по суммарному количеству единиц.
type BulkDiscount struct{}

// Rate возвращает ставку: от 10 единиц — 5%, от 5 — 2%, иначе 0%.
// Отрицательное количество (не должно возникать) даёт 0%.
func (BulkDiscount) Rate(totalItems int) float64 {
	switch {
	case totalItems >= 10:
		return 0.05
	case totalItems >= 5:
		return 0.02
	default:
		return 0
	}
}

// Calculate возвращает сумму скидки от текущего промежуточного итога.
func (d BulkDiscount) Calculate(totalItems int, current domain.Money) domain.Money {
	return current.Mul(d.Rate(totalItems))
}

// PromotionalDiscount считает скидку по промокоду.
type PromotionalDiscount struct{}

// Calculate возвращает сумму скидки от current. Порог минимальной покупки
// проверяется по original — исходному итогу до скидки за членство.
// Нулевая скидка, если промоакция отсутствует, истекла, порог не достигнут
// или ни одна позиция не попадает в категорию промоакции.
func (PromotionalDiscount) Calculate(
	promotion *domain.Promotion,
	original, current domain.Money,
	items []domain.OrderItem,
	products map[string]domain.Product,
	now time.Time,
) domain.Money {
	if promotion == nil {
		return domain.Money{}
	}
	if promotion.ExpiredAt(now) {
		return domain.Money{}
	}
	if original.LessThan(promotion.MinPurchase) {
		return domain.Money{}
	}

	applicable := false
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		if promotion.AppliesToCategory(product.Category) {
			applicable = true
			break
		}
	}
	if !applicable {
		return domain.Money{}
	}

	return current.Mul(promotion.DiscountPercent / 100)
}

// LoyaltyDiscount считает скидку за баллы лояльности. Единственная
// аддитивная стратегия и единственная, расходующая конечный ресурс,
// поэтому в цепочке она всегда последняя.
type LoyaltyDiscount struct{}

// Calculate возвращает сумму скидки и количество списанных баллов.
// Порог — 100 баллов; 1 балл = $0.01; скидка ограничена 10% от текущего
// промежуточного итога.
func (LoyaltyDiscount) Calculate(loyaltyPoints int, current domain.Money) (domain.Money, int) {
	if loyaltyPoints < 100 {
		return domain.Money{}, 0
	}

	maxDiscount := current.Mul(0.10)
	pointsDiscount := float64(loyaltyPoints) * 0.01

	discount := maxDiscount
	if pointsDiscount < maxDiscount.Amount() {
		discount = domain.MustMoney(pointsDiscount)
	}

	pointsUsed := int(math.Round(discount.Amount() * 100))
	return discount, pointsUsed
}
