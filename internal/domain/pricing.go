package domain

// PricingResult — неизменяемый снимок результата цепочки скидок.
// Создаётся один раз на заказ сервисом ценообразования и потребляется
// оркестратором заказов при расчёте итоговой суммы.
type PricingResult struct {
	originalSubtotal     Money
	loyaltyPointsUsed    int
	subtotalAfterLoyalty Money
	totalWeightKg        float64
}

// NewPricingResult валидирует поля и создаёт снимок расчёта.
func NewPricingResult(originalSubtotal Money, loyaltyPointsUsed int, subtotalAfterLoyalty Money, totalWeightKg float64) (PricingResult, error) {
	if loyaltyPointsUsed < 0 {
		return PricingResult{}, ErrLoyaltyPointsNegative
	}
	if totalWeightKg < 0 {
		return PricingResult{}, ErrWeightNegative
	}
	return PricingResult{
		originalSubtotal:     originalSubtotal,
		loyaltyPointsUsed:    loyaltyPointsUsed,
		subtotalAfterLoyalty: subtotalAfterLoyalty,
		totalWeightKg:        totalWeightKg,
	}, nil
}

// OriginalSubtotal — сумма позиций до применения скидок.
func (r PricingResult) OriginalSubtotal() Money { return r.originalSubtotal }

// LoyaltyPointsUsed — списанные баллы лояльности.
func (r PricingResult) LoyaltyPointsUsed() int { return r.loyaltyPointsUsed }

// SubtotalAfterLoyalty — итоговая сумма после всех скидок.
func (r PricingResult) SubtotalAfterLoyalty() Money { return r.subtotalAfterLoyalty }

// TotalWeightKg — суммарный вес позиций заказа.
func (r PricingResult) TotalWeightKg() float64 { return r.totalWeightKg }
