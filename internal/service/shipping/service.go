package shipping

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Ставки налога с продаж по регионам. Регион определяется вхождением
// подстроки в адрес доставки (см. Address.ContainsRegion).
const (
	taxRateCalifornia = 0.0725
	taxRateNewYork    = 0.04
	taxRateTexas      = 0.0625
	taxRateDefault    = 0.08
)

// Порог бесплатной стандартной доставки (включительно).
var freeShippingThreshold = domain.MustMoney(50)

// Service считает стоимость доставки и ставку налога для заказа.
type Service struct {
	logger *log.Entry
}

// NewService создаёт сервис доставки.
func NewService(logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "shipping")
	}
	return &Service{logger: logger}
}

// Cost возвращает стоимость доставки для метода, веса и итога заказа.
// Итог берётся после всех скидок: именно он определяет право на
// бесплатную стандартную доставку. GOLD-клиенты платят половину за
// экспресс.
func (s *Service) Cost(
	method domain.ShippingMethod,
	totalWeightKg float64,
	subtotal domain.Money,
	tier domain.MembershipTier,
) (domain.Money, error) {
	switch method {
	case domain.ShippingExpress:
		cost := 25 + 0.5*totalWeightKg
		if tier == domain.TierGold {
			cost /= 2
		}
		return domain.NewMoney(cost)
	case domain.ShippingStandard:
		if subtotal.GreaterOrEqual(freeShippingThreshold) {
			return domain.Money{}, nil
		}
		return domain.NewMoney(5 + 0.2*totalWeightKg)
	case domain.ShippingOvernight:
		return domain.NewMoney(50 + 1.0*totalWeightKg)
	default:
		return domain.Money{}, domain.ErrUnknownShippingMethod
	}
}

// TaxRate возвращает ставку налога для адреса доставки. Неизвестный
// регион облагается по ставке по умолчанию.
func (s *Service) TaxRate(address domain.Address) float64 {
	switch {
	case address.ContainsRegion("CA"):
		return taxRateCalifornia
	case address.ContainsRegion("NY"):
		return taxRateNewYork
	case address.ContainsRegion("TX"):
		return taxRateTexas
	default:
		return taxRateDefault
	}
}

// Tax возвращает сумму налога на товары. Доставка налогом не облагается.
func (s *Service) Tax(subtotal domain.Money, address domain.Address) domain.Money {
	return subtotal.Mul(s.TaxRate(address))
}
