package customer

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
)

// Пороги пожизненной выручки для автоматического апгрейда уровня.
var (
	goldLifetimeThreshold   = domain.MustMoney(1000)
	silverLifetimeThreshold = domain.MustMoney(500)
	bronzeLifetimeThreshold = domain.MustMoney(200)
)

// Service управляет профилями клиентов: баллами лояльности, историей
// заказов и уровнем членства.
type Service struct {
	customers domain.CustomerRepository
	logger    *log.Entry
}

// NewService создаёт сервис клиентов.
func NewService(customers domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customer")
	}
	return &Service{customers: customers, logger: logger}
}

// AddCustomer регистрирует нового клиента.
func (s *Service) AddCustomer(customer domain.Customer) error {
	if err := s.customers.Add(customer); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"tier":        customer.Tier,
	}).Info("customer registered")
	return nil
}

// GetCustomer возвращает клиента по идентификатору.
func (s *Service) GetCustomer(id string) (domain.Customer, error) {
	return s.customers.Get(id)
}

// AddLoyaltyPoints начисляет клиенту баллы лояльности.
func (s *Service) AddLoyaltyPoints(customerID string, points int) error {
	return s.adjustPoints(customerID, points)
}

// SpendLoyaltyPoints списывает баллы; баланс не может уйти в минус.
func (s *Service) SpendLoyaltyPoints(customerID string, points int) error {
	return s.adjustPoints(customerID, -points)
}

func (s *Service) adjustPoints(customerID string, delta int) error {
	customer, err := s.customers.Get(customerID)
	if err != nil {
		return err
	}
	if err := customer.AddLoyaltyPoints(delta); err != nil {
		return err
	}
	return s.customers.Update(customer)
}

// AddOrderToHistory добавляет заказ в историю клиента.
func (s *Service) AddOrderToHistory(customerID string, orderID int64) error {
	customer, err := s.customers.Get(customerID)
	if err != nil {
		return err
	}
	customer.AppendOrder(orderID)
	return s.customers.Update(customer)
}

// UpgradeMembership переводит клиента на указанный уровень.
// Понижение уровня не предусмотрено: апгрейд только вверх по рангу.
func (s *Service) UpgradeMembership(customerID string, tier domain.MembershipTier) error {
	customer, err := s.customers.Get(customerID)
	if err != nil {
		return err
	}
	if customer.Tier == domain.TierSuspended {
		return domain.ErrCustomerSuspended
	}
	if tier.Rank() <= customer.Tier.Rank() {
		return nil
	}
	previous := customer.Tier
	customer.Tier = tier
	if err := s.customers.Update(customer); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"customer_id": customerID,
		"from":        previous,
		"to":          tier,
	}).Info("membership upgraded")
	return nil
}

// AutoUpgradeMembership поднимает уровень по пожизненной выручке
// клиента: от $1000 — GOLD для любого уровня; от $500 и $200 —
// SILVER и BRONZE соответственно, но только со стартового STANDARD.
func (s *Service) AutoUpgradeMembership(customerID string, lifetimeValue domain.Money) error {
	customer, err := s.customers.Get(customerID)
	if err != nil {
		return err
	}
	if customer.Tier == domain.TierSuspended {
		return domain.ErrCustomerSuspended
	}

	target := customer.Tier
	switch {
	case lifetimeValue.GreaterOrEqual(goldLifetimeThreshold):
		target = domain.TierGold
	case lifetimeValue.GreaterOrEqual(silverLifetimeThreshold) && customer.Tier == domain.TierStandard:
		target = domain.TierSilver
	case lifetimeValue.GreaterOrEqual(bronzeLifetimeThreshold) && customer.Tier == domain.TierStandard:
		target = domain.TierBronze
	}
	if target == customer.Tier {
		return nil
	}
	return s.UpgradeMembership(customerID, target)
}
