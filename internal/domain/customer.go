package domain

// MembershipTier определяет уровень членства клиента. От уровня зависят
// ставка скидки и льготы по доставке.
type MembershipTier string

const (
	TierStandard  MembershipTier = "standard"
	TierBronze    MembershipTier = "bronze"
	TierSilver    MembershipTier = "silver"
	TierGold      MembershipTier = "gold"
	TierSuspended MembershipTier = "suspended"
)

// ParseMembershipTier преобразует внешнюю строку в уровень членства.
// Неизвестные значения отклоняются на границе, а не внутри сервисов.
func ParseMembershipTier(value string) (MembershipTier, error) {
	switch MembershipTier(value) {
	case TierStandard, TierBronze, TierSilver, TierGold, TierSuspended:
		return MembershipTier(value), nil
	default:
		return "", ErrUnknownTier
	}
}

// Rank возвращает порядковый номер уровня для сравнения при апгрейдах.
// SUSPENDED вне ранжирования и считается нулевым.
func (t MembershipTier) Rank() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	default:
		return 0
	}
}

// Customer агрегирует профиль клиента, баланс баллов лояльности и
// историю заказов.
type Customer struct {
	ID            string
	Name          string
	Email         Email
	Tier          MembershipTier
	Phone         PhoneNumber
	Address       Address
	LoyaltyPoints int
	OrderHistory  []int64
}

// NewCustomer валидирует входные данные и создаёт клиента.
func NewCustomer(id, name, email string, tier MembershipTier, phone, address string) (Customer, error) {
	if name == "" {
		return Customer{}, ErrNameRequired
	}
	emailVO, err := NewEmail(email)
	if err != nil {
		return Customer{}, err
	}
	phoneVO, err := NewPhoneNumber(phone)
	if err != nil {
		return Customer{}, err
	}
	addressVO, err := NewAddress(address)
	if err != nil {
		return Customer{}, err
	}
	return Customer{
		ID:      id,
		Name:    name,
		Email:   emailVO,
		Tier:    tier,
		Phone:   phoneVO,
		Address: addressVO,
	}, nil
}

// AddLoyaltyPoints изменяет баланс баллов; отрицательная дельта списывает.
// Баланс не может стать отрицательным.
func (c *Customer) AddLoyaltyPoints(delta int) error {
	next := c.LoyaltyPoints + delta
	if next < 0 {
		return ErrLoyaltyPointsNegative
	}
	c.LoyaltyPoints = next
	return nil
}

// AppendOrder добавляет заказ в историю клиента.
func (c *Customer) AppendOrder(orderID int64) {
	c.OrderHistory = append(c.OrderHistory, orderID)
}
