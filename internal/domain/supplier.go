package domain

// Supplier описывает поставщика товаров.
type Supplier struct {
	ID   string
	Name string
	// Email используется для уведомлений о низком остатке.
	Email Email
	// ReliabilityScore — оценка надёжности в диапазоне 0..1.
	ReliabilityScore float64
}

// NewSupplier валидирует входные данные и создаёт поставщика.
func NewSupplier(id, name, email string, reliability float64) (Supplier, error) {
	if name == "" {
		return Supplier{}, ErrNameRequired
	}
	emailVO, err := NewEmail(email)
	if err != nil {
		return Supplier{}, err
	}
	if reliability < 0 || reliability > 1 {
		return Supplier{}, ErrReliabilityRange
	}
	return Supplier{
		ID:               id,
		Name:             name,
		Email:            emailVO,
		ReliabilityScore: reliability,
	}, nil
}

// SetReliability обновляет оценку надёжности с проверкой диапазона.
func (s *Supplier) SetReliability(score float64) error {
	if score < 0 || score > 1 {
		return ErrReliabilityRange
	}
	s.ReliabilityScore = score
	return nil
}
