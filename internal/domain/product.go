package domain

// Product описывает товар каталога. Остаток мутируется инвентарным
// сервисом при продаже, пополнении и отмене заказа.
type Product struct {
	ID                string
	Name              string
	Price             Money
	QuantityAvailable int
	Category          string
	WeightKg          float64
	SupplierID        string
	DiscountEligible  bool
}

// NewProduct валидирует входные данные и создаёт товар.
func NewProduct(id, name string, price float64, quantity int, category string, weightKg float64, supplierID string) (Product, error) {
	if name == "" {
		return Product{}, ErrNameRequired
	}
	priceVO, err := NewMoney(price)
	if err != nil {
		return Product{}, err
	}
	if quantity < 0 {
		return Product{}, ErrQuantityNegative
	}
	if weightKg < 0 {
		return Product{}, ErrWeightNegative
	}
	return Product{
		ID:                id,
		Name:              name,
		Price:             priceVO,
		QuantityAvailable: quantity,
		Category:          category,
		WeightKg:          weightKg,
		SupplierID:        supplierID,
		DiscountEligible:  true,
	}, nil
}

// SetPrice обновляет цену с сохранением инварианта неотрицательности.
func (p *Product) SetPrice(price float64) error {
	priceVO, err := NewMoney(price)
	if err != nil {
		return err
	}
	p.Price = priceVO
	return nil
}
