package domain

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	Add(customer Customer) error
	// Get возвращает клиента или ErrCustomerNotFound.
	Get(id string) (Customer, error)
	Update(customer Customer) error
	GetAll() (map[string]Customer, error)
	Exists(id string) bool
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Add(product Product) error
	// Get возвращает товар или ErrProductNotFound.
	Get(id string) (Product, error)
	Update(product Product) error
	GetAll() (map[string]Product, error)
	Exists(id string) bool
	// DeductStock атомарно проверяет остаток и списывает qty единиц.
	// Проверка и списание выполняются под одной блокировкой, чтобы два
	// параллельных заказа не списали один и тот же остаток.
	DeductStock(id string, qty int) (Product, error)
	// RestoreStock возвращает qty единиц на остаток (отмена заказа,
	// пополнение).
	RestoreStock(id string, qty int) (Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	Add(order Order) error
	// Get возвращает заказ или ErrOrderNotFound.
	Get(id int64) (Order, error)
	Update(order Order) error
	GetAll() (map[int64]Order, error)
	// NextID резервирует следующий последовательный идентификатор.
	// Идентификаторы монотонно растут, начиная с 1.
	NextID() (int64, error)
}

// PromotionRepository описывает требования к хранилищу промокодов.
// Ключом выступает код промоакции.
type PromotionRepository interface {
	Add(promotion Promotion) error
	// GetByCode возвращает промоакцию или ErrPromotionNotFound.
	GetByCode(code string) (Promotion, error)
	Update(promotion Promotion) error
	GetAll() (map[string]Promotion, error)
}

// SupplierRepository описывает требования к хранилищу поставщиков.
type SupplierRepository interface {
	Add(supplier Supplier) error
	// Get возвращает поставщика или ErrSupplierNotFound.
	Get(id string) (Supplier, error)
	Update(supplier Supplier) error
	GetAll() (map[string]Supplier, error)
}

// ShipmentRepository описывает требования к хранилищу отправлений.
type ShipmentRepository interface {
	Add(shipment Shipment) error
	// FindByTracking возвращает отправление или ErrShipmentNotFound.
	FindByTracking(trackingNumber string) (Shipment, error)
	FindByOrder(orderID int64) ([]Shipment, error)
	Update(shipment Shipment) error
	NextID() (int64, error)
}
