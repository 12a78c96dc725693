package order

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
	"github.com/vladislavdragonenkov/ecom/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ecom/internal/metrics"
	"github.com/vladislavdragonenkov/ecom/internal/service/inventory"
	"github.com/vladislavdragonenkov/ecom/internal/service/payment"
	"github.com/vladislavdragonenkov/ecom/internal/service/pricing"
	"github.com/vladislavdragonenkov/ecom/internal/service/promotion"
	"github.com/vladislavdragonenkov/ecom/internal/service/shipping"
)

// Остаток, при котором после продажи поставщику уходит сигнал о дозаказе.
const lowStockThreshold = 5

// ItemRequest — запрошенная позиция заказа.
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// CreateOrderRequest — входные данные оформления заказа.
type CreateOrderRequest struct {
	CustomerID     string
	Items          []ItemRequest
	ShippingMethod domain.ShippingMethod
	PromoCode      string
	Payment        domain.PaymentInfo
}

// Deps — зависимости оркестратора заказов.
type Deps struct {
	Orders        domain.OrderRepository
	Products      domain.ProductRepository
	Customers     domain.CustomerRepository
	Pricing       *pricing.Service
	Payments      *payment.Service
	Shipping      *shipping.Service
	Shipments     domain.ShipmentService
	Inventory     *inventory.Service
	Promotions    *promotion.Service
	Notifications domain.NotificationService
	Suppliers     domain.SupplierService
}

// Service — оркестратор жизненного цикла заказа. Проводит заказ через
// пайплайн создания и управляет машиной состояний
// pending → shipped → delivered / cancelled.
type Service struct {
	deps          Deps
	logger        *log.Entry
	metrics       *metrics.OrderMetrics
	kafkaProducer *kafka.Producer // опциональный Kafka producer для событий заказов
	now           func() time.Time
}

// NewService создаёт рабочий экземпляр оркестратора.
func NewService(deps Deps, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order")
	}
	return &Service{
		deps:    deps,
		logger:  logger,
		metrics: metrics.NewOrderMetrics(),
		now:     time.Now,
	}
}

// NewServiceWithKafka создаёт оркестратор с Kafka producer для
// event-driven интеграций.
func NewServiceWithKafka(deps Deps, kafkaProducer *kafka.Producer, logger *log.Entry) *Service {
	svc := NewService(deps, logger)
	svc.kafkaProducer = kafkaProducer
	return svc
}

// NewServiceWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewServiceWithoutMetrics(deps Deps, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order")
	}
	return &Service{
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени (для тестов).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateOrder проводит заказ через весь пайплайн: валидация клиента и
// остатков, цепочка скидок, доставка и налог, оплата, списание остатков,
// сохранение заказа, начисление баллов и уведомления.
//
// Платёж идёт первым из шагов с побочными эффектами: до успешной оплаты
// ни остатки, ни баллы, ни репозиторий заказов не меняются. Сбой после
// оплаты компенсируется возвратом средств и восстановлением остатков.
func (s *Service) CreateOrder(req CreateOrderRequest) (domain.Order, error) {
	start := s.now()
	if s.metrics != nil {
		s.metrics.RecordOrderInFlightStarted()
	}
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOrderInFlightFinished()
			s.metrics.RecordOrderDuration(time.Since(start))
		}
	}()

	customer, err := s.deps.Customers.Get(req.CustomerID)
	if err != nil {
		return s.failCreate(err, "customer lookup failed", log.Fields{"customer_id": req.CustomerID})
	}
	if customer.Tier == domain.TierSuspended {
		return s.failCreate(domain.ErrCustomerSuspended, "suspended customer", log.Fields{"customer_id": customer.ID})
	}

	items, products, err := s.resolveItems(req.Items)
	if err != nil {
		return s.failCreate(err, "item validation failed", log.Fields{"customer_id": customer.ID})
	}

	var promoPtr *domain.Promotion
	if req.PromoCode != "" {
		promo, err := s.deps.Promotions.Resolve(req.PromoCode)
		if err != nil {
			// Недействительный промокод не срывает заказ: скидка просто
			// не применяется.
			s.logger.WithFields(log.Fields{
				"customer_id": customer.ID,
				"promo_code":  req.PromoCode,
			}).Warn("promo code not applied")
		} else {
			promoPtr = &promo
		}
	}

	result, err := s.deps.Pricing.ApplyAllDiscounts(customer, items, products, promoPtr)
	if err != nil {
		return s.failCreate(err, "pricing failed", log.Fields{"customer_id": customer.ID})
	}
	if promoPtr != nil {
		if err := s.deps.Promotions.IncrementUsage(promoPtr.Code); err != nil {
			s.logger.WithError(err).WithField("promo_code", promoPtr.Code).Warn("failed to increment promo usage")
		}
	}

	shippingCost, err := s.deps.Shipping.Cost(req.ShippingMethod, result.TotalWeightKg(), result.SubtotalAfterLoyalty(), customer.Tier)
	if err != nil {
		return s.failCreate(err, "shipping cost failed", log.Fields{"customer_id": customer.ID})
	}
	tax := s.deps.Shipping.Tax(result.SubtotalAfterLoyalty(), customer.Address)
	total := result.SubtotalAfterLoyalty().Add(shippingCost).Add(tax)

	orderID, err := s.deps.Orders.NextID()
	if err != nil {
		return s.failCreate(err, "order id allocation failed", nil)
	}

	if err := s.deps.Payments.ProcessPayment(orderID, total, req.Payment); err != nil {
		if s.metrics != nil {
			s.metrics.RecordPaymentDeclined()
		}
		return s.failCreate(err, "payment failed", log.Fields{
			"customer_id": customer.ID,
			"order_id":    orderID,
			"total":       total.Amount(),
		})
	}

	updatedProducts, err := s.deductInventory(orderID, items)
	if err != nil {
		return s.failCreate(err, "inventory deduction failed", log.Fields{
			"customer_id": customer.ID,
			"order_id":    orderID,
		})
	}

	if result.LoyaltyPointsUsed() > 0 {
		if err := customer.AddLoyaltyPoints(-result.LoyaltyPointsUsed()); err == nil {
			if err := s.deps.Customers.Update(customer); err != nil {
				s.logger.WithError(err).WithField("customer_id", customer.ID).Error("failed to persist spent loyalty points")
			}
		}
	}

	order := domain.Order{
		ID:            orderID,
		CustomerID:    customer.ID,
		Items:         items,
		Status:        domain.OrderStatusPending,
		CreatedAt:     s.now().UTC(),
		TotalPrice:    total,
		ShippingCost:  shippingCost,
		PaymentMethod: req.Payment.Method,
	}
	if err := s.deps.Orders.Add(order); err != nil {
		return s.failCreate(err, "order persistence failed", log.Fields{"order_id": orderID})
	}

	s.awardLoyaltyAndHistory(customer.ID, orderID, result.OriginalSubtotal())
	s.deps.Notifications.SendOrderConfirmation(customer, order)
	s.notifyLowStock(updatedProducts)

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
		s.metrics.RecordOrderTotal(total.Amount())
	}
	s.publishOrderEvent(kafka.EventTypeOrderCreated, order, map[string]interface{}{
		"total":    total.Amount(),
		"shipping": shippingCost.Amount(),
		"items":    len(order.Items),
	})

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": customer.ID,
		"total":       total.Amount(),
		"items":       len(order.Items),
	}).Info("order created")
	return order, nil
}

// resolveItems валидирует запрошенные позиции и возвращает позиции заказа
// с зафиксированной ценой на момент оформления.
func (s *Service) resolveItems(requested []ItemRequest) ([]domain.OrderItem, map[string]domain.Product, error) {
	if len(requested) == 0 {
		return nil, nil, domain.ErrItemsRequired
	}

	items := make([]domain.OrderItem, 0, len(requested))
	products := make(map[string]domain.Product, len(requested))
	for _, req := range requested {
		if req.Quantity <= 0 {
			return nil, nil, domain.ErrItemQtyInvalid
		}
		product, err := s.deps.Products.Get(req.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if product.QuantityAvailable < req.Quantity {
			return nil, nil, domain.ErrInsufficientStock
		}
		products[product.ID] = product
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
		})
	}
	return items, products, nil
}

// deductInventory списывает остатки по всем позициям. Сбой на середине
// компенсируется: уже списанные позиции возвращаются, платёж
// рефандится.
func (s *Service) deductInventory(orderID int64, items []domain.OrderItem) ([]domain.Product, error) {
	deducted := make([]domain.OrderItem, 0, len(items))
	updated := make([]domain.Product, 0, len(items))
	for _, item := range items {
		product, err := s.deps.Inventory.DeductForSale(item.ProductID, item.Quantity)
		if err != nil {
			for _, prev := range deducted {
				if _, restoreErr := s.deps.Inventory.RestoreForCancellation(prev.ProductID, prev.Quantity, orderID); restoreErr != nil {
					s.logger.WithError(restoreErr).WithField("product_id", prev.ProductID).Error("compensation restore failed")
				}
			}
			if refundErr := s.deps.Payments.ProcessRefund(orderID, "inventory deduction failed"); refundErr != nil {
				s.logger.WithError(refundErr).WithField("order_id", orderID).Error("compensation refund failed")
			}
			return nil, err
		}
		deducted = append(deducted, item)
		updated = append(updated, product)
	}
	return updated, nil
}

// awardLoyaltyAndHistory добавляет заказ в историю клиента и начисляет
// по одному баллу за каждый доллар исходного итога (дробная часть
// отбрасывается).
func (s *Service) awardLoyaltyAndHistory(customerID string, orderID int64, originalSubtotal domain.Money) {
	customer, err := s.deps.Customers.Get(customerID)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Error("failed to reload customer for loyalty award")
		return
	}
	customer.AppendOrder(orderID)
	earned := int(math.Floor(originalSubtotal.Amount()))
	if earned > 0 {
		if err := customer.AddLoyaltyPoints(earned); err != nil {
			s.logger.WithError(err).WithField("customer_id", customerID).Error("loyalty award failed")
		}
	}
	if err := s.deps.Customers.Update(customer); err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Error("failed to persist loyalty award")
	}
}

// notifyLowStock шлёт поставщикам сигналы о дозаказе для товаров,
// остаток которых после продажи упал ниже порога.
func (s *Service) notifyLowStock(products []domain.Product) {
	for _, product := range products {
		if product.QuantityAvailable >= lowStockThreshold {
			continue
		}
		s.deps.Suppliers.NotifySupplierReorder(product.ID, product.SupplierID)
		s.publishInventoryEvent(product)
	}
}

// CancelOrder отменяет заказ в статусе pending: возвращает остатки,
// рефандит платёж и уведомляет клиента. Для любого другого статуса
// возвращает ErrOrderNotPending, ничего не меняя.
func (s *Service) CancelOrder(orderID int64, reason string) error {
	order, err := s.deps.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusPending {
		return domain.ErrOrderNotPending
	}

	for _, item := range order.Items {
		if _, err := s.deps.Inventory.RestoreForCancellation(item.ProductID, item.Quantity, orderID); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"order_id":   orderID,
				"product_id": item.ProductID,
			}).Error("stock restore on cancel failed")
		}
	}
	if err := s.deps.Payments.ProcessRefund(orderID, reason); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("refund on cancel failed")
	} else if s.metrics != nil {
		s.metrics.RecordRefundProcessed()
	}

	order.Status = domain.OrderStatusCancelled
	if err := s.deps.Orders.Update(order); err != nil {
		return err
	}

	if customer, err := s.deps.Customers.Get(order.CustomerID); err == nil {
		s.deps.Notifications.SendOrderCancellation(customer, orderID, reason)
	}
	if s.metrics != nil {
		s.metrics.RecordOrderCanceled()
	}
	s.publishOrderEvent(kafka.EventTypeOrderCanceled, order, map[string]interface{}{
		"reason": reason,
	})

	s.logger.WithFields(log.Fields{
		"order_id": orderID,
		"reason":   reason,
	}).Info("order canceled")
	return nil
}

// UpdateOrderStatus переводит заказ в новый статус. Переход, не
// предусмотренный машиной состояний, выполняется с предупреждением в
// логе: статусы исторически приходили и из внешних систем. Переход в
// shipped без трек-номера создаёт отправление.
func (s *Service) UpdateOrderStatus(orderID int64, status domain.OrderStatus) error {
	order, err := s.deps.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if order.Status == status {
		return nil
	}
	if !order.Status.CanTransitionTo(status) {
		s.logger.WithFields(log.Fields{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		}).Warn("order status transition outside the state machine")
	}

	if status == domain.OrderStatusShipped && order.TrackingNumber == "" {
		customer, err := s.deps.Customers.Get(order.CustomerID)
		if err != nil {
			return err
		}
		trackingNumber, err := s.deps.Shipments.CreateShipment(orderID, domain.ShippingStandard, customer.Address.Value())
		if err != nil {
			return err
		}
		order.TrackingNumber = trackingNumber
		s.deps.Notifications.SendShipmentNotification(customer, orderID)
	}

	order.Status = status
	if err := s.deps.Orders.Update(order); err != nil {
		return err
	}

	if customer, err := s.deps.Customers.Get(order.CustomerID); err == nil {
		s.deps.Notifications.SendStatusUpdate(customer, orderID, status)
	}
	s.publishOrderEvent(kafka.EventTypeOrderStatusChanged, order, nil)
	return nil
}

// ShipOrder — явный переход заказа в статус shipped с созданием
// отправления указанным способом доставки.
func (s *Service) ShipOrder(orderID int64, method domain.ShippingMethod) (string, error) {
	order, err := s.deps.Orders.Get(orderID)
	if err != nil {
		return "", err
	}
	if order.Status != domain.OrderStatusPending {
		return "", domain.ErrOrderNotPending
	}
	customer, err := s.deps.Customers.Get(order.CustomerID)
	if err != nil {
		return "", err
	}

	trackingNumber, err := s.deps.Shipments.CreateShipment(orderID, method, customer.Address.Value())
	if err != nil {
		return "", err
	}
	order.TrackingNumber = trackingNumber
	order.Status = domain.OrderStatusShipped
	if err := s.deps.Orders.Update(order); err != nil {
		return "", err
	}

	s.deps.Notifications.SendShipmentNotification(customer, orderID)
	s.publishOrderEvent(kafka.EventTypeOrderStatusChanged, order, map[string]interface{}{
		"tracking_number": trackingNumber,
	})
	return trackingNumber, nil
}

// ApplyAdditionalDiscount применяет ручную процентную скидку к итогу
// заказа. Допускается только для заказов в статусе pending.
func (s *Service) ApplyAdditionalDiscount(orderID int64, percent float64) (domain.Order, error) {
	order, err := s.deps.Orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status != domain.OrderStatusPending {
		return domain.Order{}, domain.ErrOrderNotPending
	}

	discounted, err := s.deps.Pricing.AdditionalDiscount(order.TotalPrice, percent)
	if err != nil {
		return domain.Order{}, err
	}
	order.TotalPrice = discounted
	if err := s.deps.Orders.Update(order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(orderID int64) (domain.Order, error) {
	return s.deps.Orders.Get(orderID)
}

// GetCustomerOrders возвращает заказы клиента в порядке их создания.
func (s *Service) GetCustomerOrders(customerID string) ([]domain.Order, error) {
	customer, err := s.deps.Customers.Get(customerID)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(customer.OrderHistory))
	for _, orderID := range customer.OrderHistory {
		order, err := s.deps.Orders.Get(orderID)
		if err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"customer_id": customerID,
				"order_id":    orderID,
			}).Warn("order from history not found")
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (s *Service) failCreate(err error, msg string, fields log.Fields) (domain.Order, error) {
	if s.metrics != nil {
		s.metrics.RecordOrderFailed()
	}
	entry := s.logger
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.WithError(err).Warn(msg)
	return domain.Order{}, err
}

// publishOrderEvent публикует событие заказа в Kafka (если producer настроен)
func (s *Service) publishOrderEvent(eventType kafka.EventType, order domain.Order, metadata map[string]interface{}) {
	if s.kafkaProducer == nil {
		return // Kafka не настроен, пропускаем
	}

	event := kafka.NewOrderEvent(eventType, order.ID, order.CustomerID, string(order.Status), metadata)
	if err := s.kafkaProducer.PublishEvent(kafka.TopicOrderEvents, order.CustomerID, event); err != nil {
		// Логируем ошибку, но не прерываем обработку - Kafka опциональный
		s.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"order_id":   order.ID,
		}).Warn("failed to publish order event to kafka")
	}
}

func (s *Service) publishInventoryEvent(product domain.Product) {
	if s.kafkaProducer == nil {
		return
	}

	event := kafka.NewInventoryEvent(kafka.EventTypeInventoryLowStock, product.ID, product.QuantityAvailable, map[string]interface{}{
		"supplier_id": product.SupplierID,
	})
	if err := s.kafkaProducer.PublishEvent(kafka.TopicInventoryEvents, product.ID, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"product_id": product.ID,
		}).Warn("failed to publish inventory event to kafka")
	}
}
