package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
	"github.com/vladislavdragonenkov/ecom/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/ecom/internal/service/customer"
	"github.com/vladislavdragonenkov/ecom/internal/service/inventory"
	"github.com/vladislavdragonenkov/ecom/internal/service/notification"
	"github.com/vladislavdragonenkov/ecom/internal/service/order"
	"github.com/vladislavdragonenkov/ecom/internal/service/payment"
	"github.com/vladislavdragonenkov/ecom/internal/service/pricing"
	"github.com/vladislavdragonenkov/ecom/internal/service/promotion"
	"github.com/vladislavdragonenkov/ecom/internal/service/shipment"
	"github.com/vladislavdragonenkov/ecom/internal/service/shipping"
	"github.com/vladislavdragonenkov/ecom/internal/service/supplier"
	"github.com/vladislavdragonenkov/ecom/internal/storage/memory"
	"github.com/vladislavdragonenkov/ecom/internal/storage/postgres"
)

// Dependencies содержит все сервисы и репозитории приложения.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository

	Orders        *order.Service
	CustomerSvc   *customer.Service
	InventorySvc  *inventory.Service
	PromotionSvc  *promotion.Service
	SupplierSvc   *supplier.Service
	ShipmentSvc   *shipment.Service
	PaymentSvc    *payment.Service
	PostgresStore *postgres.Store

	Logger *log.Entry
}

// NewDependencies создаёт и связывает все зависимости приложения.
// Репозиторий заказов живёт в PostgreSQL, если задан DSN, остальные
// хранилища — in-memory.
func NewDependencies(ctx context.Context, cfg Config, kafkaProducer *kafka.Producer, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	promotions := memory.NewPromotionRepository()
	suppliers := memory.NewSupplierRepository()
	shipments := memory.NewShipmentRepository()

	var (
		orders domain.OrderRepository
		store  *postgres.Store
	)
	if cfg.PostgresDSN != "" {
		var err error
		store, err = postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		orders = postgres.NewOrderRepository(store)
		logger.Info("orders stored in postgres")
	} else {
		orders = memory.NewOrderRepository()
	}

	notifications := notification.NewService(logger.WithField("component", "notification"))
	paymentSvc := payment.NewService(logger.WithField("component", "payment"))
	inventorySvc := inventory.NewService(products, suppliers, logger.WithField("component", "inventory"))
	promotionSvc := promotion.NewService(promotions, logger.WithField("component", "promotion"))
	supplierSvc := supplier.NewService(suppliers, products, notifications, logger.WithField("component", "supplier"))
	shipmentSvc := shipment.NewService(shipments, logger.WithField("component", "shipment"))
	customerSvc := customer.NewService(customers, logger.WithField("component", "customer"))

	deps := order.Deps{
		Orders:        orders,
		Products:      products,
		Customers:     customers,
		Pricing:       pricing.NewService(logger.WithField("component", "pricing")),
		Payments:      paymentSvc,
		Shipping:      shipping.NewService(logger.WithField("component", "shipping")),
		Shipments:     shipmentSvc,
		Inventory:     inventorySvc,
		Promotions:    promotionSvc,
		Notifications: notifications,
		Suppliers:     supplierSvc,
	}

	var orderSvc *order.Service
	if kafkaProducer != nil {
		orderSvc = order.NewServiceWithKafka(deps, kafkaProducer, logger.WithField("component", "order"))
	} else {
		orderSvc = order.NewService(deps, logger.WithField("component", "order"))
	}

	return &Dependencies{
		Customers:     customers,
		Products:      products,
		Orders:        orderSvc,
		CustomerSvc:   customerSvc,
		InventorySvc:  inventorySvc,
		PromotionSvc:  promotionSvc,
		SupplierSvc:   supplierSvc,
		ShipmentSvc:   shipmentSvc,
		PaymentSvc:    paymentSvc,
		PostgresStore: store,
		Logger:        logger,
	}, nil
}

// Close освобождает внешние ресурсы зависимостей.
func (d *Dependencies) Close() {
	if d.PostgresStore != nil {
		if err := d.PostgresStore.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
