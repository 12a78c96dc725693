package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики пайплайна обработки заказов.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated    prometheus.Counter
	ordersFailed     prometheus.Counter
	ordersCanceled   prometheus.Counter
	paymentsDeclined prometheus.Counter
	refundsProcessed prometheus.Counter

	// Гистограммы
	orderDuration prometheus.Histogram
	orderTotal    prometheus.Histogram
	stepDuration  *prometheus.HistogramVec

	// Gauge для заказов в обработке
	ordersInFlight prometheus.Gauge
}

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecom_orders_created_total",
			Help: "Total number of orders created successfully",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecom_orders_failed_total",
			Help: "Total number of order creation attempts that failed",
		}),
		ordersCanceled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecom_orders_canceled_total",
			Help: "Total number of orders canceled",
		}),
		paymentsDeclined: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecom_payments_declined_total",
			Help: "Total number of declined payments",
		}),
		refundsProcessed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ecom_refunds_processed_total",
			Help: "Total number of refunds processed",
		}),
		orderDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "ecom_order_creation_duration_seconds",
			Help:    "Duration of the order creation pipeline in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		orderTotal: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "ecom_order_total_dollars",
			Help:    "Final order total in dollars, including shipping and tax",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		stepDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "ecom_order_step_duration_seconds",
			Help:    "Duration of individual order pipeline steps in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"step"}),
		ordersInFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "ecom_orders_in_flight",
			Help: "Number of orders currently going through the creation pipeline",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик успешно созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderFailed увеличивает счётчик неудачных попыток создания.
func (m *OrderMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordOrderCanceled увеличивает счётчик отменённых заказов.
func (m *OrderMetrics) RecordOrderCanceled() {
	m.ordersCanceled.Inc()
}

// RecordPaymentDeclined увеличивает счётчик отклонённых платежей.
func (m *OrderMetrics) RecordPaymentDeclined() {
	m.paymentsDeclined.Inc()
}

// RecordRefundProcessed увеличивает счётчик проведённых возвратов.
func (m *OrderMetrics) RecordRefundProcessed() {
	m.refundsProcessed.Inc()
}

// RecordOrderDuration записывает время прохождения пайплайна.
func (m *OrderMetrics) RecordOrderDuration(duration time.Duration) {
	m.orderDuration.Observe(duration.Seconds())
}

// RecordOrderTotal записывает итоговую сумму заказа.
func (m *OrderMetrics) RecordOrderTotal(total float64) {
	m.orderTotal.Observe(total)
}

// RecordStepDuration записывает время выполнения шага пайплайна.
func (m *OrderMetrics) RecordStepDuration(step string, duration time.Duration) {
	m.stepDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordOrderInFlightStarted увеличивает число заказов в обработке.
func (m *OrderMetrics) RecordOrderInFlightStarted() {
	m.ordersInFlight.Inc()
}

// RecordOrderInFlightFinished уменьшает число заказов в обработке.
func (m *OrderMetrics) RecordOrderInFlightFinished() {
	m.ordersInFlight.Dec()
}
