package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Причины отказа в изменении заказа (значения label reason).
const (
	RejectReasonNotFound   = "not_found"
	RejectReasonNotMutable = "not_mutable"
)

// OrderMetrics содержит метрики работы кассы.
type OrderMetrics struct {
	// Счётчики операций
	ordersPlaced    prometheus.Counter
	burgersOrdered  prometheus.Counter
	quantityUpdates prometheus.Counter
	statusChanges   *prometheus.CounterVec
	rejectedChanges *prometheus.CounterVec
	timelineEvents  prometheus.Counter
	publishedEvents *prometheus.CounterVec

	// Gauge заказов по текущему статусу
	ordersByStatus *prometheus.GaugeVec
}

// NewOrderMetrics регистрирует метрики в DefaultRegisterer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer регистрирует метрики в указанном registry
// (в тестах: в изолированном prometheus.NewRegistry()).
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burgershop_orders_placed_total",
			Help: "Total number of orders placed",
		}),
		burgersOrdered: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burgershop_burgers_ordered_total",
			Help: "Total number of burgers in placed orders at placement time",
		}),
		quantityUpdates: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burgershop_quantity_updates_total",
			Help: "Total number of successful order quantity updates",
		}),
		statusChanges: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "burgershop_status_changes_total",
			Help: "Total number of successful order status changes by target status",
		}, []string{"status"}),
		rejectedChanges: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "burgershop_rejected_changes_total",
			Help: "Total number of rejected order mutations by operation and reason",
		}, []string{"operation", "reason"}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burgershop_timeline_events_total",
			Help: "Total number of timeline events recorded",
		}),
		publishedEvents: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "burgershop_order_events_published_total",
			Help: "Total number of order events handed to the publisher by result",
		}, []string{"result"}),
		ordersByStatus: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "burgershop_orders",
			Help: "Current number of orders by status",
		}, []string{"status"}),
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

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderPlaced учитывает новый заказ и его количество.
func (m *OrderMetrics) RecordOrderPlaced(quantity int, status string) {
	m.ordersPlaced.Inc()
	if quantity > 0 {
		m.burgersOrdered.Add(float64(quantity))
	}
	m.ordersByStatus.WithLabelValues(status).Inc()
}

// RecordQuantityUpdated увеличивает счётчик изменений количества.
func (m *OrderMetrics) RecordQuantityUpdated() {
	m.quantityUpdates.Inc()
}

// RecordStatusChanged переносит заказ между статусами в gauge.
func (m *OrderMetrics) RecordStatusChanged(from, to string) {
	m.statusChanges.WithLabelValues(to).Inc()
	m.ordersByStatus.WithLabelValues(from).Dec()
	m.ordersByStatus.WithLabelValues(to).Inc()
}

// RecordRejected фиксирует отказ в изменении заказа.
func (m *OrderMetrics) RecordRejected(operation, reason string) {
	m.rejectedChanges.WithLabelValues(operation, reason).Inc()
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *OrderMetrics) RecordTimelineEvent() {
	m.timelineEvents.Inc()
}

// RecordEventPublished учитывает результат публикации события.
func (m *OrderMetrics) RecordEventPublished(ok bool) {
	result := "success"
	if !ok {
		result = "error"
	}
	m.publishedEvents.WithLabelValues(result).Inc()
}
