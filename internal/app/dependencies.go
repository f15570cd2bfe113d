package app

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
	"github.com/vladislavdragonenkov/burgershop/internal/health"
	"github.com/vladislavdragonenkov/burgershop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/burgershop/internal/metrics"
	"github.com/vladislavdragonenkov/burgershop/internal/service/orders"
	"github.com/vladislavdragonenkov/burgershop/internal/storage/memory"
	"github.com/vladislavdragonenkov/burgershop/internal/version"
)

// Публикация событий отключается на минуту после пяти неудачных событий подряд.
const (
	publishBreakerFailures = 5
	publishBreakerReset    = time.Minute
)

// Dependencies содержит все зависимости приложения. Одно хранилище на процесс:
// счётчики ID принадлежат ему, а не глобальному состоянию.
type Dependencies struct {
	Store    domain.OrderStore
	Timeline domain.TimelineRepository
	Metrics  *metrics.OrderMetrics
	Producer *kafka.Producer
	Service  *orders.Service
	Health   *health.Handler
	Logger   *log.Entry
}

// NewDependencies создаёт и связывает зависимости по конфигурации.
func NewDependencies(cfg Config, m *metrics.OrderMetrics, logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if m == nil {
		m = metrics.NewOrderMetrics()
	}

	store := memory.NewOrderStore()
	timeline := memory.NewTimelineRepository()
	producer := initKafkaProducer(cfg, logger)

	options := []orders.Option{
		orders.WithLogger(logger.WithField("layer", "orders")),
		orders.WithMetrics(m),
	}
	if producer != nil {
		publisher := kafka.NewRetryingPublisher(
			kafka.NewOrderEventPublisher(producer, cfg.KafkaTopic),
			kafka.DefaultRetryConfig(),
			kafka.NewCircuitBreaker(publishBreakerFailures, publishBreakerReset, logger.WithField("component", "kafka-breaker")),
			logger.WithField("component", "kafka-retry"),
		)
		options = append(options, orders.WithPublisher(publisher))
	}

	healthHandler := health.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("order-store", health.NewStoreChecker(store))
	if producer == nil {
		healthHandler.RegisterChecker("kafka", health.NewStaticChecker("kafka", health.StatusDegraded, "order events are not published"))
	} else {
		healthHandler.RegisterChecker("kafka", health.NewStaticChecker("kafka", health.StatusHealthy, ""))
	}

	return &Dependencies{
		Store:    store,
		Timeline: timeline,
		Metrics:  m,
		Producer: producer,
		Service:  orders.NewService(store, timeline, options...),
		Health:   healthHandler,
		Logger:   logger,
	}
}

// Close освобождает внешние ресурсы.
func (d *Dependencies) Close() {
	closeKafka(d.Producer, d.Logger)
}
