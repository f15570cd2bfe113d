package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burgershop/internal/messaging/kafka"
)

// newKafkaProducer создаёт producer, если брокеры заданы.
// Ошибка подключения не фатальна: касса продолжает работать без событий.
var newKafkaProducer = kafka.NewProducer

// initKafkaProducer возвращает nil, если Kafka не настроена или недоступна.
func initKafkaProducer(cfg Config, logger *log.Entry) *kafka.Producer {
	if !cfg.KafkaEnabled() {
		return nil
	}

	producer, err := newKafkaProducer(cfg.KafkaBrokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil
	}

	logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
	return producer
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
