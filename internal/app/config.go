package app

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix задаёт префикс переменных окружения (BURGERSHOP_GRPC_ADDR и т.д.).
const EnvPrefix = "burgershop"

// Config описывает настройки запуска приложения.
type Config struct {
	GRPCAddr     string   `envconfig:"GRPC_ADDR" default:":50051"`
	MetricsAddr  string   `envconfig:"METRICS_ADDR" default:":9090"`
	LogLevel     string   `envconfig:"LOG_LEVEL" default:"info"`
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"burgershop.order.events"`
}

// DefaultConfig возвращает базовые адреса для gRPC и HTTP-метрик.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:    ":50051",
		MetricsAddr: ":9090",
		LogLevel:    "info",
		KafkaTopic:  "burgershop.order.events",
	}
}

// LoadConfig читает конфигурацию из переменных окружения BURGERSHOP_*.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет, что обязательные значения заданы.
func (c Config) Validate() error {
	if c.GRPCAddr == "" {
		return fmt.Errorf("grpc address is required")
	}
	if c.MetricsAddr == "" {
		return fmt.Errorf("metrics address is required")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// KafkaEnabled сообщает, настроена ли публикация событий в Kafka.
func (c Config) KafkaEnabled() bool {
	for _, broker := range c.KafkaBrokers {
		if broker != "" {
			return true
		}
	}
	return false
}
