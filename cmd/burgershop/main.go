package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vladislavdragonenkov/burgershop/internal/app"
	"github.com/vladislavdragonenkov/burgershop/internal/console"
	"github.com/vladislavdragonenkov/burgershop/internal/metrics"
	"github.com/vladislavdragonenkov/burgershop/internal/version"
)

const (
	flagGRPCAddr     = "grpc-addr"
	flagMetricsAddr  = "metrics-addr"
	flagLogLevel     = "log-level"
	flagKafkaBrokers = "kafka-brokers"
	flagKafkaTopic   = "kafka-topic"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "burgershop",
		Usage:   "касса бургерной: консольное меню и gRPC API",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagGRPCAddr, Usage: "адрес gRPC сервера (BURGERSHOP_GRPC_ADDR)"},
			&cli.StringFlag{Name: flagMetricsAddr, Usage: "адрес HTTP метрик и health (BURGERSHOP_METRICS_ADDR)"},
			&cli.StringFlag{Name: flagLogLevel, Usage: "уровень логирования (BURGERSHOP_LOG_LEVEL)"},
			&cli.StringSliceFlag{Name: flagKafkaBrokers, Usage: "брокеры Kafka для событий заказов (BURGERSHOP_KAFKA_BROKERS)"},
			&cli.StringFlag{Name: flagKafkaTopic, Usage: "topic событий заказов (BURGERSHOP_KAFKA_TOPIC)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "запустить gRPC API и HTTP метрики",
				Action: serveAction,
			},
			{
				Name:   "desk",
				Usage:  "интерактивная касса в терминале",
				Action: deskAction,
			},
			{
				Name:  "version",
				Usage: "показать версию сборки",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintln(c.App.Writer, version.String())
					return err
				},
			},
		},
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return err
	}
	setupLogger(cfg, c.App.ErrWriter)

	deps := app.NewDependencies(cfg, metrics.NewOrderMetrics(), log.WithField("component", "app"))
	defer deps.Close()

	log.WithFields(log.Fields{
		"grpc_addr":    cfg.GRPCAddr,
		"metrics_addr": cfg.MetricsAddr,
		"kafka":        cfg.KafkaEnabled(),
		"version":      version.GetVersion(),
	}).Info("запускаем burgershop")

	if err := app.Run(c.Context, cfg, deps); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "serve")
	}

	log.Info("burgershop остановлен")
	return nil
}

func deskAction(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return err
	}
	// меню пишет в stdout, логи уходят в stderr
	setupLogger(cfg, c.App.ErrWriter)

	deps := app.NewDependencies(cfg, metrics.NewOrderMetrics(), log.WithField("component", "desk"))
	defer deps.Close()

	desk := console.NewDesk(deps.Service, c.App.Reader, c.App.Writer, deps.Logger)
	if err := desk.Run(c.Context); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "desk")
	}
	return nil
}

// readConfig читает BURGERSHOP_* из окружения, флаги командной строки имеют приоритет.
func readConfig(c *cli.Context) (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, errors.Wrap(err, "load config")
	}

	if c.IsSet(flagGRPCAddr) {
		cfg.GRPCAddr = c.String(flagGRPCAddr)
	}
	if c.IsSet(flagMetricsAddr) {
		cfg.MetricsAddr = c.String(flagMetricsAddr)
	}
	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
	}
	if c.IsSet(flagKafkaBrokers) {
		cfg.KafkaBrokers = c.StringSlice(flagKafkaBrokers)
	}
	if c.IsSet(flagKafkaTopic) {
		cfg.KafkaTopic = c.String(flagKafkaTopic)
	}

	if err := cfg.Validate(); err != nil {
		return app.Config{}, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}

// setupLogger настраивает формат и уровень логирования.
func setupLogger(cfg app.Config, out io.Writer) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if out != nil {
		log.SetOutput(out)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
