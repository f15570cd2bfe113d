package main

import (
	"bytes"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/vladislavdragonenkov/burgershop/internal/app"
	"github.com/vladislavdragonenkov/burgershop/internal/version"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out, level := log.StandardLogger().Out, log.GetLevel()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetLevel(level)
	})

	var stdout, stderr bytes.Buffer
	cliApp := newApp()
	cliApp.Reader = strings.NewReader(stdin)
	cliApp.Writer = &stdout
	cliApp.ErrWriter = &stderr

	err := cliApp.Run(append([]string{"burgershop"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version")

	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", stdout)
}

func TestDeskCommand_PlaceAndFindOrder(t *testing.T) {
	t.Setenv("BURGERSHOP_KAFKA_BROKERS", "")

	stdout, stderr, err := runCLI(t, "1\nAlice\n3\n3\nO001\n0\n", "--log-level", "debug", "desk")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Order Placed Successfully!")
	assert.Contains(t, stdout, "Total : 1500.00")
	assert.NotContains(t, stdout, "level=", "logs must not be mixed into the menu")
	assert.Contains(t, stderr, "order placed")
}

func TestDeskCommand_InvalidLogLevel(t *testing.T) {
	_, _, err := runCLI(t, "", "--log-level", "chatty", "desk")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid flags")
}

func TestReadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("BURGERSHOP_GRPC_ADDR", ":7000")
	t.Setenv("BURGERSHOP_METRICS_ADDR", ":7001")

	var got app.Config
	cliApp := newApp()
	cliApp.Commands = []*cli.Command{{
		Name: "print-config",
		Action: func(c *cli.Context) error {
			var err error
			got, err = readConfig(c)
			return err
		},
	}}

	err := cliApp.Run([]string{"burgershop",
		"--grpc-addr", ":8000",
		"--kafka-brokers", "k1:9092", "--kafka-brokers", "k2:9092",
		"--kafka-topic", "orders",
		"print-config",
	})
	require.NoError(t, err)

	assert.Equal(t, ":8000", got.GRPCAddr)
	assert.Equal(t, ":7001", got.MetricsAddr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, got.KafkaBrokers)
	assert.Equal(t, "orders", got.KafkaTopic)
	assert.True(t, got.KafkaEnabled())
}
