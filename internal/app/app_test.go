package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcsvc "github.com/vladislavdragonenkov/burgershop/internal/service/grpc"
)

func TestServe_GRPCRoundTripAndShutdown(t *testing.T) {
	deps := NewDependencies(DefaultConfig(), testMetrics(), nil)
	defer deps.Close()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, lis, "127.0.0.1:0", deps, deps.Logger)
	}()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()

	client := grpcsvc.NewOrderDeskClient(conn)
	placed, err := client.PlaceOrder(callCtx, "Alice", 3, grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, "O001", placed.GetFields()["order_id"].GetStringValue())

	healthResp, err := healthpb.NewHealthClient(conn).Check(callCtx, &healthpb.HealthCheckRequest{Service: grpcsvc.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, healthResp.GetStatus())

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestRun_InvalidAddress(t *testing.T) {
	deps := NewDependencies(DefaultConfig(), testMetrics(), nil)
	defer deps.Close()

	cfg := DefaultConfig()
	cfg.GRPCAddr = "bad-address"

	err := Run(context.Background(), cfg, deps)
	assert.Error(t, err)
}

func TestHTTPMux_Endpoints(t *testing.T) {
	deps := NewDependencies(DefaultConfig(), testMetrics(), nil)
	defer deps.Close()

	server := httptest.NewServer(newHTTPMux(deps.Health))
	defer server.Close()

	for path, want := range map[string]int{
		"/metrics": http.StatusOK,
		"/healthz": http.StatusOK,
		"/readyz":  http.StatusOK,
		"/livez":   http.StatusOK,
	} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err, path)
		_ = resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
