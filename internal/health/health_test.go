package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeCounter int

func (c fakeCounter) Len() int { return int(c) }

func serve(t *testing.T, handler *Handler) (int, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var response Response
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return w.Code, response
}

func TestHealthHandler(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("order-store", NewStoreChecker(fakeCounter(3)))

	code, response := serve(t, handler)

	if code != http.StatusOK {
		t.Errorf("expected status 200, got %d", code)
	}
	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if response.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %s", response.Version)
	}
	if got := response.Checks["order-store"].Message; got != "3 orders" {
		t.Errorf("expected store message '3 orders', got %q", got)
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("broken", NewCheckFunc("broken", func() error {
		return errors.New("service unavailable")
	}))

	code, response := serve(t, handler)

	if code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", code)
	}
	if response.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy, got %s", response.Status)
	}
	if response.Checks["broken"].Message != "service unavailable" {
		t.Errorf("unexpected message %q", response.Checks["broken"].Message)
	}
}

func TestHealthHandler_Degraded(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("order-store", NewStoreChecker(fakeCounter(0)))
	handler.RegisterChecker("kafka", NewStaticChecker("kafka", StatusDegraded, "publisher disabled"))

	code, response := serve(t, handler)

	if code != http.StatusOK {
		t.Errorf("degraded must still answer 200, got %d", code)
	}
	if response.Status != StatusDegraded {
		t.Errorf("expected status degraded, got %s", response.Status)
	}
}

func TestStoreChecker_NilStore(t *testing.T) {
	check := NewStoreChecker(nil).Check()
	if check.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy for missing store, got %s", check.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	handler := NewHandler("v1.0.0")

	w := httptest.NewRecorder()
	handler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ready" {
		t.Errorf("expected ready, got %d %q", w.Code, w.Body.String())
	}

	handler.RegisterChecker("broken", NewCheckFunc("broken", func() error { return errors.New("down") }))
	w = httptest.NewRecorder()
	handler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestLivenessHandler(t *testing.T) {
	w := httptest.NewRecorder()
	LivenessHandler(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("expected ok, got %d %q", w.Code, w.Body.String())
	}
}
