package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, label string) float64 {
	t.Helper()
	var metric dto.Metric
	if err := vec.WithLabelValues(label).Write(&metric); err != nil {
		t.Fatalf("failed to read gauge %s: %v", label, err)
	}
	return metric.GetGauge().GetValue()
}

func TestNewOrderMetrics(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("NewOrderMetricsWithRegisterer should not return nil")
	}
	if metrics.ordersPlaced == nil {
		t.Error("ordersPlaced counter should not be nil")
	}
	if metrics.statusChanges == nil {
		t.Error("statusChanges counter vec should not be nil")
	}
	if metrics.ordersByStatus == nil {
		t.Error("ordersByStatus gauge vec should not be nil")
	}
}

func TestNewOrderMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewOrderMetricsWithRegisterer(reg)
	second := NewOrderMetricsWithRegisterer(reg)

	first.RecordQuantityUpdated()
	if got := testutil.ToFloat64(second.quantityUpdates); got != 1 {
		t.Fatalf("expected shared counter value 1, got %v", got)
	}
}

func TestRecordOrderLifecycle(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOrderPlaced(3, "preparing")
	metrics.RecordOrderPlaced(2, "preparing")
	metrics.RecordStatusChanged("preparing", "delivered")

	if got := testutil.ToFloat64(metrics.ordersPlaced); got != 2 {
		t.Errorf("expected 2 placed orders, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.burgersOrdered); got != 5 {
		t.Errorf("expected 5 burgers, got %v", got)
	}
	if got := gaugeValue(t, metrics.ordersByStatus, "preparing"); got != 1 {
		t.Errorf("expected 1 preparing order, got %v", got)
	}
	if got := gaugeValue(t, metrics.ordersByStatus, "delivered"); got != 1 {
		t.Errorf("expected 1 delivered order, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.statusChanges.WithLabelValues("delivered")); got != 1 {
		t.Errorf("expected 1 delivered transition, got %v", got)
	}
}

func TestRecordOrderPlaced_IgnoresNonPositiveQuantity(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOrderPlaced(-4, "preparing")

	if got := testutil.ToFloat64(metrics.burgersOrdered); got != 0 {
		t.Errorf("expected burgers counter untouched, got %v", got)
	}
}

func TestRecordRejectedAndEvents(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordRejected("update_quantity", RejectReasonNotMutable)
	metrics.RecordTimelineEvent()
	metrics.RecordEventPublished(true)
	metrics.RecordEventPublished(false)

	if got := testutil.ToFloat64(metrics.rejectedChanges.WithLabelValues("update_quantity", RejectReasonNotMutable)); got != 1 {
		t.Errorf("expected 1 rejected change, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.timelineEvents); got != 1 {
		t.Errorf("expected 1 timeline event, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.publishedEvents.WithLabelValues("error")); got != 1 {
		t.Errorf("expected 1 failed publish, got %v", got)
	}
}
