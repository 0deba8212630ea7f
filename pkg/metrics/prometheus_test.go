package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCollectorRecordsCallOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	c.CallIssued(1)
	c.CallSucceeded(1)
	c.CallFailed(2, "timeout")
	c.CallbackQueued(30)
	c.CallbackDispatched(30, true)
	c.CallbackDispatched(30, false)
	c.HeartbeatMissed()

	if got := testutil.ToFloat64(c.callsIssued.WithLabelValues("1")); got != 1 {
		t.Fatalf("calls_issued[1] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.callsSucceeded.WithLabelValues("1")); got != 1 {
		t.Fatalf("calls_succeeded[1] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.callsFailed.WithLabelValues("2", "timeout")); got != 1 {
		t.Fatalf("calls_failed[2,timeout] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.callbacksQueued.WithLabelValues("30")); got != 1 {
		t.Fatalf("callbacks_queued[30] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.callbacksDelivered.WithLabelValues("30", "true")); got != 1 {
		t.Fatalf("callbacks_delivered[30,true] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.callbacksDelivered.WithLabelValues("30", "false")); got != 1 {
		t.Fatalf("callbacks_delivered[30,false] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.heartbeatsMissed); got != 1 {
		t.Fatalf("heartbeats_missed = %v, want 1", got)
	}
}

func TestTagLabelFormatsAsDecimal(t *testing.T) {
	if got := tagLabel(42); got != "42" {
		t.Fatalf("tagLabel(42) = %q, want %q", got, "42")
	}
}
