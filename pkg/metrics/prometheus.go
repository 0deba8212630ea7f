package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector with Prometheus counters,
// labeled by the numeric call/callback tag (stringified, since the
// concrete HLA service name lives in pkg/payload, not here).
type PrometheusCollector struct {
	callsIssued        *prometheus.CounterVec
	callsSucceeded     *prometheus.CounterVec
	callsFailed        *prometheus.CounterVec
	callbacksQueued    *prometheus.CounterVec
	callbacksDelivered *prometheus.CounterVec
	heartbeatsMissed   prometheus.Counter
}

// NewPrometheusCollector creates a PrometheusCollector and registers its
// metrics with reg. Passing prometheus.NewRegistry() keeps an engine's
// metrics isolated from the global default registry; passing
// prometheus.DefaultRegisterer matches most services' top-level main.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		callsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fedpro",
			Name:      "calls_issued_total",
			Help:      "HLA_CALL_REQUEST frames sent, by request tag.",
		}, []string{"request_tag"}),
		callsSucceeded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fedpro",
			Name:      "calls_succeeded_total",
			Help:      "HLA_CALL_RESPONSE frames matched successfully, by request tag.",
		}, []string{"request_tag"}),
		callsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fedpro",
			Name:      "calls_failed_total",
			Help:      "Calls that ended without a matching success response, by request tag and reason.",
		}, []string{"request_tag", "reason"}),
		callbacksQueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fedpro",
			Name:      "callbacks_queued_total",
			Help:      "CallbackRequest frames enqueued while a call was in flight, by callback tag.",
		}, []string{"callback_tag"}),
		callbacksDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fedpro",
			Name:      "callbacks_delivered_total",
			Help:      "CallbackRequest frames delivered to the federate ambassador, by callback tag and outcome.",
		}, []string{"callback_tag", "succeeded"}),
		heartbeatsMissed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fedpro",
			Name:      "heartbeats_missed_total",
			Help:      "Heartbeat deadlines that elapsed with no CTRL_HEARTBEAT_RESPONSE.",
		}),
	}
	reg.MustRegister(
		c.callsIssued, c.callsSucceeded, c.callsFailed,
		c.callbacksQueued, c.callbacksDelivered, c.heartbeatsMissed,
	)
	return c
}

func (c *PrometheusCollector) CallIssued(requestTag uint32) {
	c.callsIssued.WithLabelValues(tagLabel(requestTag)).Inc()
}

func (c *PrometheusCollector) CallSucceeded(requestTag uint32) {
	c.callsSucceeded.WithLabelValues(tagLabel(requestTag)).Inc()
}

func (c *PrometheusCollector) CallFailed(requestTag uint32, reason string) {
	c.callsFailed.WithLabelValues(tagLabel(requestTag), reason).Inc()
}

func (c *PrometheusCollector) CallbackQueued(callbackTag uint32) {
	c.callbacksQueued.WithLabelValues(tagLabel(callbackTag)).Inc()
}

func (c *PrometheusCollector) CallbackDispatched(callbackTag uint32, succeeded bool) {
	c.callbacksDelivered.WithLabelValues(tagLabel(callbackTag), strconv.FormatBool(succeeded)).Inc()
}

func (c *PrometheusCollector) HeartbeatMissed() {
	c.heartbeatsMissed.Inc()
}

func tagLabel(tag uint32) string {
	return strconv.FormatUint(uint64(tag), 10)
}
