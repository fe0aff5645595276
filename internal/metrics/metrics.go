package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	subsystem = "job_assignment"

	jobTransitionsTotal      = "job_transitions_total"
	assignmentConflictsTotal = "assignment_conflicts_total"
	outboxMessagesTotal      = "outbox_messages_total"
	verificationsTotal       = "verifications_total"

	statusLabel = "status"
	resultLabel = "result"
	kindLabel   = "kind"
)

var jobTransitionsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      jobTransitionsTotal,
		Help:      "number of committed job status transitions by target status",
	},
	[]string{statusLabel},
)

var assignmentConflictsMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      assignmentConflictsTotal,
		Help:      "number of assignments refused because the partner was already assigned",
	},
)

var outboxMessagesMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      outboxMessagesTotal,
		Help:      "number of processed sms outbox messages by result",
	},
	[]string{resultLabel},
)

var verificationsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      verificationsTotal,
		Help:      "number of partner verification attempts by kind and result",
	},
	[]string{kindLabel, resultLabel},
)

func IncreaseJobTransitionsMetric(status string) {
	jobTransitionsMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

func IncreaseAssignmentConflictsMetric() {
	assignmentConflictsMetric.Inc()
}

func IncreaseOutboxMessagesMetric(result string) {
	outboxMessagesMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

func IncreaseVerificationsMetric(kind, result string) {
	verificationsMetric.With(prometheus.Labels{kindLabel: kind, resultLabel: result}).Inc()
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	prometheus.MustRegister(jobTransitionsMetric)
	prometheus.MustRegister(assignmentConflictsMetric)
	prometheus.MustRegister(outboxMessagesMetric)
	prometheus.MustRegister(verificationsMetric)
}
