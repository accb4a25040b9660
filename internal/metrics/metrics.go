package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hr_onboarding"

var (
	// result: advanced | rejected
	StepTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "wizard",
		Name:      "step_transitions_total",
		Help:      "Next gestures by step and outcome",
	}, []string{"step", "result"})

	FieldFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "wizard",
		Name:      "field_failures_total",
		Help:      "Field failures shown to users",
	}, []string{"path", "kind"})

	// result: accepted | rejected | sink_error
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "wizard",
		Name:      "submissions_total",
		Help:      "Submit gestures by outcome",
	}, []string{"result"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "wizard",
		Name:      "active_sessions",
		Help:      "Wizard sessions held in memory",
	})

	// result: stored | duplicate | dlq
	ConsumedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "intake",
		Name:      "messages_total",
		Help:      "Onboarding messages consumed by outcome",
	}, []string{"result"})
)

func ObserveStep(step int, advanced bool) {
	result := "advanced"
	if !advanced {
		result = "rejected"
	}
	StepTransitions.WithLabelValues(strconv.Itoa(step), result).Inc()
}

func ObserveFailure(path, kind string) {
	FieldFailures.WithLabelValues(path, kind).Inc()
}
