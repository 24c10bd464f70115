package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"network-watchdog/internal/domain"
)

var (
	probesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watchdog",
		Name:      "probes_total",
		Help:      "Reachability probes by result.",
	}, []string{"result"})

	cyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watchdog",
		Name:      "cycles_total",
		Help:      "Watch cycles by final state.",
	}, []string{"final_state"})

	connectAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watchdog",
		Name:      "connect_attempts_total",
		Help:      "Profile connect attempts by outcome.",
	}, []string{"outcome"})
)

func observeProbe(res domain.ProbeResult) {
	result := "reachable"
	if !res.Reachable {
		result = res.Reason.String()
	}
	probesTotal.WithLabelValues(result).Inc()
}

func observeCycle(outcome domain.CycleOutcome) {
	cyclesTotal.WithLabelValues(outcome.Final.String()).Inc()
	for _, attempt := range outcome.Attempts {
		connectAttemptsTotal.WithLabelValues(attempt.Outcome.String()).Inc()
	}
}
