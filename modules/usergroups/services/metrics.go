package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	mutationReorder      = "reorder"
	mutationTransfer     = "transfer"
	mutationMoveAll      = "move_all"
	mutationClearAll     = "clear_all"
	mutationMoveSelected = "move_selected"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refconsole",
		Subsystem: "transfer",
		Name:      "mutations_total",
		Help:      "List order and membership mutations applied in assignment sessions.",
	}, []string{"kind"})

	staleResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "refconsole",
		Subsystem: "transfer",
		Name:      "stale_responses_total",
		Help:      "Candidate refresh responses discarded because a newer refresh was issued.",
	})

	sessionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "refconsole",
		Name:      "sessions_open",
		Help:      "Open assignment sessions.",
	})
)
