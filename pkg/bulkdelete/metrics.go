package bulkdelete

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "refconsole",
	Subsystem: "bulkdelete",
	Name:      "outcomes_total",
	Help:      "Total number of bulk delete runs broken down by resource and outcome.",
}, []string{"resource", "outcome"})
