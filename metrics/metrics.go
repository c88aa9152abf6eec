package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sufra",
			Name:      "orders_created_total",
			Help:      "Count of checkout sessions handed to the payment provider.",
		},
	)

	reservationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sufra",
			Name:      "reservation_decisions_total",
			Help:      "Count of reservation gate outcomes by action.",
		},
		[]string{"action"},
	)

	cacheReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sufra",
			Name:      "cache_reads_total",
			Help:      "Count of remote-data cache reads by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(ordersCreated, reservationDecisions, cacheReads)
	})
}

func IncOrderCreated() {
	ordersCreated.Inc()
}

func IncReservationDecision(action string) {
	reservationDecisions.WithLabelValues(action).Inc()
}

func IncCacheRead(outcome string) {
	cacheReads.WithLabelValues(outcome).Inc()
}
