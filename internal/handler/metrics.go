package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "airbean",
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Total number of user orders placed.",
	})

	guestOrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "airbean",
		Subsystem: "orders",
		Name:      "guest_placed_total",
		Help:      "Total number of guest orders placed.",
	})

	orderValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "airbean",
		Subsystem: "orders",
		Name:      "value_kr",
		Help:      "Distribution of order totals in kronor.",
		Buckets:   []float64{25, 50, 100, 200, 400, 800},
	})
)
