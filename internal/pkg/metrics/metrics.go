package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingRequested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cartent",
			Name:      "booking_requested_total",
			Help:      "Count of booking requests by outcome.",
		},
		[]string{"outcome"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cartent",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by customers.",
		},
	)

	paymentDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cartent",
			Name:      "payment_decision_total",
			Help:      "Count of payment check decisions over contracts.",
		},
		[]string{"decision"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingRequested, bookingCancelled, paymentDecision)
	})
}

func IncBookingRequested(outcome string) {
	bookingRequested.WithLabelValues(outcome).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncPaymentDecision(decision string) {
	paymentDecision.WithLabelValues(decision).Inc()
}
