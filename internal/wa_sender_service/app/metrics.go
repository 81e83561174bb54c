package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchOutcomeCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wa_sender",
			Name:      "dispatch_outcomes_total",
			Help:      "Send actions by outcome.",
		},
		[]string{"provider_name", "outcome"}, // outcome: success, provider_error, or the rejection code
	)

	providerRequestDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wa_sender",
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of create-message calls to the messaging provider.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider_name"},
	)
)
