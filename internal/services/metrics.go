// Package services – Prometheus domain counters.
//
// HTTP-level traffic metrics live in the middleware package; the counters
// here track business outcomes of the intake path regardless of transport.
package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// signupsAccepted counts successful inserts by write path
	// ("direct" or "fallback").
	signupsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_signups_accepted_total",
			Help: "Waitlist signups accepted, by write path.",
		},
		[]string{"path"},
	)

	// signupsRejected counts failed submissions by reason
	// (validation, duplicate, auth_denied, fallback_failed, backend).
	signupsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locus_signups_rejected_total",
			Help: "Waitlist signups rejected, by reason.",
		},
		[]string{"reason"},
	)
)
