package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fincast_runs_started_total",
		Help: "Number of simulation runs started.",
	})
	runsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fincast_runs_failed_total",
		Help: "Number of simulation runs that ended in an error.",
	})
	yearsSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fincast_years_simulated_total",
		Help: "Number of simulated years across all runs.",
	})
	insolventYears = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fincast_insolvent_years_total",
		Help: "Number of simulated years flagged insolvent.",
	})
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fincast_run_duration_seconds",
		Help:    "Wall-clock duration of a full simulation run.",
		Buckets: prometheus.DefBuckets,
	})
)
