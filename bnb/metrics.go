package bnb

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// nodesTotal counts search nodes (relaxation solves attempted).
	nodesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maxclique_bnb_nodes_total",
		Help: "Total branch-and-bound nodes visited",
	})

	// prunesTotal counts pruned nodes by reason.
	prunesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maxclique_bnb_prunes_total",
		Help: "Total pruned nodes by reason",
	}, []string{"reason"})

	// incumbentUpdatesTotal counts strictly improving cliques.
	incumbentUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "maxclique_bnb_incumbent_updates_total",
		Help: "Total incumbent improvements",
	})

	// relaxationDuration tracks one relaxation solve.
	relaxationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "maxclique_bnb_relaxation_duration_seconds",
		Help:    "Relaxation solve duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	})

	// searchesTotal counts finished runs by outcome.
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maxclique_bnb_searches_total",
		Help: "Total searches by outcome",
	}, []string{"outcome"})
)
