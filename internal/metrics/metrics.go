package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Writes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diettracker_writes_total",
			Help: "The total number of created or updated records",
		},
		[]string{"kind"},
	)
	Deletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diettracker_deletes_total",
			Help: "The total number of deleted records",
		},
		[]string{"kind"},
	)
	UndoRestores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diettracker_undo_restores_total",
			Help: "The total number of deletions restored within the undo window",
		},
		[]string{"kind"},
	)
	UndoExpiries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diettracker_undo_expiries_total",
			Help: "The total number of deletions that became permanent",
		},
		[]string{"kind"},
	)
	Exports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diettracker_csv_exports_total",
			Help: "The total number of weekly CSV exports",
		},
	)
)

const (
	KindFood = "food"
	KindMeal = "meal"
	KindGoal = "goal"
)
