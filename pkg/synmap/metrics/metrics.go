package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes.
const (
	RegisterInserted    = "inserted"
	RegisterOverwritten = "overwritten"
	RegisterUnchanged   = "unchanged"
	RegisterSkipped     = "skipped"
)

// Resolve outcomes.
const (
	ResolveHit  = "hit"
	ResolveMiss = "miss"
)

var (
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synmap_registrations_total",
			Help: "Synonym registrations by outcome",
		},
		[]string{"result"},
	)

	Conflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synmap_conflicts_total",
		Help: "Conflicting synonym definitions that overwrote an existing canonical value",
	})

	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synmap_resolve_total",
			Help: "Entities checked against the synonym table by outcome",
		},
		[]string{"result"},
	)

	ArtifactLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synmap_artifact_load_failures_total",
		Help: "Persisted synonym tables that could not be read and were replaced by an empty table",
	})

	TableEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "synmap_table_entries",
		Help: "Entries in the most recently built or loaded synonym table",
	})
)
