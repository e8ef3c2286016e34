package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики движка. Регистрируются в реестре prometheus по умолчанию,
// отдаются на /metrics.
var (
	IngestEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crowd_safety",
		Name:      "ingest_events_total",
		Help:      "Number of accepted telemetry events by kind.",
	}, []string{"kind"})

	IngestRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crowd_safety",
		Name:      "ingest_rejected_total",
		Help:      "Number of rejected telemetry events by kind.",
	}, []string{"kind"})

	Matches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crowd_safety",
		Name:      "dispatch_matches_total",
		Help:      "Number of unit-to-incident assignments produced by the matcher.",
	})

	UnmatchedDemand = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crowd_safety",
		Name:      "dispatch_unmatched_demand",
		Help:      "Open incidents with unsatisfied unit demand after the last pass.",
	})

	OpenIncidents = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crowd_safety",
		Name:      "open_incidents",
		Help:      "Currently active incidents.",
	})

	StaleAssignments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crowd_safety",
		Name:      "stale_assignments_total",
		Help:      "Assignments flagged stale by the ETA deadline sweep.",
	})

	ZoneRisk = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "crowd_safety",
		Name:      "zone_risk_level",
		Help:      "Current risk level per zone (0=low .. 3=critical).",
	}, []string{"zone"})
)
