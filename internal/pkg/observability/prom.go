package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "mergington"
)

var (
	RosterChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "activity", "roster_changes_total"),
		Help: "Signup and unregister attempts by outcome",
	}, []string{"operation", "result"})
	Participants = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "activity", "participants"),
		Help: "Current number of participants per activity",
	}, []string{"activity"})
	DirectoryBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "activity", "directory_build_duration_seconds"),
		Help:    "Duration of rebuilding the cached activity directory in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 10),
	})
)
