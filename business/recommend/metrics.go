package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CandidatesSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_candidates_skipped_total",
			Help: "Count of candidates dropped by the hybrid scorer, by reason.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(CandidatesSkippedTotal)
}
