package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Status label values for the request counters.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

var (
	// TranscriptFetchesTotal counts transcript requests by outcome.
	TranscriptFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcript_fetches_total",
			Help: "Total number of transcript fetches.",
		},
		[]string{"status"},
	)

	// LanguageListingsTotal counts language listing requests by outcome.
	LanguageListingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "language_listings_total",
			Help: "Total number of caption language listings.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		TranscriptFetchesTotal,
		LanguageListingsTotal,
	)
}
