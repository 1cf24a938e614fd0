package observability

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardscout_searches_total",
			Help: "Card searches served, by where the rows came from",
		},
		[]string{"source"},
	)

	RemoteFetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cardscout_remote_fetch_failures_total",
			Help: "Card API calls that failed and were served as empty results",
		},
	)

	MapsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cardscout_maps_generated_total",
			Help: "State maps written to disk",
		},
	)

	SnapshotsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardscout_snapshots_recorded_total",
			Help: "Price snapshots attempted, by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(SearchesTotal, RemoteFetchFailures, MapsGenerated, SnapshotsRecorded)
}

// Start serves /metrics on its own port in the background.
func Start(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Printf("[metrics] server on :%s stopped: %v", port, err)
		}
	}()
}
