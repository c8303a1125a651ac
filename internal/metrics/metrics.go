package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// VolumeExtractions counts volume extractions by source ("kernel" or "hash").
	VolumeExtractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stepquote_volume_extractions_total",
		Help: "Volume extractions performed, labeled by estimator source.",
	}, []string{"source"})

	// QuotesCreated counts quotes calculated and stored.
	QuotesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stepquote_quotes_created_total",
		Help: "Quotes calculated and persisted.",
	})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
