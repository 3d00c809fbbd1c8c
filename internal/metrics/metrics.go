package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamFetches counts media-listing calls by outcome kind
	UpstreamFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signature_upstream_fetches_total",
		Help: "Total number of upstream media fetches by outcome",
	}, []string{"outcome"})

	// FallbackServed counts fetches answered with the synthetic post set
	FallbackServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signature_fallback_served_total",
		Help: "Total number of fetches that were replaced by fallback posts",
	})

	// CacheRefreshes counts cache writes by what triggered them
	CacheRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signature_cache_refreshes_total",
		Help: "Total number of cache refreshes by trigger",
	}, []string{"trigger"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signature_cache_hits_total",
		Help: "Total number of reads served from a fresh cache",
	})

	// Thumbnails counts thumbnail resolutions by result
	Thumbnails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signature_thumbnails_total",
		Help: "Total number of thumbnail resolutions by result",
	}, []string{"result"})
)

func RecordUpstreamFetch(outcome string) {
	UpstreamFetches.WithLabelValues(outcome).Inc()
}

func RecordFallback() {
	FallbackServed.Inc()
}

func RecordRefresh(trigger string) {
	CacheRefreshes.WithLabelValues(trigger).Inc()
}

func RecordCacheHit() {
	CacheHits.Inc()
}

// RecordThumbnail takes one of "persisted", "passthrough" or "failed".
func RecordThumbnail(result string) {
	Thumbnails.WithLabelValues(result).Inc()
}
