package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestMetricsEndpoint(t *testing.T) {
	RecordUpstreamFetch("init")
	RecordFallback()
	RecordRefresh("init")
	RecordCacheHit()
	RecordThumbnail("init")

	server := httptest.NewServer(promhttp.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	output := string(body)

	for _, name := range []string{
		"signature_upstream_fetches_total",
		"signature_fallback_served_total",
		"signature_cache_refreshes_total",
		"signature_cache_hits_total",
		"signature_thumbnails_total",
	} {
		if !strings.Contains(output, name) {
			t.Errorf("Expected metric %s not found in output", name)
		}
	}
}
