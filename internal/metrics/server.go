package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPort is the metrics listener port when none is configured.
const DefaultPort = 9090

// NewHTTPServer creates the standalone metrics listener. It serves the
// transcript service's Prometheus registry (fetch and listing counters,
// cache gauges) at /metrics, on its own port next to the API server.
func NewHTTPServer(address string, port int) *http.Server {
	if port == 0 {
		port = DefaultPort
	}
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
