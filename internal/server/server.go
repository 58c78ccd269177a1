// Package server exposes the transcript service over HTTP: GET
// /transcript and GET /languages, plus a JSON endpoint index at the root.
// All error translation from the client's taxonomy to HTTP statuses
// happens here.
package server

import (
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/transcriptapi/yt-transcript/internal/client"
	"github.com/transcriptapi/yt-transcript/internal/config"
)

// NewHTTPServer creates the API server with routing, CORS, request
// logging, and (when a Sentry DSN is configured) panic reporting.
func NewHTTPServer(cfg *config.Config, c client.Client) *http.Server {
	h := &handler{
		client: c,
		logger: config.GetLogger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("GET /transcript", h.transcript)
	mux.HandleFunc("GET /languages", h.languages)

	var root http.Handler = mux
	root = corsMiddleware(root)
	root = requestLogger(config.GetLogger(), root)
	if cfg.Sentry.DSN != "" {
		root = sentryhttp.New(sentryhttp.Options{Repanic: false}).Handle(root)
	}

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler: root,
	}
}
