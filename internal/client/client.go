package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/rs/zerolog"

	"github.com/transcriptapi/yt-transcript/internal/cache"
	"github.com/transcriptapi/yt-transcript/internal/config"
	"github.com/transcriptapi/yt-transcript/internal/models"
)

// Client is the transcript-fetch capability: given a resolved video
// identifier, it supplies caption cues and the set of available tracks.
type Client interface {
	// FetchTranscript retrieves the caption cues for videoID. When
	// language is empty the provider's default track selection applies.
	FetchTranscript(ctx context.Context, videoID string, language string) ([]models.CaptionCue, error)

	// ListLanguages reports the human-authored caption tracks available
	// for videoID.
	ListLanguages(ctx context.Context, videoID string) ([]models.CaptionTrack, error)

	// Close releases resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface against YouTube's watch page
// and timedtext endpoints.
type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cache      cache.Cache
	logger     zerolog.Logger
}

// NewClient creates a client from config: optional proxy, request
// timeout, transparent response decompression, retry with backoff on
// transient upstream failures, and a transcript cache.
func NewClient(cfg *config.Config) (Client, error) {
	logger := config.GetLogger()

	// Parse timeout duration
	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its settings (connection pooling,
	// HTTP/2, dial timeouts), overriding only the proxy when configured.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	maxRetries := cfg.Retry.MaxAttempts
	if maxRetries <= 0 {
		maxRetries = 2
	}
	retryPolicy := failsafehttp.NewRetryPolicyBuilder().
		WithBackoff(500*time.Millisecond, 5*time.Second).
		WithMaxRetries(maxRetries).
		Build()

	// Retries run against the raw transport; decompression wraps the result.
	transport := newCompressionTransport(failsafehttp.NewRoundTripper(baseTransport, retryPolicy))
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	ttl := time.Hour // default
	if cfg.Cache.TTL != "" {
		if parsedTTL, err := time.ParseDuration(cfg.Cache.TTL); err != nil {
			logger.Warn().Err(err).Str("ttl", cfg.Cache.TTL).Msg("Invalid cache TTL, using default 1h")
		} else {
			ttl = parsedTTL
		}
	}

	provider := cfg.Cache.Provider
	if provider == "" {
		provider = "memory"
	}
	transcriptCache, err := cache.New(provider, cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           ttl,
		Logger:        cacheLogger{logger: logger},
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         "transcripts",
	})
	if err != nil {
		return nil, fmt.Errorf("creating transcript cache: %w", err)
	}

	baseURL := cfg.WatchDomain
	if baseURL == "" {
		baseURL = config.DefaultWatchDomain
	}

	return &client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		cache:      transcriptCache,
		logger:     logger,
	}, nil
}

// Close releases resources held by the client, such as cache connections.
func (c *client) Close() error {
	return c.cache.Close()
}

// cacheLogger adapts zerolog to the cache.Logger interface.
type cacheLogger struct {
	logger zerolog.Logger
}

func (l cacheLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}
