package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/transcriptapi/yt-transcript/internal/apperrors"
	"github.com/transcriptapi/yt-transcript/internal/client"
	"github.com/transcriptapi/yt-transcript/internal/formatter"
	"github.com/transcriptapi/yt-transcript/internal/metrics"
	"github.com/transcriptapi/yt-transcript/internal/models"
	"github.com/transcriptapi/yt-transcript/internal/resolver"
)

type handler struct {
	client client.Client
	logger zerolog.Logger
}

// index documents the available endpoints.
func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "YouTube transcript service",
		"endpoints": map[string]string{
			"/transcript": "GET - Fetch transcript (params: url, language, format)",
			"/languages":  "GET - List available caption languages (params: url)",
		},
	})
}

// transcript serves GET /transcript?url=&language=&format=.
func (h *handler) transcript(w http.ResponseWriter, r *http.Request) {
	videoID, ok := h.resolveURLParam(w, r)
	if !ok {
		return
	}
	language := r.URL.Query().Get("language")

	cues, err := h.client.FetchTranscript(r.Context(), videoID, language)
	if err != nil {
		if errors.Is(err, &apperrors.TranscriptNotFoundError{}) {
			metrics.TranscriptFetchesTotal.WithLabelValues(metrics.StatusNotFound).Inc()
			writeError(w, http.StatusNotFound, "No transcript available for this video")
			return
		}
		metrics.TranscriptFetchesTotal.WithLabelValues(metrics.StatusError).Inc()
		h.logger.Error().Err(err).Str("videoID", videoID).Msg("Transcript fetch failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching transcript: %v", err))
		return
	}
	metrics.TranscriptFetchesTotal.WithLabelValues(metrics.StatusSuccess).Inc()

	entries := formatter.Format(cues)

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", formatter.DownloadFilename(videoID)))
		_, _ = io.WriteString(w, formatter.RenderText(entries))
		return
	}

	writeJSON(w, http.StatusOK, models.TranscriptResponse{
		VideoID:    videoID,
		Transcript: entries,
	})
}

// languages serves GET /languages?url=.
func (h *handler) languages(w http.ResponseWriter, r *http.Request) {
	videoID, ok := h.resolveURLParam(w, r)
	if !ok {
		return
	}

	tracks, err := h.client.ListLanguages(r.Context(), videoID)
	if err != nil {
		metrics.LanguageListingsTotal.WithLabelValues(metrics.StatusError).Inc()
		h.logger.Error().Err(err).Str("videoID", videoID).Msg("Language listing failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching available languages: %v", err))
		return
	}
	metrics.LanguageListingsTotal.WithLabelValues(metrics.StatusSuccess).Inc()

	languages := make([]models.LanguageInfo, len(tracks))
	for i, track := range tracks {
		languages[i] = models.LanguageInfo{
			LanguageCode: track.LanguageCode,
			LanguageName: track.LanguageName,
		}
	}

	writeJSON(w, http.StatusOK, models.LanguagesResponse{
		VideoID:            videoID,
		AvailableLanguages: languages,
	})
}

// resolveURLParam resolves the "url" query parameter to a video ID. All
// resolution failures collapse to one 400 response; the specific reason
// is only logged.
func (h *handler) resolveURLParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	input := r.URL.Query().Get("url")
	videoID, err := resolver.Resolve(input)
	if err != nil {
		h.logger.Debug().Err(err).Str("input", input).Msg("Identifier resolution failed")
		writeError(w, http.StatusBadRequest, "Invalid YouTube URL or video ID")
		return "", false
	}
	return videoID, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
