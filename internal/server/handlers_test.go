package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/transcriptapi/yt-transcript/internal/apperrors"
	"github.com/transcriptapi/yt-transcript/internal/config"
	"github.com/transcriptapi/yt-transcript/internal/models"
)

// fakeClient is a canned transcript provider for handler tests.
type fakeClient struct {
	cues    []models.CaptionCue
	tracks  []models.CaptionTrack
	err     error
	langErr error

	gotVideoID  string
	gotLanguage string
}

func (f *fakeClient) FetchTranscript(_ context.Context, videoID, language string) ([]models.CaptionCue, error) {
	f.gotVideoID = videoID
	f.gotLanguage = language
	if f.err != nil {
		return nil, f.err
	}
	return f.cues, nil
}

func (f *fakeClient) ListLanguages(_ context.Context, videoID string) ([]models.CaptionTrack, error) {
	f.gotVideoID = videoID
	if f.langErr != nil {
		return nil, f.langErr
	}
	return f.tracks, nil
}

func (f *fakeClient) Close() error { return nil }

func serve(t *testing.T, fake *fakeClient, target string) *httptest.ResponseRecorder {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Port = 8080

	server := NewHTTPServer(cfg, fake)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestTranscript_Success(t *testing.T) {
	fake := &fakeClient{cues: []models.CaptionCue{
		{Text: "hello", Start: 0.5, Duration: 2},
		{Text: "world", Start: 65.7, Duration: 2},
	}}
	rec := serve(t, fake, "/transcript?url=https://youtu.be/dQw4w9WgXcQ&language=en")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if fake.gotVideoID != "dQw4w9WgXcQ" || fake.gotLanguage != "en" {
		t.Errorf("client called with (%q, %q)", fake.gotVideoID, fake.gotLanguage)
	}

	var resp models.TranscriptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("video_id = %q", resp.VideoID)
	}
	if len(resp.Transcript) != 2 {
		t.Fatalf("got %d entries, want 2", len(resp.Transcript))
	}
	if resp.Transcript[1].Timestamp != "[01:05]" {
		t.Errorf("timestamp = %q, want [01:05]", resp.Transcript[1].Timestamp)
	}
}

func TestTranscript_TextFormat(t *testing.T) {
	fake := &fakeClient{cues: []models.CaptionCue{
		{Text: "hello", Start: 0},
		{Text: "world", Start: 61},
	}}
	rec := serve(t, fake, "/transcript?url=dQw4w9WgXcQ&format=text")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="transcript_dQw4w9WgXcQ.txt"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if body := rec.Body.String(); body != "[00:00] hello\n[01:01] world" {
		t.Errorf("body = %q", body)
	}
}

func TestTranscript_BadInput(t *testing.T) {
	targets := []string{
		"/transcript",
		"/transcript?url=",
		"/transcript?url=https://example.com/watch?v=x",
		"/transcript?url=https://www.youtube.com/watch",
	}
	for _, target := range targets {
		rec := serve(t, &fakeClient{}, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), "Invalid YouTube URL or video ID") {
			t.Errorf("%s: body = %q", target, rec.Body.String())
		}
	}
}

func TestTranscript_NotFound(t *testing.T) {
	fake := &fakeClient{err: &apperrors.TranscriptNotFoundError{VideoID: "dQw4w9WgXcQ"}}
	rec := serve(t, fake, "/transcript?url=dQw4w9WgXcQ")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No transcript available") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestTranscript_ProviderError(t *testing.T) {
	fake := &fakeClient{err: &apperrors.ProviderError{
		VideoID: "dQw4w9WgXcQ",
		Op:      "fetch caption tracks",
		Err:     errors.New("watch page returned status 503"),
	}}
	rec := serve(t, fake, "/transcript?url=dQw4w9WgXcQ")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	// Provider text is embedded for diagnostics.
	if !strings.Contains(rec.Body.String(), "watch page returned status 503") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestLanguages_Success(t *testing.T) {
	fake := &fakeClient{tracks: []models.CaptionTrack{
		{LanguageCode: "en", LanguageName: "English"},
		{LanguageCode: "fr", LanguageName: "French"},
	}}
	rec := serve(t, fake, "/languages?url=https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp models.LanguagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("video_id = %q", resp.VideoID)
	}
	if len(resp.AvailableLanguages) != 2 || resp.AvailableLanguages[0].LanguageCode != "en" {
		t.Errorf("languages = %+v", resp.AvailableLanguages)
	}
}

func TestLanguages_EmptyListing(t *testing.T) {
	fake := &fakeClient{tracks: []models.CaptionTrack{}}
	rec := serve(t, fake, "/languages?url=dQw4w9WgXcQ")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"available_languages":[]`) {
		t.Errorf("body = %q, want an empty array", rec.Body.String())
	}
}

func TestLanguages_BadInput(t *testing.T) {
	rec := serve(t, &fakeClient{}, "/languages?url=https://example.com/x")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLanguages_Unavailable(t *testing.T) {
	fake := &fakeClient{langErr: &apperrors.LanguagesUnavailableError{
		VideoID: "dQw4w9WgXcQ",
		Err:     errors.New("no caption tracks"),
	}}
	rec := serve(t, fake, "/languages?url=dQw4w9WgXcQ")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestIndex(t *testing.T) {
	rec := serve(t, &fakeClient{}, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/transcript") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := serve(t, &fakeClient{}, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCORSHeadersAndPreflight(t *testing.T) {
	cfg := &config.Config{}
	server := NewHTTPServer(cfg, &fakeClient{})

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/transcript", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
}
