package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/transcriptapi/yt-transcript/internal/models"
)

// playerResponseMarker precedes the JSON blob carrying the caption track
// list in a watch page's inline scripts.
const playerResponseMarker = "ytInitialPlayerResponse"

// captionTracks returns the caption track list for videoID, consulting
// the cache before fetching the watch page.
func (c *client) captionTracks(ctx context.Context, videoID string) ([]models.PlayerCaptionTrack, error) {
	key := "tracks:" + videoID
	if data, ok := c.cache.Get(key); ok {
		var tracks []models.PlayerCaptionTrack
		if err := json.Unmarshal(data, &tracks); err == nil {
			c.logger.Debug().Str("videoID", videoID).Int("tracks", len(tracks)).Msg("Caption tracks served from cache")
			return tracks, nil
		}
	}

	tracks, err := c.fetchCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(tracks); err == nil {
		c.cache.Set(key, data)
	}
	return tracks, nil
}

// fetchCaptionTracks downloads the watch page for videoID and extracts
// the caption track list from the embedded player response. A video
// without captions yields an empty slice, not an error.
func (c *client) fetchCaptionTracks(ctx context.Context, videoID string) ([]models.PlayerCaptionTrack, error) {
	endpoint := fmt.Sprintf("%s/watch?v=%s&hl=en", c.baseURL, url.QueryEscape(videoID))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating watch page request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	// Normalize to UTF-8 before handing the page to goquery.
	utf8Body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detecting watch page charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("parsing watch page: %w", err)
	}

	raw := findPlayerResponse(doc)
	if raw == "" {
		return nil, errors.New("player response not found in watch page")
	}

	var playerResponse models.PlayerResponse
	if err := json.Unmarshal([]byte(raw), &playerResponse); err != nil {
		return nil, fmt.Errorf("decoding player response: %w", err)
	}

	c.logger.Debug().
		Str("videoID", videoID).
		Str("playability", playerResponse.PlayabilityStatus.Status).
		Int("tracks", len(playerResponse.Captions.TrackListRenderer.CaptionTracks)).
		Msg("Extracted player response")

	return playerResponse.Captions.TrackListRenderer.CaptionTracks, nil
}

// findPlayerResponse scans the page's inline scripts for the
// ytInitialPlayerResponse assignment and returns the JSON object literal
// assigned to it.
func findPlayerResponse(doc *goquery.Document) string {
	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		if obj := extractObject(text[idx:]); obj != "" {
			raw = obj
			return false
		}
		return true
	})
	return raw
}

// extractObject returns the first balanced {...} object literal in s.
// Braces inside JSON string literals (including escaped quotes) are
// ignored while tracking depth.
func extractObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
