// Package testutil generates watch-page and timedtext fixtures for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// CaptionTrackOptions configures one captionTracks entry in a generated
// watch page.
type CaptionTrackOptions struct {
	LanguageCode string
	Name         string
	Kind         string // "asr" for machine-generated tracks
	BaseURL      string
}

// WatchPageHTML builds a minimal watch page whose inline script carries a
// ytInitialPlayerResponse with the given caption tracks.
func WatchPageHTML(tracks []CaptionTrackOptions) string {
	entries := make([]map[string]any, len(tracks))
	for i, track := range tracks {
		entry := map[string]any{
			"baseUrl":      track.BaseURL,
			"languageCode": track.LanguageCode,
			"name":         map[string]any{"simpleText": track.Name},
		}
		if track.Kind != "" {
			entry["kind"] = track.Kind
		}
		entries[i] = entry
	}

	playerResponse := map[string]any{
		"playabilityStatus": map[string]any{"status": "OK"},
		"captions": map[string]any{
			"playerCaptionsTracklistRenderer": map[string]any{
				"captionTracks": entries,
			},
		},
	}
	return wrapWatchPage(playerResponse)
}

// WatchPageHTMLWithoutCaptions builds a watch page whose player response
// carries no caption section, as served for videos without subtitles.
func WatchPageHTMLWithoutCaptions() string {
	return wrapWatchPage(map[string]any{
		"playabilityStatus": map[string]any{"status": "OK"},
		"videoDetails":      map[string]any{"title": "a video {with braces} in \"strings\""},
	})
}

func wrapWatchPage(playerResponse map[string]any) string {
	blob, err := json.Marshal(playerResponse)
	if err != nil {
		panic(err)
	}
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><title>Watch</title>")
	sb.WriteString("<script>var cfg = {page: \"watch\"};</script>")
	sb.WriteString("</head><body><div id=\"player\"></div><script>var ytInitialPlayerResponse = ")
	sb.Write(blob)
	sb.WriteString(";var ytcsi = {};</script></body></html>")
	return sb.String()
}

// TimedTextCueOptions configures one cue of a generated timedtext document.
type TimedTextCueOptions struct {
	Start    float64
	Duration float64
	Text     string // escaped automatically
	RawText  string // used verbatim when non-empty, for double-escaped payloads
}

// TimedTextXML builds a timedtext caption document.
func TimedTextXML(cues []TimedTextCueOptions) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?><transcript>`)
	for _, cue := range cues {
		text := cue.RawText
		if text == "" {
			text = html.EscapeString(cue.Text)
		}
		sb.WriteString(fmt.Sprintf(`<text start="%g" dur="%g">%s</text>`, cue.Start, cue.Duration, text))
	}
	sb.WriteString("</transcript>")
	return sb.String()
}
