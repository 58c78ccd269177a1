package models

import (
	"encoding/xml"
	"strings"
)

// PlayerResponse is the subset of the ytInitialPlayerResponse JSON blob
// embedded in a watch page that the client needs: the caption track list
// and the playability status.
type PlayerResponse struct {
	Captions struct {
		TrackListRenderer struct {
			CaptionTracks []PlayerCaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

// PlayerCaptionTrack is one entry of the captionTracks array.
// Kind is "asr" for machine-generated tracks and empty otherwise.
type PlayerCaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

// DisplayName returns the human-readable track name. Older player
// responses carry it as simpleText, newer ones as a list of runs.
func (t PlayerCaptionTrack) DisplayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var sb strings.Builder
	for _, run := range t.Name.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// TimedText is the caption document served by the timedtext endpoint.
type TimedText struct {
	XMLName xml.Name       `xml:"transcript"`
	Cues    []TimedTextCue `xml:"text"`
}

// TimedTextCue carries one cue of a timedtext document. Start and
// Duration are seconds.
type TimedTextCue struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Content  string  `xml:",chardata"`
}
