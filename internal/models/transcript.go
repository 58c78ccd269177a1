package models

// CaptionCue is one timed unit of caption text, normalized from the raw
// timedtext document. Start and Duration are seconds from the beginning
// of the video.
type CaptionCue struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// FormattedEntry is the read-only projection of a CaptionCue used in API
// responses: the cue fields plus a rendered "[MM:SS]" timestamp label.
type FormattedEntry struct {
	Timestamp string  `json:"timestamp"`
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	Duration  float64 `json:"duration"`
}

// CaptionTrack describes one caption track available for a video.
type CaptionTrack struct {
	LanguageCode string `json:"languageCode"`
	LanguageName string `json:"languageName"`
	Kind         string `json:"kind"`
	BaseURL      string `json:"baseUrl"`
}

// IsGenerated reports whether the track holds machine-generated (ASR)
// captions rather than human-authored ones.
func (t CaptionTrack) IsGenerated() bool {
	return t.Kind == "asr"
}

// LanguageInfo is one entry of the language listing response.
type LanguageInfo struct {
	LanguageCode string `json:"language_code"`
	LanguageName string `json:"language_name"`
}

// TranscriptResponse is the structured transcript payload.
type TranscriptResponse struct {
	VideoID    string           `json:"video_id"`
	Transcript []FormattedEntry `json:"transcript"`
}

// LanguagesResponse is the structured language listing payload.
type LanguagesResponse struct {
	VideoID            string         `json:"video_id"`
	AvailableLanguages []LanguageInfo `json:"available_languages"`
}
