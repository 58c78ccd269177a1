package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/transcriptapi/yt-transcript/internal/apperrors"
	"github.com/transcriptapi/yt-transcript/internal/models"
)

// FetchTranscript retrieves and decodes the caption track for videoID.
// With an empty language the first human-authored track is preferred,
// falling back to a machine-generated one. A requested language with no
// acceptable track fails with TranscriptNotFoundError.
func (c *client) FetchTranscript(ctx context.Context, videoID string, preferredLanguage string) ([]models.CaptionCue, error) {
	cacheKey := fmt.Sprintf("transcript:%s:%s", videoID, preferredLanguage)
	if data, ok := c.cache.Get(cacheKey); ok {
		var cues []models.CaptionCue
		if err := json.Unmarshal(data, &cues); err == nil {
			c.logger.Debug().Str("videoID", videoID).Msg("Transcript served from cache")
			return cues, nil
		}
	}

	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, &apperrors.ProviderError{VideoID: videoID, Op: "fetch caption tracks", Err: err}
	}
	if len(tracks) == 0 {
		return nil, &apperrors.TranscriptNotFoundError{VideoID: videoID, Language: preferredLanguage}
	}

	track, ok := selectTrack(tracks, preferredLanguage)
	if !ok {
		return nil, &apperrors.TranscriptNotFoundError{VideoID: videoID, Language: preferredLanguage}
	}

	cues, err := c.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, &apperrors.ProviderError{VideoID: videoID, Op: "fetch timedtext", Err: err}
	}

	if data, err := json.Marshal(cues); err == nil {
		c.cache.Set(cacheKey, data)
	}

	c.logger.Info().
		Str("videoID", videoID).
		Str("language", track.LanguageCode).
		Int("cues", len(cues)).
		Msg("Fetched transcript")

	return cues, nil
}

// selectTrack picks the caption track for the preferred language code.
// Matching uses BCP 47 semantics so "en" accepts an "en-US" track.
// Human-authored tracks win over machine-generated ones at equal match
// quality. With no preference, the first human-authored track is taken,
// then the first track of any kind.
func selectTrack(tracks []models.PlayerCaptionTrack, preferred string) (models.PlayerCaptionTrack, bool) {
	// Order candidates so human-authored tracks come first.
	ordered := make([]models.PlayerCaptionTrack, 0, len(tracks))
	for _, track := range tracks {
		if track.Kind != "asr" {
			ordered = append(ordered, track)
		}
	}
	for _, track := range tracks {
		if track.Kind == "asr" {
			ordered = append(ordered, track)
		}
	}

	if preferred == "" {
		return ordered[0], true
	}

	desired, err := language.Parse(preferred)
	if err != nil {
		// Unparsable code: fall back to exact comparison.
		for _, track := range ordered {
			if strings.EqualFold(track.LanguageCode, preferred) {
				return track, true
			}
		}
		return models.PlayerCaptionTrack{}, false
	}

	tags := make([]language.Tag, 0, len(ordered))
	candidates := make([]models.PlayerCaptionTrack, 0, len(ordered))
	for _, track := range ordered {
		tag, err := language.Parse(track.LanguageCode)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		candidates = append(candidates, track)
	}
	if len(tags) == 0 {
		return models.PlayerCaptionTrack{}, false
	}

	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(desired)
	if confidence == language.No {
		return models.PlayerCaptionTrack{}, false
	}
	return candidates[index], true
}
