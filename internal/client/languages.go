package client

import (
	"context"
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/transcriptapi/yt-transcript/internal/apperrors"
	"github.com/transcriptapi/yt-transcript/internal/models"
)

// titleCaser renders track display names like "english" as "English".
var titleCaser = cases.Title(language.English)

// ListLanguages reports the caption tracks available for videoID.
// Machine-generated (ASR) tracks are omitted; the listing covers the
// languages a viewer can pick from YouTube's own selector. A video whose
// only tracks are machine-generated yields an empty listing. Provider
// failures and videos with no caption section at all fail with
// LanguagesUnavailableError.
func (c *client) ListLanguages(ctx context.Context, videoID string) ([]models.CaptionTrack, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, &apperrors.LanguagesUnavailableError{VideoID: videoID, Err: err}
	}
	if len(tracks) == 0 {
		return nil, &apperrors.LanguagesUnavailableError{VideoID: videoID, Err: errors.New("no caption tracks")}
	}

	available := make([]models.CaptionTrack, 0, len(tracks))
	for _, track := range tracks {
		if track.Kind == "asr" {
			continue
		}
		available = append(available, models.CaptionTrack{
			LanguageCode: track.LanguageCode,
			LanguageName: titleCaser.String(track.DisplayName()),
			Kind:         track.Kind,
			BaseURL:      track.BaseURL,
		})
	}

	return available, nil
}
