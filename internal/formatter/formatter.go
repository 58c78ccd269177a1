// Package formatter renders raw caption cues as timestamp-annotated
// entries, either structured for JSON responses or joined as plain text.
package formatter

import (
	"fmt"
	"strings"

	"github.com/transcriptapi/yt-transcript/internal/models"
)

// Format projects each cue into a FormattedEntry. The output has exactly
// the length and order of the input; no cue is dropped, merged, or
// reordered. An empty input yields an empty output.
func Format(cues []models.CaptionCue) []models.FormattedEntry {
	entries := make([]models.FormattedEntry, len(cues))
	for i, cue := range cues {
		entries[i] = models.FormattedEntry{
			Timestamp: timestampLabel(cue.Start),
			Text:      cue.Text,
			Start:     cue.Start,
			Duration:  cue.Duration,
		}
	}
	return entries
}

// timestampLabel renders a start offset as "[MM:SS]". The start is
// truncated to whole seconds; minutes are not wrapped or converted to
// hours, so a cue two hours in renders as "[125:30]".
func timestampLabel(start float64) string {
	total := int(start)
	return fmt.Sprintf("[%02d:%02d]", total/60, total%60)
}

// RenderText joins entries one per line as "{timestamp} {text}".
func RenderText(entries []models.FormattedEntry) string {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.Timestamp + " " + entry.Text
	}
	return strings.Join(lines, "\n")
}

// DownloadFilename returns the suggested filename for a saved transcript.
func DownloadFilename(videoID string) string {
	return fmt.Sprintf("transcript_%s.txt", videoID)
}
