package client

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"

	"github.com/transcriptapi/yt-transcript/internal/models"
)

// fetchTimedText downloads a caption document from a track's base URL
// and decodes it into cues, preserving document order.
func (c *client) fetchTimedText(ctx context.Context, baseURL string) ([]models.CaptionCue, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating timedtext request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	decoder := xml.NewDecoder(resp.Body)
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return charset.NewReaderLabel(label, input)
	}

	var doc models.TimedText
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding timedtext: %w", err)
	}

	cues := make([]models.CaptionCue, len(doc.Cues))
	for i, cue := range doc.Cues {
		cues[i] = models.CaptionCue{
			// The payload HTML-escapes entities a second time (an
			// apostrophe arrives as &amp;#39;), so unescape once more
			// after XML decoding.
			Text:     html.UnescapeString(cue.Content),
			Start:    cue.Start,
			Duration: cue.Duration,
		}
	}
	return cues, nil
}
