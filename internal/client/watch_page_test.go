package client

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/transcriptapi/yt-transcript/internal/testutil"
)

func TestExtractObject(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple object",
			input: ` = {"a":1};`,
			want:  `{"a":1}`,
		},
		{
			name:  "nested objects",
			input: `= {"a":{"b":{"c":3}},"d":4};var next = {};`,
			want:  `{"a":{"b":{"c":3}},"d":4}`,
		},
		{
			name:  "braces inside strings",
			input: `= {"title":"a video {with braces}","x":1};`,
			want:  `{"title":"a video {with braces}","x":1}`,
		},
		{
			name:  "escaped quotes inside strings",
			input: `= {"title":"she said \"hi {there}\"","x":1};`,
			want:  `{"title":"she said \"hi {there}\"","x":1}`,
		},
		{
			name:  "no object",
			input: `= 42;`,
			want:  "",
		},
		{
			name:  "unbalanced object",
			input: `= {"a":{"b":1};`,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractObject(tt.input); got != tt.want {
				t.Errorf("extractObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindPlayerResponse(t *testing.T) {
	t.Parallel()
	page := testutil.WatchPageHTML([]testutil.CaptionTrackOptions{
		{LanguageCode: "en", Name: "English", BaseURL: "https://example.invalid/tt"},
	})
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	raw := findPlayerResponse(doc)
	if raw == "" {
		t.Fatal("player response not found")
	}
	if !strings.Contains(raw, `"captionTracks"`) {
		t.Errorf("extracted blob missing captionTracks: %s", raw)
	}
	if strings.Contains(raw, "ytcsi") {
		t.Error("extraction ran past the end of the object literal")
	}
}

func TestFindPlayerResponse_AbsentFromPage(t *testing.T) {
	t.Parallel()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><head><script>var other = {"a":1};</script></head><body></body></html>`))
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if raw := findPlayerResponse(doc); raw != "" {
		t.Errorf("expected empty result, got %q", raw)
	}
}
