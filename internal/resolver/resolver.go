// Package resolver turns user-supplied YouTube references into canonical
// video identifiers. It accepts bare 11-character identifiers and the
// common URL shapes (short links, watch pages, embeds) and rejects
// everything else with a typed resolution failure.
package resolver

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/transcriptapi/yt-transcript/internal/apperrors"
)

const (
	shortLinkHost = "youtu.be"
	mainHost      = "youtube.com"
)

// videoIDPattern matches a bare video identifier: exactly 11 characters
// from the YouTube identifier alphabet.
var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// refKind classifies a parsed URL for host/path dispatch. Each kind has
// exactly one extraction rule and one failure mode.
type refKind int

const (
	refShortLink refKind = iota
	refWatch
	refEmbed
	refUnsupportedPath
	refUnsupportedHost
)

// classify decides which URL shape u is. Hosts are compared lower-cased
// and without ports; a "www." prefix is accepted on both domains.
func classify(u *url.URL) refKind {
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case shortLinkHost:
		return refShortLink
	case mainHost:
		switch {
		case u.Path == "/watch":
			return refWatch
		case strings.HasPrefix(u.Path, "/embed/"), strings.HasPrefix(u.Path, "/v/"):
			return refEmbed
		default:
			return refUnsupportedPath
		}
	default:
		return refUnsupportedHost
	}
}

// Resolve extracts the video identifier from input, which may be a bare
// identifier or a YouTube URL.
//
// A bare identifier is recognized before any URL parsing and returned
// unchanged. Identifiers taken out of URLs are returned verbatim, without
// re-checking the 11-character shape; callers that need the strict shape
// for URL-derived values must validate it themselves.
func Resolve(input string) (string, error) {
	if input == "" {
		return "", apperrors.NewResolutionError(apperrors.EmptyInput, input)
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", apperrors.NewResolutionError(apperrors.EmptyInput, input)
	}

	// Direct-ID fast path. This must run before URL parsing: a bare
	// identifier would otherwise parse as a relative URL path.
	if videoIDPattern.MatchString(trimmed) {
		return trimmed, nil
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return "", apperrors.NewResolutionError(apperrors.MalformedURL, input)
	}

	switch classify(u) {
	case refShortLink:
		id := strings.TrimPrefix(u.Path, "/")
		if id == "" {
			return "", apperrors.NewResolutionError(apperrors.MissingIdentifier, input)
		}
		return id, nil

	case refWatch:
		id := u.Query().Get("v")
		if id == "" {
			return "", apperrors.NewResolutionError(apperrors.MissingIdentifier, input)
		}
		return id, nil

	case refEmbed:
		// "/embed/dQw4w9WgXcQ" splits into ["", "embed", "dQw4w9WgXcQ"].
		parts := strings.Split(u.Path, "/")
		if len(parts) < 3 || parts[2] == "" {
			return "", apperrors.NewResolutionError(apperrors.MissingIdentifier, input)
		}
		return parts[2], nil

	case refUnsupportedPath:
		return "", apperrors.NewResolutionError(apperrors.UnsupportedPath, input)

	default:
		return "", apperrors.NewResolutionError(apperrors.UnsupportedHost, input)
	}
}
