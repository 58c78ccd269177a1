package apperrors

import "fmt"

// ResolutionReason identifies why an input string could not be resolved
// to a video identifier.
type ResolutionReason string

const (
	EmptyInput        ResolutionReason = "empty_input"
	MalformedURL      ResolutionReason = "malformed_url"
	MissingIdentifier ResolutionReason = "missing_identifier"
	UnsupportedPath   ResolutionReason = "unsupported_path"
	UnsupportedHost   ResolutionReason = "unsupported_host"
)

// ResolutionError is returned when a user-supplied reference cannot be
// turned into a video identifier.
type ResolutionError struct {
	Reason ResolutionReason
	Input  string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve video identifier from %q: %s", e.Input, e.Reason)
}

// Is allows for error checking with errors.Is(). A target with an empty
// Reason matches any resolution failure.
func (e *ResolutionError) Is(target error) bool {
	t, ok := target.(*ResolutionError)
	if !ok {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// NewResolutionError creates a new ResolutionError.
func NewResolutionError(reason ResolutionReason, input string) *ResolutionError {
	return &ResolutionError{Reason: reason, Input: input}
}

// TranscriptNotFoundError is returned when a video exists but has no
// caption track, or none matching the requested language.
type TranscriptNotFoundError struct {
	VideoID  string
	Language string
}

// Error implements the error interface.
func (e *TranscriptNotFoundError) Error() string {
	if e.Language != "" {
		return fmt.Sprintf("no %q transcript found for video %s", e.Language, e.VideoID)
	}
	return fmt.Sprintf("no transcript found for video %s", e.VideoID)
}

// Is allows for error checking with errors.Is().
func (e *TranscriptNotFoundError) Is(target error) bool {
	_, ok := target.(*TranscriptNotFoundError)
	return ok
}

// LanguagesUnavailableError is returned when the set of available caption
// languages cannot be determined. Callers treat it as non-fatal and
// degrade the language listing instead of failing the transcript fetch.
type LanguagesUnavailableError struct {
	VideoID string
	Err     error
}

// Error implements the error interface.
func (e *LanguagesUnavailableError) Error() string {
	return fmt.Sprintf("caption languages unavailable for video %s: %v", e.VideoID, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *LanguagesUnavailableError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *LanguagesUnavailableError) Is(target error) bool {
	_, ok := target.(*LanguagesUnavailableError)
	return ok
}

// ProviderError wraps any transcript-provider failure that is neither a
// resolution failure nor a missing transcript. The underlying error text
// is preserved for diagnostics.
type ProviderError struct {
	VideoID string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s failed for video %s: %v", e.Op, e.VideoID, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ProviderError) Is(target error) bool {
	_, ok := target.(*ProviderError)
	return ok
}
