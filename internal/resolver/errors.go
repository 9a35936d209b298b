package resolver

import "errors"

// ErrBadInput indicates the raw input was empty or no video identifier
// could be extracted from it. No provider call is made in that case.
var ErrBadInput = errors.New("could not extract video id from input")

// UpstreamError is returned when both the primary provider and the oEmbed
// fallback failed for a request.
type UpstreamError struct {
	PrimaryErr  error
	FallbackErr error
}

func (e *UpstreamError) Error() string {
	return "all methods failed to fetch video information"
}

// Unwrap exposes both attempt errors to errors.Is/As.
func (e *UpstreamError) Unwrap() []error {
	return []error{e.PrimaryErr, e.FallbackErr}
}
