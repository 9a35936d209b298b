// Package videoid extracts the 11-character video identifier from the URL
// shapes users actually paste: watch pages, short links, embeds, shorts,
// legacy /v/ paths, or a bare identifier.
package videoid

import "regexp"

// patterns are tried in order; the first non-empty capture wins. The first
// pattern is a superset matcher that covers most URL shapes, the narrower
// ones catch stragglers, and the last matches a bare identifier.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`),
	regexp.MustCompile(`youtu\.be/([^"&?/\s]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([^"&?/\s]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([^"&?/\s]{11})`),
	regexp.MustCompile(`youtube\.com/v/([^"&?/\s]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// Extract returns the video identifier embedded in input, or ok=false when
// no pattern matches. Callers are expected to trim whitespace first; Extract
// does no canonicalization of its own.
func Extract(input string) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(input); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}
