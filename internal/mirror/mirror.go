// Package mirror builds redirect URLs for the external download mirror.
// No media moves through this process: the mirror serves the actual file,
// and nothing here verifies that it will honor the request.
package mirror

import "strings"

// DefaultBaseURL is the mirror used when none is configured.
const DefaultBaseURL = "https://www.y2mate.com"

// Resolver constructs download targets on a single mirror site.
type Resolver struct {
	BaseURL string
}

func New(baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{BaseURL: strings.TrimRight(baseURL, "/")}
}

// DownloadTarget returns the mirror URL for the given video ID. fileFormat
// "mp3" selects the audio conversion path; anything else is treated as mp4.
// When itag is set on the mp4 path it is appended so the mirror can pick
// the exact stream, otherwise the mirror falls back to its own best
// quality default. Malformed IDs or itags are passed through untouched and
// rejected by the mirror itself.
func (r *Resolver) DownloadTarget(id, itag, fileFormat string) string {
	if fileFormat == "mp3" {
		return r.BaseURL + "/youtube-mp3/" + id
	}
	if itag != "" {
		return r.BaseURL + "/youtube/" + id + "/" + itag
	}
	return r.BaseURL + "/youtube/" + id
}
