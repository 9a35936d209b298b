// Package provider implements the outbound metadata clients: a credentialed
// primary API that reports full stream listings, and the public oEmbed
// endpoint used as a degraded fallback.
package provider

import (
	"net/http"
	"time"

	"github.com/tubegrab/tubegrab/internal/format"
)

// DefaultTimeout bounds every outbound metadata call. A hung upstream
// otherwise hangs the whole request.
const DefaultTimeout = 15 * time.Second

// VideoData is the primary provider's result: full metadata plus the two
// raw stream lists (combined/video streams and audio-only streams).
type VideoData struct {
	ID            string
	Title         string
	Author        string
	LengthSeconds int64
	ViewCount     int64
	ThumbnailURL  string
	Videos        []format.Stream
	Audios        []format.Stream
}

// OEmbedData is the reduced shape the public oEmbed endpoint reports.
// There is no stream list, duration, or view count on this path.
type OEmbedData struct {
	Title        string
	Author       string
	ThumbnailURL string
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
		},
	}
}
