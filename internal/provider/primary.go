package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tubegrab/tubegrab/internal/format"
)

// PrimaryClient fetches full video metadata from the paid stream-info API.
// The credential pair travels as request headers on every call; there is no
// retry or circuit breaking, a single failure triggers the oEmbed fallback
// in the resolver.
type PrimaryClient struct {
	APIKey  string
	APIHost string
	// Endpoint is the API base URL, derived from APIHost. Overridable for
	// tests.
	Endpoint string
	client   *http.Client
}

// NewPrimaryClient returns a client for the given RapidAPI-style credential
// pair. timeout bounds each request; zero means DefaultTimeout.
func NewPrimaryClient(apiKey, apiHost string, timeout time.Duration) *PrimaryClient {
	return &PrimaryClient{
		APIKey:   apiKey,
		APIHost:  apiHost,
		Endpoint: "https://" + apiHost,
		client:   newHTTPClient(timeout),
	}
}

// Name identifies the client in resolver error reports.
func (c *PrimaryClient) Name() string { return "primary" }

// wireItem is one stream entry as the API reports it. Itag arrives as a
// JSON number; the rest of the pipeline treats it as an opaque string.
type wireItem struct {
	Itag          json.Number `json:"itag"`
	MimeType      string      `json:"mimeType"`
	QualityLabel  string      `json:"qualityLabel"`
	Bitrate       int64       `json:"bitrate"`
	AudioQuality  string      `json:"audioQuality"`
	ContentLength string      `json:"contentLength"`
}

type wirePayload struct {
	Status        string      `json:"status"`
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	ChannelTitle  string      `json:"channelTitle"`
	LengthSeconds json.Number `json:"lengthSeconds"`
	ViewCount     json.Number `json:"viewCount"`
	Thumbnail     []struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"thumbnail"`
	Formats         []wireItem `json:"formats"`
	AdaptiveFormats []wireItem `json:"adaptiveFormats"`
}

// Fetch retrieves metadata for the given video ID. It fails on transport
// errors, non-2xx statuses, and bodies that do not decode into the
// expected structure.
func (c *PrimaryClient) Fetch(ctx context.Context, id string) (*VideoData, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("primary provider: no API key configured")
	}

	endpoint := fmt.Sprintf("%s/dl?id=%s", c.Endpoint, url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("primary provider: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.APIKey)
	req.Header.Set("x-rapidapi-host", c.APIHost)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("primary provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("primary provider: status %d", resp.StatusCode)
	}

	var payload wirePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("primary provider: decode response: %w", err)
	}
	if payload.Status != "" && payload.Status != "OK" {
		return nil, fmt.Errorf("primary provider: status %q", payload.Status)
	}

	data := &VideoData{
		ID:            id,
		Title:         payload.Title,
		Author:        payload.ChannelTitle,
		LengthSeconds: parseNumber(payload.LengthSeconds),
		ViewCount:     parseNumber(payload.ViewCount),
	}
	if payload.ID != "" {
		data.ID = payload.ID
	}

	// Thumbnails arrive smallest-first; take the largest.
	if n := len(payload.Thumbnail); n > 0 {
		data.ThumbnailURL = payload.Thumbnail[n-1].URL
	}

	// formats holds the combined/progressive streams; adaptiveFormats mixes
	// video-only and audio-only entries, of which only the audio ones are
	// deliverable on their own.
	for _, it := range payload.Formats {
		data.Videos = append(data.Videos, it.stream())
	}
	for _, it := range payload.AdaptiveFormats {
		if strings.HasPrefix(it.MimeType, "audio/") {
			data.Audios = append(data.Audios, it.stream())
		}
	}

	return data, nil
}

func (it wireItem) stream() format.Stream {
	return format.Stream{
		Itag:          it.Itag.String(),
		MimeType:      it.MimeType,
		QualityLabel:  it.QualityLabel,
		Bitrate:       it.Bitrate,
		AudioQuality:  it.AudioQuality,
		ContentLength: it.ContentLength,
	}
}

func parseNumber(n json.Number) int64 {
	v, err := n.Int64()
	if err != nil {
		return 0
	}
	return v
}
