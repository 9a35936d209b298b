package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultOEmbedEndpoint = "https://www.youtube.com/oembed"

// OEmbedClient fetches reduced metadata from the public oEmbed endpoint.
// No credential is required; the endpoint is keyed by a canonical watch URL
// built from the video ID. It exists so the UI can show something when the
// primary provider is unreachable, not to recover the stream list.
type OEmbedClient struct {
	Endpoint string
	client   *http.Client
}

// NewOEmbedClient returns a fallback client. timeout bounds each request;
// zero means DefaultTimeout.
func NewOEmbedClient(timeout time.Duration) *OEmbedClient {
	return &OEmbedClient{
		Endpoint: defaultOEmbedEndpoint,
		client:   newHTTPClient(timeout),
	}
}

// Name identifies the client in resolver error reports.
func (c *OEmbedClient) Name() string { return "oembed" }

// Fetch retrieves title, author, and thumbnail for the given video ID.
func (c *OEmbedClient) Fetch(ctx context.Context, id string) (*OEmbedData, error) {
	watchURL := "https://www.youtube.com/watch?v=" + id
	endpoint := fmt.Sprintf("%s?url=%s&format=json", c.Endpoint, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("oembed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("oembed: status %d", resp.StatusCode)
	}

	var payload struct {
		Title        string `json:"title"`
		AuthorName   string `json:"author_name"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("oembed: decode response: %w", err)
	}

	data := &OEmbedData{
		Title:        payload.Title,
		Author:       payload.AuthorName,
		ThumbnailURL: payload.ThumbnailURL,
	}
	if data.Title == "" {
		data.Title = "Unknown Title"
	}
	if data.Author == "" {
		data.Author = "Unknown"
	}
	return data, nil
}
