// Package resolver sequences identifier extraction, the primary metadata
// provider, and the oEmbed fallback into one normalized result.
package resolver

import (
	"context"
	"log"
	"strings"

	"github.com/tubegrab/tubegrab/internal/format"
	"github.com/tubegrab/tubegrab/internal/provider"
	"github.com/tubegrab/tubegrab/internal/videoid"
)

// Source records which provider produced a result.
type Source string

const (
	// SourceFull means the primary provider succeeded and the format list
	// is provider-reported.
	SourceFull Source = "full"
	// SourceLimited means only the oEmbed fallback succeeded; formats are
	// synthesized placeholders.
	SourceLimited Source = "limited"
)

// Metadata is the aggregate resolution result. It is created fresh per
// request and never persisted server-side.
type Metadata struct {
	VideoID       string
	Title         string
	Author        string
	LengthSeconds int64
	ViewCount     int64
	ThumbnailURL  string
	Formats       []format.Format
	Source        Source
}

// PrimaryProvider is the rich, credentialed metadata source.
type PrimaryProvider interface {
	Name() string
	Fetch(ctx context.Context, id string) (*provider.VideoData, error)
}

// FallbackProvider is the degraded public metadata source.
type FallbackProvider interface {
	Name() string
	Fetch(ctx context.Context, id string) (*provider.OEmbedData, error)
}

// Resolver chains the two providers. Primary is always tried first; the
// fallback only runs once primary failure is known, so the two calls are
// sequential by design.
type Resolver struct {
	Primary  PrimaryProvider
	Fallback FallbackProvider
}

func New(primary PrimaryProvider, fallback FallbackProvider) *Resolver {
	return &Resolver{Primary: primary, Fallback: fallback}
}

// Resolve extracts the video identifier from raw user input and resolves
// it. Returns ErrBadInput when the input is blank or unparseable, before
// any provider call.
func (r *Resolver) Resolve(ctx context.Context, rawInput string) (*Metadata, error) {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		return nil, ErrBadInput
	}
	id, ok := videoid.Extract(input)
	if !ok {
		return nil, ErrBadInput
	}
	return r.ResolveID(ctx, id)
}

// ResolveID resolves an already-extracted identifier: primary first, then
// the oEmbed fallback with synthesized formats, then UpstreamError when
// both fail. Neither provider is ever retried.
func (r *Resolver) ResolveID(ctx context.Context, id string) (*Metadata, error) {
	data, primaryErr := r.Primary.Fetch(ctx, id)
	if primaryErr == nil {
		return &Metadata{
			VideoID:       data.ID,
			Title:         data.Title,
			Author:        data.Author,
			LengthSeconds: data.LengthSeconds,
			ViewCount:     data.ViewCount,
			ThumbnailURL:  data.ThumbnailURL,
			Formats:       format.Normalize(data.Videos, data.Audios),
			Source:        SourceFull,
		}, nil
	}
	log.Printf("resolver: %s failed for %s, falling back to %s: %v",
		r.Primary.Name(), id, r.Fallback.Name(), primaryErr)

	oe, fallbackErr := r.Fallback.Fetch(ctx, id)
	if fallbackErr == nil {
		return &Metadata{
			VideoID:      id,
			Title:        oe.Title,
			Author:       oe.Author,
			ThumbnailURL: oe.ThumbnailURL,
			Formats:      format.Limited(),
			Source:       SourceLimited,
		}, nil
	}
	log.Printf("resolver: %s failed for %s: %v", r.Fallback.Name(), id, fallbackErr)

	return nil, &UpstreamError{PrimaryErr: primaryErr, FallbackErr: fallbackErr}
}
