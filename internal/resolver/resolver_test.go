package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/tubegrab/tubegrab/internal/format"
	"github.com/tubegrab/tubegrab/internal/provider"
)

type fakePrimary struct {
	calls int
	data  *provider.VideoData
	err   error
}

func (f *fakePrimary) Name() string { return "fake-primary" }
func (f *fakePrimary) Fetch(ctx context.Context, id string) (*provider.VideoData, error) {
	f.calls++
	return f.data, f.err
}

type fakeFallback struct {
	calls int
	data  *provider.OEmbedData
	err   error
}

func (f *fakeFallback) Name() string { return "fake-fallback" }
func (f *fakeFallback) Fetch(ctx context.Context, id string) (*provider.OEmbedData, error) {
	f.calls++
	return f.data, f.err
}

func TestResolvePrimarySuccess(t *testing.T) {
	primary := &fakePrimary{data: &provider.VideoData{
		ID:            "dQw4w9WgXcQ",
		Title:         "Full Title",
		Author:        "Full Author",
		LengthSeconds: 212,
		ViewCount:     42,
		ThumbnailURL:  "https://i.ytimg.com/t.jpg",
		Videos:        []format.Stream{{Itag: "22", QualityLabel: "720p", MimeType: "video/mp4", AudioQuality: "AUDIO_QUALITY_MEDIUM"}},
		Audios:        []format.Stream{{Itag: "140", MimeType: "audio/mp4", Bitrate: 128000}},
	}}
	fallback := &fakeFallback{}

	meta, err := New(primary, fallback).Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if meta.Source != SourceFull {
		t.Errorf("source = %q, want %q", meta.Source, SourceFull)
	}
	if meta.VideoID != "dQw4w9WgXcQ" || meta.Title != "Full Title" {
		t.Errorf("videoId=%q title=%q", meta.VideoID, meta.Title)
	}
	if len(meta.Formats) != 2 {
		t.Errorf("got %d formats, want 2", len(meta.Formats))
	}
	if fallback.calls != 0 {
		t.Errorf("fallback called %d times on primary success", fallback.calls)
	}
}

func TestResolveFallsBackOnce(t *testing.T) {
	primary := &fakePrimary{err: errors.New("status 429")}
	fallback := &fakeFallback{data: &provider.OEmbedData{
		Title:        "Limited Title",
		Author:       "Limited Author",
		ThumbnailURL: "https://i.ytimg.com/t.jpg",
	}}

	meta, err := New(primary, fallback).Resolve(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("primary=%d fallback=%d calls, want 1 each", primary.calls, fallback.calls)
	}
	if meta.Source != SourceLimited {
		t.Errorf("source = %q, want %q", meta.Source, SourceLimited)
	}
	if meta.LengthSeconds != 0 || meta.ViewCount != 0 {
		t.Errorf("length=%d views=%d, want zeros on the limited path", meta.LengthSeconds, meta.ViewCount)
	}
	if len(meta.Formats) != 2 {
		t.Fatalf("got %d formats, want exactly 2 placeholders", len(meta.Formats))
	}
	for _, f := range meta.Formats {
		if f.ContentLength != "0" {
			t.Errorf("itag %s: contentLength %q, want \"0\"", f.Itag, f.ContentLength)
		}
	}
}

func TestResolveBothFail(t *testing.T) {
	primaryErr := errors.New("primary down")
	fallbackErr := errors.New("oembed down")
	primary := &fakePrimary{err: primaryErr}
	fallback := &fakeFallback{err: fallbackErr}

	_, err := New(primary, fallback).Resolve(context.Background(), "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected error when both providers fail")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error type %T, want *UpstreamError", err)
	}
	if !errors.Is(err, primaryErr) || !errors.Is(err, fallbackErr) {
		t.Error("UpstreamError should wrap both attempt errors")
	}
}

func TestResolveBadInput(t *testing.T) {
	primary := &fakePrimary{}
	fallback := &fakeFallback{}
	r := New(primary, fallback)

	for _, input := range []string{"", "   ", "not a url", "http://example.com"} {
		if _, err := r.Resolve(context.Background(), input); !errors.Is(err, ErrBadInput) {
			t.Errorf("Resolve(%q) err = %v, want ErrBadInput", input, err)
		}
	}
	if primary.calls != 0 || fallback.calls != 0 {
		t.Errorf("providers called on bad input: primary=%d fallback=%d", primary.calls, fallback.calls)
	}
}
