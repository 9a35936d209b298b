package format

import "testing"

func TestNormalizeVideoAudioFlags(t *testing.T) {
	videos := []Stream{
		{Itag: "22", MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`, QualityLabel: "720p", Bitrate: 1500000, AudioQuality: "AUDIO_QUALITY_MEDIUM"},
		{Itag: "137", MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p", Bitrate: 4000000},
	}
	audios := []Stream{
		{Itag: "140", MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 128000},
		{Itag: "251", Bitrate: 160000},
	}

	got := Normalize(videos, audios)
	if len(got) != 4 {
		t.Fatalf("got %d formats, want 4", len(got))
	}

	byItag := map[string]Format{}
	for _, f := range got {
		byItag[f.Itag] = f
		if !f.HasVideo && !f.HasAudio {
			t.Errorf("itag %s has neither video nor audio", f.Itag)
		}
	}

	combined := byItag["22"]
	if !combined.HasVideo || !combined.HasAudio {
		t.Errorf("itag 22: HasVideo=%v HasAudio=%v, want both true", combined.HasVideo, combined.HasAudio)
	}
	if combined.Container != "mp4" || combined.Codecs != "avc1.64001F, mp4a.40.2" {
		t.Errorf("itag 22: container=%q codecs=%q", combined.Container, combined.Codecs)
	}

	videoOnly := byItag["137"]
	if !videoOnly.HasVideo || videoOnly.HasAudio {
		t.Errorf("itag 137: HasVideo=%v HasAudio=%v, want video only", videoOnly.HasVideo, videoOnly.HasAudio)
	}

	audio := byItag["140"]
	if audio.HasVideo || !audio.HasAudio {
		t.Errorf("itag 140: HasVideo=%v HasAudio=%v, want audio only", audio.HasVideo, audio.HasAudio)
	}
	if audio.QualityLabel != AudioOnlyLabel {
		t.Errorf("itag 140: label %q, want %q", audio.QualityLabel, AudioOnlyLabel)
	}

	// Audio item without a MIME type gets one synthesized from the container.
	bare := byItag["251"]
	if bare.MimeType != "audio/mp4" {
		t.Errorf("itag 251: mimeType %q, want audio/mp4", bare.MimeType)
	}
}

func TestNormalizeOrdering(t *testing.T) {
	videos := []Stream{
		{Itag: "v480", QualityLabel: "480p", MimeType: "video/mp4", Bitrate: 1000000, AudioQuality: "AUDIO_QUALITY_LOW"},
		{Itag: "v720", QualityLabel: "720p", MimeType: "video/mp4", Bitrate: 2000000, AudioQuality: "AUDIO_QUALITY_MEDIUM"},
	}
	audios := []Stream{
		{Itag: "a128", MimeType: "audio/mp4", Bitrate: 128000},
		{Itag: "a256", MimeType: "audio/mp4", Bitrate: 256000},
	}

	got := Normalize(videos, audios)

	want := []string{"v720", "v480", "a256", "a128"}
	for i, itag := range want {
		if got[i].Itag != itag {
			t.Fatalf("position %d: got itag %s, want %s (full order: %v)", i, got[i].Itag, itag, itags(got))
		}
	}
}

func TestSortUnparseableLabelsLast(t *testing.T) {
	formats := []Format{
		{Itag: "a", QualityLabel: "unknown", HasVideo: true},
		{Itag: "b", QualityLabel: "1080p60", HasVideo: true},
		{Itag: "c", QualityLabel: "144p", HasVideo: true},
	}
	Sort(formats)
	if formats[0].Itag != "b" || formats[1].Itag != "c" || formats[2].Itag != "a" {
		t.Errorf("unexpected order: %v", itags(formats))
	}
}

func TestLimited(t *testing.T) {
	got := Limited()
	if len(got) != 2 {
		t.Fatalf("got %d placeholder formats, want 2", len(got))
	}

	video, audio := got[0], got[1]
	if video.Itag != "18" || video.QualityLabel != "360p" || !video.HasVideo || !video.HasAudio {
		t.Errorf("unexpected video placeholder: %+v", video)
	}
	if audio.Itag != "140" || audio.Bitrate != 128000 || audio.HasVideo || !audio.HasAudio {
		t.Errorf("unexpected audio placeholder: %+v", audio)
	}
	for _, f := range got {
		if f.ContentLength != "0" {
			t.Errorf("itag %s: contentLength %q, want \"0\"", f.Itag, f.ContentLength)
		}
	}
}

func TestSplitMime(t *testing.T) {
	tests := []struct {
		mime      string
		container string
		codecs    string
	}{
		{`video/mp4; codecs="avc1.64001F, mp4a.40.2"`, "mp4", "avc1.64001F, mp4a.40.2"},
		{`audio/webm; codecs="opus"`, "webm", "opus"},
		{"video/mp4", "mp4", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		container, codecs := splitMime(tt.mime)
		if container != tt.container || codecs != tt.codecs {
			t.Errorf("splitMime(%q) = (%q, %q), want (%q, %q)", tt.mime, container, codecs, tt.container, tt.codecs)
		}
	}
}

func itags(formats []Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = f.Itag
	}
	return out
}
