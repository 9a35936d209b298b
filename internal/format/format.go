// Package format normalizes provider stream listings into the single
// deliverable-format shape the API exposes.
package format

import (
	"fmt"
	"sort"
	"strings"
)

// Format describes one selectable media stream. Field names are the
// external JSON contract of the /api/info endpoint.
type Format struct {
	Itag          string `json:"itag"`
	MimeType      string `json:"mimeType"`
	QualityLabel  string `json:"qualityLabel"`
	Bitrate       int64  `json:"bitrate"`
	HasVideo      bool   `json:"hasVideo"`
	HasAudio      bool   `json:"hasAudio"`
	Container     string `json:"container,omitempty"`
	Codecs        string `json:"codecs,omitempty"`
	ContentLength string `json:"contentLength,omitempty"`
}

// AudioOnlyLabel is the quality label given to every audio-only format.
const AudioOnlyLabel = "Audio Only"

// Stream is one raw item as reported by the primary provider, before
// normalization.
type Stream struct {
	Itag          string
	MimeType      string
	QualityLabel  string
	Bitrate       int64
	AudioQuality  string
	ContentLength string
}

// Normalize flattens the provider's video and audio stream lists into one
// ordered Format slice: video items first (descending resolution), then
// audio items (descending bitrate).
func Normalize(videos, audios []Stream) []Format {
	out := make([]Format, 0, len(videos)+len(audios))

	for _, s := range videos {
		container, codecs := splitMime(s.MimeType)
		out = append(out, Format{
			Itag:          s.Itag,
			MimeType:      s.MimeType,
			QualityLabel:  s.QualityLabel,
			Bitrate:       s.Bitrate,
			HasVideo:      true,
			HasAudio:      s.AudioQuality != "",
			Container:     container,
			Codecs:        codecs,
			ContentLength: s.ContentLength,
		})
	}

	for _, s := range audios {
		container, codecs := splitMime(s.MimeType)
		mime := s.MimeType
		if mime == "" {
			if container == "" {
				container = "mp4"
			}
			mime = "audio/" + container
		}
		out = append(out, Format{
			Itag:          s.Itag,
			MimeType:      mime,
			QualityLabel:  AudioOnlyLabel,
			Bitrate:       s.Bitrate,
			HasVideo:      false,
			HasAudio:      true,
			Container:     container,
			Codecs:        codecs,
			ContentLength: s.ContentLength,
		})
	}

	Sort(out)
	return out
}

// Sort orders formats for presentation: all video formats before all audio
// formats, video by descending resolution, audio by descending bitrate.
// The sort is stable so equal entries keep their provider order.
func Sort(formats []Format) {
	sort.SliceStable(formats, func(i, j int) bool {
		a, b := formats[i], formats[j]
		if a.HasVideo != b.HasVideo {
			return a.HasVideo
		}
		if a.HasVideo {
			return resolution(a.QualityLabel) > resolution(b.QualityLabel)
		}
		return a.Bitrate > b.Bitrate
	})
}

// Limited returns the two placeholder formats used when only degraded
// oEmbed metadata is available: a combined 360p MP4 and a 128 kbps audio
// track. Content lengths are genuinely unknown.
func Limited() []Format {
	return []Format{
		{
			Itag:          "18",
			MimeType:      "video/mp4",
			QualityLabel:  "360p",
			Bitrate:       0,
			HasVideo:      true,
			HasAudio:      true,
			Container:     "mp4",
			ContentLength: "0",
		},
		{
			Itag:          "140",
			MimeType:      "audio/mp4",
			QualityLabel:  AudioOnlyLabel,
			Bitrate:       128000,
			HasVideo:      false,
			HasAudio:      true,
			Container:     "mp4",
			ContentLength: "0",
		},
	}
}

// resolution parses the leading digits of a quality label ("720p60" -> 720).
// Unparseable labels sort last within the video group.
func resolution(label string) int {
	n := 0
	seen := false
	for _, r := range label {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}

// splitMime separates "video/mp4; codecs=\"avc1.64001F, mp4a.40.2\"" into
// container ("mp4") and codecs ("avc1.64001F, mp4a.40.2").
func splitMime(mime string) (container, codecs string) {
	if mime == "" {
		return "", ""
	}
	base := mime
	if i := strings.Index(mime, ";"); i >= 0 {
		base = mime[:i]
		rest := mime[i+1:]
		if j := strings.Index(rest, "codecs="); j >= 0 {
			codecs = strings.Trim(strings.TrimSpace(rest[j+len("codecs="):]), `"`)
		}
	}
	if k := strings.Index(base, "/"); k >= 0 {
		container = strings.TrimSpace(base[k+1:])
	}
	return container, codecs
}

// String implements fmt.Stringer for log lines and the CLI listing.
func (f Format) String() string {
	return fmt.Sprintf("itag=%s %s %s %dbps", f.Itag, f.QualityLabel, f.MimeType, f.Bitrate)
}
