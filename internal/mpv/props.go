package mpv

import "github.com/ygelfand/mpvctl/internal/media"

// observed lists the mpv properties the engine watches. The observe_property
// id of each entry is its index + 1.
var observed = []string{
	"pause",
	"idle-active",
	"eof-reached",
	"paused-for-cache",
	"playlist-count",
	"time-pos",
	"duration",
	"media-title",
}

func observedName(id int) string {
	if id < 1 || id > len(observed) {
		return ""
	}
	return observed[id-1]
}

// Props is the subset of mpv's property tree the controller cares about.
type Props struct {
	Pause          bool    `json:"pause" yaml:"pause"`
	IdleActive     bool    `json:"idle_active" yaml:"idle_active"`
	EOFReached     bool    `json:"eof_reached" yaml:"eof_reached"`
	PausedForCache bool    `json:"paused_for_cache" yaml:"paused_for_cache"`
	PlaylistCount  int     `json:"playlist_count" yaml:"playlist_count"`
	TimePos        float64 `json:"time_pos" yaml:"time_pos"`
	Duration       float64 `json:"duration" yaml:"duration"`
	Title          string  `json:"title" yaml:"title"`
}

// Snapshot maps mpv properties onto the player model used by the controller.
func (p Props) Snapshot() media.Snapshot {
	state := media.StateReady
	switch {
	case p.IdleActive:
		state = media.StateIdle
	case p.EOFReached:
		state = media.StateEnded
	case p.PausedForCache:
		state = media.StateBuffering
	}
	return media.Snapshot{
		TimelineEmpty: p.PlaylistCount == 0,
		PlaybackState: state,
		PlayWhenReady: !p.Pause,
	}
}

// Progress returns the playback position as a fraction in [0, 1].
func (p Props) Progress() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return min(max(p.TimePos/p.Duration, 0), 1)
}

// apply stores one property value as delivered by mpv's JSON IPC. A nil value
// means the property is currently unavailable and resets the field. It
// reports whether the field changed.
func (p *Props) apply(name string, data any) bool {
	before := *p
	switch name {
	case "pause":
		p.Pause = asBool(data)
	case "idle-active":
		p.IdleActive = asBool(data)
	case "eof-reached":
		p.EOFReached = asBool(data)
	case "paused-for-cache":
		p.PausedForCache = asBool(data)
	case "playlist-count":
		p.PlaylistCount = int(asFloat(data))
	case "time-pos":
		p.TimePos = asFloat(data)
	case "duration":
		p.Duration = asFloat(data)
	case "media-title":
		p.Title, _ = data.(string)
	default:
		return false
	}
	return *p != before
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
