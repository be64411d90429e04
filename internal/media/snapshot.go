package media

// PlaybackState is the coarse playback status reported by a player.
type PlaybackState int

const (
	// StateUnknown is the zero value, used before a player has reported anything.
	StateUnknown PlaybackState = iota

	// StateIdle means the player has nothing to play.
	StateIdle

	// StateBuffering means the player wants to play but is waiting for data.
	StateBuffering

	// StateReady means the player can play immediately.
	StateReady

	// StateEnded means playback reached the end of the timeline.
	StateEnded
)

func (s PlaybackState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuffering:
		return "buffering"
	case StateReady:
		return "ready"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText lets the state render as its name in json/yaml output.
func (s PlaybackState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a read-only view of a player at one point in time.
type Snapshot struct {
	TimelineEmpty bool          `json:"timeline_empty" yaml:"timeline_empty"`
	PlaybackState PlaybackState `json:"playback_state" yaml:"playback_state"`
	PlayWhenReady bool          `json:"play_when_ready" yaml:"play_when_ready"`
}

// Stopped reports whether the player is idle or has finished.
func (s Snapshot) Stopped() bool {
	return s.PlaybackState == StateIdle || s.PlaybackState == StateEnded
}

// Player is the external engine whose state is observed.
//
// Subscribe registers fn to be called with every new snapshot and returns a
// function that removes the registration. Implementations decide which
// goroutine fn runs on; the types in this package expect it to be the UI
// goroutine. A nil *Source counts as no player; other implementations must
// not be passed around as typed nils.
type Player interface {
	Snapshot() Snapshot
	Subscribe(fn func(Snapshot)) (unsubscribe func())
}
