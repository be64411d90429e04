package media

import "log/slog"

// Option configures the ControllerState created with a MediaState.
type Option func(*ControllerState)

// WithHideOnTouch sets whether touching a fully visible controller hides it.
func WithHideOnTouch(hide bool) Option {
	return func(c *ControllerState) { c.fields.hideOnTouch = hide }
}

// WithAutoShow sets whether the controller shows itself when playback needs
// attention (paused, ended, idle).
func WithAutoShow(auto bool) Option {
	return func(c *ControllerState) { c.fields.autoShow = auto }
}

// MediaState holds the observer of an optional player and the controller
// state derived from it.
//
// A MediaState is created once per UI scope and must only be used from the
// goroutine that runs that scope. Player notifications are expected on the
// same goroutine.
type MediaState struct {
	observer   *PlayerObserver
	controller *ControllerState
	subs       listeners[*MediaState]
}

// NewMediaState returns a MediaState observing p, which may be nil.
func NewMediaState(p Player, opts ...Option) *MediaState {
	s := &MediaState{}
	s.controller = newControllerState(s, opts...)
	s.observer = NewPlayerObserver(p, s.playerChanged)
	s.controller.refresh()
	return s
}

// Player returns the observed player, or nil when none is attached.
func (s *MediaState) Player() Player {
	if s.observer == nil {
		return nil
	}
	return s.observer.Player()
}

// SetPlayer replaces the observed player. The previous observer is closed and
// a new one is created for p. Passing the current player is a no-op; passing
// nil (or a nil *Source) detaches.
func (s *MediaState) SetPlayer(p Player) {
	if isNilPlayer(p) {
		p = nil
	}
	if p == s.Player() {
		return
	}
	if s.observer != nil {
		s.observer.Close()
	}
	s.observer = NewPlayerObserver(p, s.playerChanged)
	slog.Debug("media: player replaced", "attached", s.observer != nil)

	s.controller.refresh()
	s.subs.emit(s)
}

// PlayerState returns the latest player snapshot and whether a player is attached.
func (s *MediaState) PlayerState() (Snapshot, bool) {
	if s.observer == nil {
		return Snapshot{}, false
	}
	return s.observer.Snapshot(), true
}

// Controller returns the controller state owned by s.
func (s *MediaState) Controller() *ControllerState {
	return s.controller
}

// Subscribe registers fn to run after the player is replaced or reports a new
// snapshot. Derived controller state is already updated when fn runs.
func (s *MediaState) Subscribe(fn func(*MediaState)) func() {
	return s.subs.add(fn)
}

// Close detaches from the player without notifying subscribers.
func (s *MediaState) Close() {
	if s.observer != nil {
		s.observer.Close()
		s.observer = nil
	}
}

func (s *MediaState) playerChanged(Snapshot) {
	s.controller.refresh()
	s.subs.emit(s)
}

// Summary is a flat view of a MediaState for printing.
type Summary struct {
	Attached               bool                 `json:"attached" yaml:"attached"`
	Player                 *Snapshot            `json:"player,omitempty" yaml:"player,omitempty"`
	Visibility             ControllerVisibility `json:"visibility" yaml:"visibility"`
	Showing                bool                 `json:"showing" yaml:"showing"`
	HideOnTouch            bool                 `json:"hide_on_touch" yaml:"hide_on_touch"`
	AutoShow               bool                 `json:"auto_show" yaml:"auto_show"`
	ShouldShowIndefinitely bool                 `json:"should_show_indefinitely" yaml:"should_show_indefinitely"`
	ShowPause              bool                 `json:"show_pause" yaml:"show_pause"`
}

func (s *MediaState) Summary() Summary {
	c := s.controller
	sum := Summary{
		Visibility:             c.Visibility(),
		Showing:                c.IsShowing(),
		HideOnTouch:            c.HideOnTouch(),
		AutoShow:               c.AutoShow(),
		ShouldShowIndefinitely: c.ShouldShowIndefinitely(),
		ShowPause:              c.ShowPause(),
	}
	if snap, ok := s.PlayerState(); ok {
		sum.Attached = true
		sum.Player = &snap
	}
	return sum
}
