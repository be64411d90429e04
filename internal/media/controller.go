package media

import "log/slog"

type controllerFields struct {
	hideOnTouch            bool
	autoShow               bool
	visibility             ControllerVisibility
	shouldShowIndefinitely bool
	showPause              bool
}

// ControllerState is the visibility state machine of the playback controller.
//
// It is owned by exactly one MediaState and reads the player snapshot through
// it. ShouldShowIndefinitely and ShowPause are recomputed every time the
// owner's player changes or reports a new snapshot.
type ControllerState struct {
	media  *MediaState
	fields controllerFields
	subs   listeners[*ControllerState]
}

func newControllerState(m *MediaState, opts ...Option) *ControllerState {
	c := &ControllerState{
		media: m,
		fields: controllerFields{
			hideOnTouch: true,
			autoShow:    true,
			visibility:  Invisible,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ControllerState) HideOnTouch() bool { return c.fields.hideOnTouch }
func (c *ControllerState) AutoShow() bool    { return c.fields.autoShow }

func (c *ControllerState) SetHideOnTouch(hide bool) {
	c.mutate(func(f *controllerFields) { f.hideOnTouch = hide })
}

func (c *ControllerState) SetAutoShow(auto bool) {
	c.mutate(func(f *controllerFields) { f.autoShow = auto })
}

func (c *ControllerState) Visibility() ControllerVisibility {
	return c.fields.visibility
}

// SetVisibility moves the controller to v. It is the only way to reach
// PartiallyVisible.
func (c *ControllerState) SetVisibility(v ControllerVisibility) {
	c.mutate(func(f *controllerFields) { f.visibility = v })
}

// IsShowing is true when the controller is Visible or PartiallyVisible.
func (c *ControllerState) IsShowing() bool {
	return c.fields.visibility.IsShowing()
}

// SetShowing makes the controller Visible or Invisible.
func (c *ControllerState) SetShowing(showing bool) {
	if showing {
		c.SetVisibility(Visible)
	} else {
		c.SetVisibility(Invisible)
	}
}

// ToggleVisibility reacts to a touch on the player surface.
//
// A fully visible controller hides only when HideOnTouch is set. A partially
// visible or hidden controller always becomes fully visible.
func (c *ControllerState) ToggleVisibility() {
	switch c.fields.visibility {
	case Visible:
		if c.fields.hideOnTouch {
			c.SetVisibility(Invisible)
		}
	case PartiallyVisible, Invisible:
		c.SetVisibility(Visible)
	}
}

// MaybeShow makes the controller Visible when force is set, or when AutoShow
// is enabled and the player state calls for an indefinitely shown
// controller. It reports whether the controller was shown.
func (c *ControllerState) MaybeShow(force bool) bool {
	if force || (c.fields.autoShow && c.fields.shouldShowIndefinitely) {
		c.SetVisibility(Visible)
		return true
	}
	return false
}

// ShouldShowIndefinitely is true when the controller should not auto-hide:
// no player is attached, or content is loaded and playback is not running.
func (c *ControllerState) ShouldShowIndefinitely() bool {
	return c.fields.shouldShowIndefinitely
}

// ShowPause is true when the primary button should offer "pause".
func (c *ControllerState) ShowPause() bool {
	return c.fields.showPause
}

// Subscribe registers fn to run after any observable field changes.
func (c *ControllerState) Subscribe(fn func(*ControllerState)) func() {
	return c.subs.add(fn)
}

func (c *ControllerState) refresh() {
	snap, attached := c.media.PlayerState()
	c.mutate(func(f *controllerFields) {
		f.shouldShowIndefinitely = shouldShowIndefinitely(snap, attached)
		f.showPause = showPause(snap, attached)
	})
}

func (c *ControllerState) mutate(fn func(*controllerFields)) {
	before := c.fields
	fn(&c.fields)
	if c.fields == before {
		return
	}
	if before.visibility != c.fields.visibility {
		slog.Debug("media: controller visibility", "from", before.visibility, "to", c.fields.visibility)
	}
	c.subs.emit(c)
}

func shouldShowIndefinitely(snap Snapshot, attached bool) bool {
	if !attached {
		return true
	}
	return !snap.TimelineEmpty && (snap.Stopped() || !snap.PlayWhenReady)
}

func showPause(snap Snapshot, attached bool) bool {
	return attached && !snap.Stopped() && snap.PlayWhenReady
}
