package media

// Source is a Player whose snapshot is pushed in by its owner.
//
// The TUI uses it to hand snapshots received from the mpv reader goroutine
// over to the UI goroutine: the engine update arrives as a message and the
// Update loop calls Set. Set notifies subscribers synchronously and only when
// the snapshot actually changed.
type Source struct {
	snap Snapshot
	subs listeners[Snapshot]
}

// NewSource returns a Source that starts at snap.
func NewSource(snap Snapshot) *Source {
	return &Source{snap: snap}
}

func (s *Source) Snapshot() Snapshot {
	return s.snap
}

func (s *Source) Subscribe(fn func(Snapshot)) func() {
	return s.subs.add(fn)
}

// Set stores snap and notifies subscribers if it differs from the current one.
// It reports whether anything changed.
func (s *Source) Set(snap Snapshot) bool {
	if snap == s.snap {
		return false
	}
	s.snap = snap
	s.subs.emit(snap)
	return true
}

// Subscribers returns the number of live subscriptions.
func (s *Source) Subscribers() int {
	return s.subs.len()
}
