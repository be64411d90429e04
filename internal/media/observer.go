package media

// PlayerObserver keeps the latest snapshot of a Player and forwards changes.
//
// An observer is bound to one player for its whole life. When the player
// reference changes, the owner closes the old observer and creates a new one.
type PlayerObserver struct {
	player      Player
	snap        Snapshot
	onChange    func(Snapshot)
	unsubscribe func()
	closed      bool
}

// NewPlayerObserver starts observing p. It returns nil when p is nil,
// including a nil *Source. Other Player implementations must not be passed
// as typed nils.
func NewPlayerObserver(p Player, onChange func(Snapshot)) *PlayerObserver {
	if isNilPlayer(p) {
		return nil
	}
	o := &PlayerObserver{
		player:   p,
		snap:     p.Snapshot(),
		onChange: onChange,
	}
	o.unsubscribe = p.Subscribe(o.update)
	return o
}

func (o *PlayerObserver) update(snap Snapshot) {
	if o.closed || snap == o.snap {
		return
	}
	o.snap = snap
	if o.onChange != nil {
		o.onChange(snap)
	}
}

// Player returns the observed player.
func (o *PlayerObserver) Player() Player {
	return o.player
}

// Snapshot returns the most recently observed state.
func (o *PlayerObserver) Snapshot() Snapshot {
	return o.snap
}

// Close stops observing. Further player notifications are ignored.
func (o *PlayerObserver) Close() {
	if o.closed {
		return
	}
	o.closed = true
	if o.unsubscribe != nil {
		o.unsubscribe()
	}
	o.onChange = nil
}

func isNilPlayer(p Player) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *Source:
		return v == nil
	}
	return false
}
