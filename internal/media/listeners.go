package media

// listeners is an ordered set of callbacks. It is not safe for concurrent use.
type listeners[T any] struct {
	next int
	fns  map[int]func(T)
	ids  []int
}

func (l *listeners[T]) add(fn func(T)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.ids = append(l.ids, id)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		delete(l.fns, id)
		for i, v := range l.ids {
			if v == id {
				l.ids = append(l.ids[:i:i], l.ids[i+1:]...)
				break
			}
		}
	}
}

// emit calls every callback registered at the time of the call, in
// registration order. Callbacks removed during emission are skipped.
func (l *listeners[T]) emit(v T) {
	ids := append([]int(nil), l.ids...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			fn(v)
		}
	}
}

func (l *listeners[T]) len() int {
	return len(l.ids)
}
