package venue

import (
	"sync"
	"sync/atomic"
)

type EventKind int

const (
	PointerMoved EventKind = iota
	Engage
	Disengage
)

func (k EventKind) String() string {
	switch k {
	case PointerMoved:
		return "pointer"
	case Engage:
		return "engage"
	case Disengage:
		return "disengage"
	}
	return "unknown"
}

// Event is one host input event. DX and DY are only set for PointerMoved.
type Event struct {
	Kind   EventKind
	DX, DY float64
}

// InputAdapter collects host input until the next session tick.
//
// A host attaches the adapter when it starts listening for input and detaches it when it stops.
// While detached every event is ignored. Engagement is latched: the last Engage or Disengage before a
// tick wins and is never lost. Pointer deltas are summed and only count while engagement is latched on,
// so a Disengage discards whatever moved before it.
type InputAdapter struct {
	attached atomic.Bool

	mu      sync.Mutex
	engaged bool
	changed bool
	dx, dy  float64
	moves   int

	coalesced atomic.Uint64
}

func NewInputAdapter() *InputAdapter {
	return &InputAdapter{}
}

func (a *InputAdapter) Attach() {
	a.attached.Store(true)
}

// Detach stops accepting events and discards pending deltas. If engagement was latched on, the next
// drain delivers a Disengage.
func (a *InputAdapter) Detach() {
	a.attached.Store(false)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.dx, a.dy, a.moves = 0, 0, 0
	if a.engaged {
		a.engaged = false
		a.changed = true
	}
}

func (a *InputAdapter) Attached() bool {
	return a.attached.Load()
}

// PointerMoved adds a delta. It reports whether the delta was kept, which needs an attached adapter
// with engagement latched on.
func (a *InputAdapter) PointerMoved(dx, dy float64) bool {
	if !a.attached.Load() {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.engaged {
		return false
	}
	a.dx += dx
	a.dy += dy
	a.moves++
	return true
}

func (a *InputAdapter) Engage() bool {
	return a.latch(true)
}

// Disengage latches engagement off and drops the deltas still pending.
func (a *InputAdapter) Disengage() bool {
	return a.latch(false)
}

func (a *InputAdapter) latch(engaged bool) bool {
	if !a.attached.Load() {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !engaged {
		a.dx, a.dy, a.moves = 0, 0, 0
	}
	a.engaged = engaged
	a.changed = true
	return true
}

// Drain hands the pending input to fn and returns how many events that was: the latched engagement
// first, if it changed, then the summed pointer delta, if any.
func (a *InputAdapter) Drain(fn func(Event)) int {
	a.mu.Lock()
	var events [2]Event
	n := 0
	if a.changed {
		events[n] = Event{Kind: Disengage}
		if a.engaged {
			events[n].Kind = Engage
		}
		n++
	}
	if a.moves > 0 {
		events[n] = Event{Kind: PointerMoved, DX: a.dx, DY: a.dy}
		n++
		a.coalesced.Add(uint64(a.moves - 1))
	}
	a.changed = false
	a.dx, a.dy, a.moves = 0, 0, 0
	a.mu.Unlock()

	for _, e := range events[:n] {
		fn(e)
	}
	return n
}

// Coalesced counts pointer deltas merged into an earlier one of the same tick.
func (a *InputAdapter) Coalesced() uint64 {
	return a.coalesced.Load()
}
