package events

// Handler receives an emitted event. Handlers run synchronously, in
// subscription order, before Emit returns — the bus never fans work out
// to another goroutine, matching the single-threaded cooperative model
// the battle runtime requires.
type Handler func(Event)

// Bus is a single-threaded publish/subscribe channel for battle events. It
// is owned by one battle (see lib/battle.Context) and is never shared
// between concurrent battles.
type Bus struct {
	handlers     map[Kind][]Handler
	globalHandlers []Handler
	history      []Event
	recordHistory bool
}

// NewBus constructs an event bus. When recordHistory is false, Emit still
// invokes handlers but History/ClearHistory are no-ops — useful for a hot
// batch run where only the summary matters.
func NewBus(recordHistory bool) *Bus {
	return &Bus{
		handlers:      make(map[Kind][]Handler),
		recordHistory: recordHistory,
	}
}

// Subscribe registers a handler for one event kind.
func (b *Bus) Subscribe(kind Kind, h Handler) {
	b.handlers[kind] = append(b.handlers[kind], h)
}

// SubscribeAll registers a handler invoked for every event, regardless of
// kind, after any kind-specific handlers have run.
func (b *Bus) SubscribeAll(h Handler) {
	b.globalHandlers = append(b.globalHandlers, h)
}

// Emit appends the event to history (if enabled) and invokes every matching
// handler synchronously, kind-specific handlers first in subscription
// order, then global handlers.
func (b *Bus) Emit(e Event) {
	if b.recordHistory {
		b.history = append(b.history, e)
	}
	for _, h := range b.handlers[e.Kind()] {
		h(e)
	}
	for _, h := range b.globalHandlers {
		h(e)
	}
}

// History returns recorded events, optionally filtered by kind and/or turn.
// An empty kind means any kind; a turn of 0 or less means any turn (battle
// turns here start at 1, so 0 safely means "any").
func (b *Bus) History(kind Kind, turn int) []Event {
	var out []Event
	for _, e := range b.history {
		if kind != "" && e.Kind() != kind {
			continue
		}
		if turn > 0 && e.TurnNumber() != turn {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AllHistory returns the complete, ordered event history.
func (b *Bus) AllHistory() []Event {
	return append([]Event(nil), b.history...)
}

// LastEvent returns the most recently emitted event of the given kind, or
// nil if none was emitted. Pass "" to get the last event of any kind.
func (b *Bus) LastEvent(kind Kind) Event {
	for i := len(b.history) - 1; i >= 0; i-- {
		if kind == "" || b.history[i].Kind() == kind {
			return b.history[i]
		}
	}
	return nil
}

// ClearHistory empties recorded history without touching subscriptions.
func (b *Bus) ClearHistory() {
	b.history = nil
}

// ClearHandlers removes every subscription without touching history.
func (b *Bus) ClearHandlers() {
	b.handlers = make(map[Kind][]Handler)
	b.globalHandlers = nil
}

// Reset clears both history and handlers, returning the bus to its initial
// state for reuse across battles.
func (b *Bus) Reset() {
	b.ClearHistory()
	b.ClearHandlers()
}
