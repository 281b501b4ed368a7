package engine

import (
	"time"

	"github.com/lixenwraith/princess-guard/vmath"
)

// EventType identifies a game notification
type EventType int

const (
	EventStarted EventType = iota
	EventEnemySpawned
	EventEnemyKilled
	EventScoreChanged
	EventBonusClear
	EventGameOver
	EventViewportChanged
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventEnemySpawned:
		return "spawned"
	case EventEnemyKilled:
		return "killed"
	case EventScoreChanged:
		return "score"
	case EventBonusClear:
		return "bonus"
	case EventGameOver:
		return "gameover"
	case EventViewportChanged:
		return "viewport"
	default:
		return "unknown"
	}
}

// GameEvent is emitted by systems during a tick and delivered to handlers
// after the tick's systems have run
type GameEvent struct {
	Type  EventType
	Tick  uint64
	Time  time.Time
	Score int64

	// Optional details, depending on Type
	Position vmath.Vec2 // spawned, killed, gameover: where it happened
	Slot     int        // killed: player slot that scored
	Cleared  int        // bonus: enemies removed
}

// Handler receives routed events on the scheduler goroutine
type Handler interface {
	// HandleEvent processes a single event; it must not block
	HandleEvent(event GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(GameEvent)
}

func (h HandlerFunc) HandleEvent(event GameEvent) { h.Fn(event) }
func (h HandlerFunc) EventTypes() []EventType     { return h.Types }

// AllEvents lists every event type, for handlers that want everything
var AllEvents = []EventType{
	EventStarted, EventEnemySpawned, EventEnemyKilled, EventScoreChanged,
	EventBonusClear, EventGameOver, EventViewportChanged,
}

// Router queues events during a tick and dispatches them in FIFO order.
// Single-threaded: Emit and Dispatch both run on the scheduler goroutine.
type Router struct {
	handlers map[EventType][]Handler
	queue    []GameEvent
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Emit queues an event for the next Dispatch
func (r *Router) Emit(event GameEvent) {
	r.queue = append(r.queue, event)
}

// Pending returns the number of queued events
func (r *Router) Pending() int {
	return len(r.queue)
}

// Dispatch delivers all queued events, including ones emitted by handlers
// during dispatch, and returns how many were delivered
func (r *Router) Dispatch() int {
	n := 0
	for len(r.queue) > 0 {
		batch := r.queue
		r.queue = nil
		for _, ev := range batch {
			for _, h := range r.handlers[ev.Type] {
				h.HandleEvent(ev)
			}
			n++
		}
	}
	return n
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
