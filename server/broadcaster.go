package server

import (
	"encoding/json"
	"sync"

	"github.com/lixenwraith/princess-guard/engine"
)

// subscriberBuffer is how many messages a slow SSE client may lag behind
// before further messages are dropped for it
const subscriberBuffer = 16

// Message is one server-sent event
type Message struct {
	Event string
	Data  string
}

// eventPayload is the JSON body of a streamed game event
type eventPayload struct {
	Tick    uint64  `json:"tick"`
	Score   int64   `json:"score"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Slot    int     `json:"slot"`
	Cleared int     `json:"cleared,omitempty"`
}

// Broadcaster fans game events out to SSE subscribers. It is registered on
// each world's router, so HandleEvent runs on the scheduler goroutine and
// must never block.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Message]struct{}
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[chan Message]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its channel
func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel
func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Subscribers returns the current subscriber count
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish delivers msg to every subscriber, dropping it for lagging ones
func (b *Broadcaster) Publish(msg Message) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.Unlock()
}

// HandleEvent implements engine.Handler
func (b *Broadcaster) HandleEvent(ev engine.GameEvent) {
	data, err := json.Marshal(eventPayload{
		Tick:    ev.Tick,
		Score:   ev.Score,
		X:       ev.Position.X,
		Y:       ev.Position.Y,
		Slot:    ev.Slot,
		Cleared: ev.Cleared,
	})
	if err != nil {
		return
	}
	b.Publish(Message{Event: ev.Type.String(), Data: string(data)})
}

// EventTypes implements engine.Handler
func (b *Broadcaster) EventTypes() []engine.EventType {
	return []engine.EventType{
		engine.EventStarted,
		engine.EventScoreChanged,
		engine.EventBonusClear,
		engine.EventGameOver,
	}
}
