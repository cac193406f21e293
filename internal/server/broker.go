package server

import (
	"encoding/json"
	"sync"
)

// Broker is an in-process pub/sub for live game events, keyed by session
// token. Engine events and media commands both flow through it to whatever
// SSE or websocket streams the session's browser holds open.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the
// given session.
func (b *Broker) Subscribe(token string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[token] == nil {
		b.subs[token] = make(map[chan []byte]struct{})
	}
	b.subs[token][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(token string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[token], ch)
	if len(b.subs[token]) == 0 {
		delete(b.subs, token)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given session. Never
// blocks; score ticks arrive ten times a second and a stalled stream must
// not stall the engine.
func (b *Broker) Publish(token string, event any) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[token] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
