package server

import (
	"sync"
)

// MediaCommand instructs the session's browser, which owns the actual audio
// element, to act on its player. Commands travel over the session's event
// stream.
type MediaCommand struct {
	Type          string  `json:"type"`
	Action        string  `json:"action"`
	AudioRef      string  `json:"audioRef,omitempty"`
	OffsetSeconds float64 `json:"offsetSeconds,omitempty"`
}

const mediaCommandType = "media"

// browserPlayer implements the engine's playback collaborator by relaying
// commands to the browser and collecting its readiness signal. Readiness is
// re-armed on every Load: the browser POSTs the media-ready endpoint once
// the new source's metadata has loaded, which closes the current channel.
type browserPlayer struct {
	token  string
	broker *Broker

	mu    sync.Mutex
	ready chan struct{}
}

func newBrowserPlayer(token string, broker *Broker) *browserPlayer {
	return &browserPlayer{
		token:  token,
		broker: broker,
		ready:  make(chan struct{}),
	}
}

func (p *browserPlayer) Load(audioRef string) error {
	p.mu.Lock()
	p.ready = make(chan struct{})
	p.mu.Unlock()
	p.broker.Publish(p.token, MediaCommand{Type: mediaCommandType, Action: "load", AudioRef: audioRef})
	return nil
}

func (p *browserPlayer) Ready() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// signalReady marks the current source as loaded. Safe to call repeatedly.
func (p *browserPlayer) signalReady() {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.ready:
	default:
		close(p.ready)
	}
}

func (p *browserPlayer) Seek(offsetSeconds float64) error {
	p.broker.Publish(p.token, MediaCommand{Type: mediaCommandType, Action: "seek", OffsetSeconds: offsetSeconds})
	return nil
}

func (p *browserPlayer) Play() error {
	p.broker.Publish(p.token, MediaCommand{Type: mediaCommandType, Action: "play"})
	return nil
}

func (p *browserPlayer) Pause() error {
	p.broker.Publish(p.token, MediaCommand{Type: mediaCommandType, Action: "pause"})
	return nil
}
