package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/milongahq/tangotune/internal/quiz"
)

// playSession ties one browser to one engine: its opaque token, the engine
// holding round state, and the media bridge carrying playback commands.
type playSession struct {
	token      string
	engine     *quiz.Engine
	player     *browserPlayer
	lastActive time.Time
}

// SessionRegistry holds live play sessions in memory. Nothing here survives
// a restart; a session is exactly one sitting in front of one browser.
type SessionRegistry struct {
	idle time.Duration

	mu       sync.Mutex
	sessions map[string]*playSession
}

func NewSessionRegistry(idle time.Duration) *SessionRegistry {
	return &SessionRegistry{
		idle:     idle,
		sessions: make(map[string]*playSession),
	}
}

// Add registers a new session under a fresh token.
func (r *SessionRegistry) Add(engine *quiz.Engine, player *browserPlayer) *playSession {
	sess := &playSession{
		token:      player.token,
		engine:     engine,
		player:     player,
		lastActive: time.Now(),
	}
	r.mu.Lock()
	r.sessions[sess.token] = sess
	r.mu.Unlock()
	return sess
}

// Get looks up a session by token and marks it active.
func (r *SessionRegistry) Get(token string) (*playSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[token]
	if ok {
		sess.lastActive = time.Now()
	}
	return sess, ok
}

// Remove tears a session down and stops its engine clock.
func (r *SessionRegistry) Remove(token string) {
	r.mu.Lock()
	sess, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()
	if ok {
		sess.engine.Close()
	}
}

// Sweep evicts idle sessions until ctx is cancelled. Run it alongside the
// HTTP server; abandoned browsers would otherwise leak engines.
func (r *SessionRegistry) Sweep(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cutoff := time.Now().Add(-r.idle)
			r.mu.Lock()
			var expired []*playSession
			for token, sess := range r.sessions {
				if sess.lastActive.Before(cutoff) {
					expired = append(expired, sess)
					delete(r.sessions, token)
				}
			}
			r.mu.Unlock()
			for _, sess := range expired {
				sess.engine.Close()
			}
		}
	}
}

// newSessionToken returns a compact 32-hex-char bearer token.
func newSessionToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
