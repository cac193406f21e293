package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/milongahq/tangotune/internal/catalog"
	"github.com/milongahq/tangotune/internal/quiz"
)

// SessionResponse is returned when a new play session is created.
type SessionResponse struct {
	Token      string        `json:"token"`
	Phase      quiz.Phase    `json:"phase"`
	TrackCount int           `json:"trackCount"`
	Snapshot   quiz.Snapshot `json:"snapshot"`
}

// sessionDeps bundles what the session lifecycle handlers need.
type sessionDeps struct {
	store             Store
	sessions          *SessionRegistry
	broker            *Broker
	mediaReadyTimeout time.Duration
	maxPerformerLevel int
}

func handleSessionCreate(deps sessionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tracks, performers, err := deps.store.LoadCatalog(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		cat, err := catalog.New(tracks, performers, deps.maxPerformerLevel)
		if errors.Is(err, catalog.ErrEmpty) {
			writeError(w, http.StatusServiceUnavailable, "no playable catalog")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		token := newSessionToken()
		player := newBrowserPlayer(token, deps.broker)
		engine, err := quiz.New(cat, player,
			quiz.WithReadyTimeout(deps.mediaReadyTimeout),
			quiz.WithNotify(func(ev quiz.Event) {
				deps.broker.Publish(token, ev)
			}),
		)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "no playable catalog")
			return
		}

		sess := deps.sessions.Add(engine, player)

		writeJSON(w, http.StatusOK, SessionResponse{
			Token:      sess.token,
			Phase:      quiz.PhaseConfiguring,
			TrackCount: len(cat.Tracks),
			Snapshot:   engine.Snapshot(),
		})
	}
}

func handleSessionDelete(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}
		sessions.Remove(sess.token)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleSessionState(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}
		writeJSON(w, http.StatusOK, sess.engine.Snapshot())
	}
}
