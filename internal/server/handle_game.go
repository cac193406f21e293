package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/milongahq/tangotune/internal/quiz"
)

// ConfigureRequest fixes the session's round parameters. Policies are
// optional; the defaults are retry-allowed, 5%-of-base penalty, and
// affinity distractors.
type ConfigureRequest struct {
	TimeLimitSeconds int    `json:"timeLimitSeconds"`
	Rounds           int    `json:"rounds"`
	Retry            string `json:"retry,omitempty"`
	Penalty          string `json:"penalty,omitempty"`
	Distractors      string `json:"distractors,omitempty"`
}

// GuessRequest submits one answer option.
type GuessRequest struct {
	Name string `json:"name"`
}

// GuessResponse pairs the guess outcome with the resulting state.
type GuessResponse struct {
	Result   quiz.GuessResult `json:"result"`
	Snapshot quiz.Snapshot    `json:"snapshot"`
}

func handleConfigure(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req ConfigureRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err = sess.engine.Configure(quiz.Config{
			TimeLimitSeconds: req.TimeLimitSeconds,
			Rounds:           req.Rounds,
			Retry:            quiz.RetryPolicy(req.Retry),
			Penalty:          quiz.PenaltyPolicy(req.Penalty),
			Distractors:      quiz.DistractorStrategy(req.Distractors),
		})
		switch {
		case errors.Is(err, quiz.ErrBadConfig):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, quiz.ErrNotConfiguring):
			writeError(w, http.StatusConflict, "session already configured")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, sess.engine.Snapshot())
	}
}

func handlePlayback(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		err = sess.engine.RequestPlayback(r.Context())
		switch {
		case errors.Is(err, quiz.ErrNotReady), errors.Is(err, quiz.ErrPlaybackPending):
			writeError(w, http.StatusConflict, err.Error())
			return
		case errors.Is(err, quiz.ErrMediaNotReady):
			// The browser never reported loaded metadata; the round is still
			// ready and playback may be requested again.
			writeError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, sess.engine.Snapshot())
	}
}

func handleGuess(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		result, err := sess.engine.SubmitGuess(req.Name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, GuessResponse{
			Result:   result,
			Snapshot: sess.engine.Snapshot(),
		})
	}
}

func handleAdvance(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		err = sess.engine.Advance()
		switch {
		case errors.Is(err, quiz.ErrRoundActive):
			writeError(w, http.StatusConflict, "round has not ended")
			return
		case errors.Is(err, quiz.ErrSessionComplete):
			writeError(w, http.StatusConflict, "session is complete")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, sess.engine.Snapshot())
	}
}

func handleMediaReady(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}
		sess.player.signalReady()
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
