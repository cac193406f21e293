// Package quiz implements the round engine for Name That Tango Tune: a song
// snippet plays, the player guesses the performing orchestra from four
// options, and the round score decays while the clock runs. The engine owns
// round and session state; playback itself is delegated to a Player
// collaborator and rendering to the host.
package quiz

import "github.com/milongahq/tangotune/internal/catalog"

// Phase is the lifecycle state of the current round.
type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhaseReady       Phase = "ready"
	PhasePlaying     Phase = "playing"
	PhaseEnded       Phase = "ended"
)

// RetryPolicy controls what a wrong guess does to the round.
type RetryPolicy string

const (
	// RetryAllowed keeps the round running after a wrong guess; the player
	// may keep guessing while the clock decays the score.
	RetryAllowed RetryPolicy = "allow"
	// RetryEndsRound ends the round on the first wrong guess.
	RetryEndsRound RetryPolicy = "end-on-wrong"
)

// PenaltyPolicy controls how a wrong guess is charged.
type PenaltyPolicy string

const (
	// PenaltyPercentOfBase subtracts 5% of the round's base points.
	PenaltyPercentOfBase PenaltyPolicy = "percent"
	// PenaltyFlat subtracts a flat 10 points. Kept for the older rule set.
	PenaltyFlat PenaltyPolicy = "flat"
)

// Config holds the per-session round parameters. Immutable once the session
// leaves the configuring phase.
type Config struct {
	TimeLimitSeconds int
	Rounds           int
	Retry            RetryPolicy
	Penalty          PenaltyPolicy
	Distractors      DistractorStrategy
}

// Round is the mutable state of one round. Owned exclusively by the engine
// and replaced when the next round starts.
type Round struct {
	Track         catalog.Track
	AnswerSet     []string
	Correct       string
	OffsetSeconds float64
	BasePoints    float64
	Elapsed       float64
	Score         float64
	Attempts      []string
	Message       string
}

// Session aggregates results across rounds. It lives for one play session
// and is reset only by starting a new session.
type Session struct {
	RoundsConfigured int
	RoundsCompleted  int
	CumulativeScore  float64
}

// Complete reports whether all configured rounds have been played through.
func (s Session) Complete() bool {
	return s.RoundsConfigured > 0 && s.RoundsCompleted >= s.RoundsConfigured
}

// GuessResult is the outcome of a submitted guess.
type GuessResult struct {
	// Evaluated is false when the guess arrived outside the playing phase
	// and was ignored.
	Evaluated bool    `json:"evaluated"`
	Correct   bool    `json:"correct"`
	Score     float64 `json:"score"`
	Phase     Phase   `json:"phase"`
	Message   string  `json:"message,omitempty"`
}

// Snapshot is the host-facing view of engine state.
type Snapshot struct {
	Phase            Phase          `json:"phase"`
	SessionComplete  bool           `json:"sessionComplete"`
	TimeLimitSeconds int            `json:"timeLimitSeconds,omitempty"`
	RoundsConfigured int            `json:"roundsConfigured"`
	RoundsCompleted  int            `json:"roundsCompleted"`
	SessionScore     int            `json:"sessionScore"`
	Round            *RoundSnapshot `json:"round,omitempty"`
}

// RoundSnapshot is the visible slice of the current round. The correct
// answer and track title are withheld until the round has ended.
type RoundSnapshot struct {
	AnswerSet      []string `json:"answerSet"`
	ElapsedSeconds float64  `json:"elapsedSeconds"`
	Score          float64  `json:"score"`
	Attempts       int      `json:"attempts"`
	AudioRef       string   `json:"audioRef"`
	OffsetSeconds  float64  `json:"offsetSeconds"`
	TrackTitle     string   `json:"trackTitle,omitempty"`
	CorrectAnswer  string   `json:"correctAnswer,omitempty"`
	Message        string   `json:"message,omitempty"`
}

// Event is pushed to the host whenever engine state changes.
type Event struct {
	Type     string   `json:"type"`
	Snapshot Snapshot `json:"snapshot"`
}

const (
	EventPhase           = "phase"
	EventTick            = "tick"
	EventWrongGuess      = "wrong_guess"
	EventRoundEnded      = "round_ended"
	EventSessionComplete = "session_complete"
)
