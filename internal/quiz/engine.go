package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/milongahq/tangotune/internal/catalog"
)

// Snippet start offsets are drawn from the first 90 seconds of a track.
const maxSnippetOffsetSeconds = 90

var (
	ErrNotConfiguring  = errors.New("session already configured")
	ErrBadConfig       = errors.New("invalid round configuration")
	ErrNotReady        = errors.New("no round ready for playback")
	ErrPlaybackPending = errors.New("playback request already in progress")
	ErrMediaNotReady   = errors.New("media did not become ready in time")
	ErrRoundActive     = errors.New("round has not ended")
	ErrSessionComplete = errors.New("session is complete")
)

// Engine runs one play session: it owns the round state machine, the decay
// clock, and the session totals. Safe for concurrent use by the transport
// layer; internally a single mutex serializes all intents and ticks.
type Engine struct {
	rng          *rand.Rand
	media        Player
	notify       func(Event)
	readyTimeout time.Duration
	tickEvery    time.Duration

	mu       sync.Mutex
	catalog  *catalog.Catalog
	phase    Phase
	cfg      Config
	session  Session
	round    *Round
	starting bool
	closed   bool

	// gen is bumped on every exit from the playing phase so a tick that
	// raced the transition finds itself stale and does nothing.
	gen        int
	cancelTick context.CancelFunc

	// manualClock parks the internal ticker; tests drive step directly.
	manualClock bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the randomness source used for track choice, snippet
// offset, and answer-set shuffling. Fixed seeds give reproducible rounds.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithNotify registers a sink for engine events. Must not block.
func WithNotify(fn func(Event)) Option {
	return func(e *Engine) { e.notify = fn }
}

// WithReadyTimeout bounds how long a playback request waits for the media
// collaborator to report readiness.
func WithReadyTimeout(d time.Duration) Option {
	return func(e *Engine) { e.readyTimeout = d }
}

// New creates an engine over an eligible catalog snapshot. The catalog must
// contain at least one playable track; an empty catalog is fatal for the
// session.
func New(cat *catalog.Catalog, media Player, opts ...Option) (*Engine, error) {
	if cat == nil || len(cat.Tracks) == 0 || len(cat.Performers) == 0 {
		return nil, catalog.ErrEmpty
	}
	e := &Engine{
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		media:        media,
		notify:       func(Event) {},
		readyTimeout: 15 * time.Second,
		tickEvery:    100 * time.Millisecond,
		catalog:      cat,
		phase:        PhaseConfiguring,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Configure fixes the session parameters and readies the first round. Valid
// only once, while the session is still in the configuring phase.
func (e *Engine) Configure(cfg Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseConfiguring {
		return ErrNotConfiguring
	}
	if cfg.TimeLimitSeconds <= 0 || cfg.Rounds <= 0 {
		return fmt.Errorf("%w: time limit %ds, %d rounds", ErrBadConfig, cfg.TimeLimitSeconds, cfg.Rounds)
	}
	if cfg.Retry == "" {
		cfg.Retry = RetryAllowed
	}
	if cfg.Penalty == "" {
		cfg.Penalty = PenaltyPercentOfBase
	}
	if cfg.Distractors == "" {
		cfg.Distractors = DistractorsAffinity
	}

	e.cfg = cfg
	e.session = Session{RoundsConfigured: cfg.Rounds}
	return e.prepareRound()
}

// prepareRound selects a track and snippet offset, builds the answer set,
// and moves to the ready phase. Caller holds the lock.
func (e *Engine) prepareRound() error {
	track := e.catalog.Tracks[e.rng.IntN(len(e.catalog.Tracks))]
	correct, ok := e.catalog.PerformerByName(track.PerformerName)
	if !ok {
		// The catalog constructor guarantees this; a miss means the snapshot
		// was built by hand.
		return fmt.Errorf("track %q has no eligible performer %q", track.ID, track.PerformerName)
	}

	base := BasePoints(e.cfg.TimeLimitSeconds)
	e.round = &Round{
		Track:         track,
		AnswerSet:     AnswerSet(e.rng, correct, e.catalog.Performers, e.cfg.Distractors),
		Correct:       correct.Name,
		OffsetSeconds: e.rng.Float64() * maxSnippetOffsetSeconds,
		BasePoints:    base,
		Score:         base,
	}

	if err := e.media.Load(track.AudioRef); err != nil {
		return fmt.Errorf("loading media source: %w", err)
	}

	e.phase = PhaseReady
	e.emit(EventPhase)
	return nil
}

// RequestPlayback starts the round. If the media collaborator has not yet
// reported readiness the call waits, bounded by the ready timeout; on
// timeout the round stays ready and playback may be requested again.
func (e *Engine) RequestPlayback(ctx context.Context) error {
	e.mu.Lock()
	if e.phase != PhaseReady {
		e.mu.Unlock()
		return ErrNotReady
	}
	if e.starting {
		e.mu.Unlock()
		return ErrPlaybackPending
	}
	e.starting = true
	ready := e.media.Ready()
	e.mu.Unlock()

	timeout := time.NewTimer(e.readyTimeout)
	defer timeout.Stop()

	var waitErr error
	select {
	case <-ready:
	case <-ctx.Done():
		waitErr = ctx.Err()
	case <-timeout.C:
		waitErr = ErrMediaNotReady
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.starting = false

	if waitErr != nil {
		return waitErr
	}
	if e.phase != PhaseReady {
		// The session was torn down while we waited.
		return ErrNotReady
	}

	if err := e.media.Seek(e.round.OffsetSeconds); err != nil {
		return fmt.Errorf("seeking snippet: %w", err)
	}
	if err := e.media.Play(); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}

	e.phase = PhasePlaying
	e.startClockLocked()
	e.emit(EventPhase)
	return nil
}

// startClockLocked launches the decay ticker for the current generation.
// Caller holds the lock.
func (e *Engine) startClockLocked() {
	if e.manualClock {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancelTick = cancel
	gen := e.gen

	go func() {
		ticker := time.NewTicker(e.tickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.step(gen)
			}
		}
	}()
}

// step advances the clock by one tick: elapsed time grows, the score decays
// linearly toward zero, and the round ends when the limit is reached. A step
// whose generation is stale is a no-op; the round it belonged to is over.
func (e *Engine) step(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || e.phase != PhasePlaying {
		return
	}

	dt := e.tickEvery.Seconds()
	e.round.Elapsed += dt
	decay := e.round.BasePoints * dt / float64(e.cfg.TimeLimitSeconds)
	e.round.Score = max(0, e.round.Score-decay)

	if e.round.Elapsed >= float64(e.cfg.TimeLimitSeconds)-1e-9 {
		e.endRoundLocked()
		return
	}
	e.emit(EventTick)
}

// SubmitGuess evaluates a guess against the round's correct answer,
// case-insensitively and ignoring surrounding whitespace. A guess outside
// the playing phase is ignored without error.
func (e *Engine) SubmitGuess(name string) (GuessResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhasePlaying {
		return GuessResult{Evaluated: false, Phase: e.phase}, nil
	}

	guess := strings.TrimSpace(name)
	e.round.Attempts = append(e.round.Attempts, guess)

	if strings.EqualFold(guess, e.round.Correct) {
		e.endRoundLocked()
		return GuessResult{
			Evaluated: true,
			Correct:   true,
			Score:     e.round.Score,
			Phase:     e.phase,
			Message:   e.round.Message,
		}, nil
	}

	e.round.Score = max(0, e.round.Score-penalty(e.cfg.Penalty, e.round.BasePoints))

	if e.cfg.Retry == RetryEndsRound {
		e.endRoundLocked()
	} else {
		e.emit(EventWrongGuess)
	}
	return GuessResult{
		Evaluated: true,
		Correct:   false,
		Score:     e.round.Score,
		Phase:     e.phase,
		Message:   e.round.Message,
	}, nil
}

// endRoundLocked freezes the round: the clock generation is retired before
// anything else so a concurrent tick cannot touch the frozen score, playback
// pauses, and the score joins the session total. Caller holds the lock.
func (e *Engine) endRoundLocked() {
	e.gen++
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
	_ = e.media.Pause()

	e.phase = PhaseEnded
	e.round.Message = resultMessage(e.round.Score, e.round.BasePoints)
	e.session.CumulativeScore += e.round.Score
	e.emit(EventRoundEnded)
}

// Advance moves past an ended round: either the next round becomes ready or,
// when all configured rounds are done, the session completes. Advancing
// before the round has ended is rejected.
func (e *Engine) Advance() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.session.Complete() {
		return ErrSessionComplete
	}
	if e.phase != PhaseEnded {
		return ErrRoundActive
	}

	e.session.RoundsCompleted++
	if e.session.Complete() {
		e.emit(EventSessionComplete)
		return nil
	}
	return e.prepareRound()
}

// Close aborts the session: pending ticks are cancelled and playback is
// paused. Used when the host abandons the session.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
	if e.phase == PhasePlaying {
		_ = e.media.Pause()
	}
	e.phase = PhaseEnded
	e.closed = true
}

// Snapshot returns the current host-facing view of the session.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:            e.phase,
		SessionComplete:  e.closed || e.session.Complete(),
		TimeLimitSeconds: e.cfg.TimeLimitSeconds,
		RoundsConfigured: e.session.RoundsConfigured,
		RoundsCompleted:  e.session.RoundsCompleted,
		SessionScore:     displayScore(e.session.CumulativeScore),
	}
	if e.round != nil {
		rs := &RoundSnapshot{
			AnswerSet:      e.round.AnswerSet,
			ElapsedSeconds: e.round.Elapsed,
			Score:          e.round.Score,
			Attempts:       len(e.round.Attempts),
			AudioRef:       e.round.Track.AudioRef,
			OffsetSeconds:  e.round.OffsetSeconds,
		}
		if e.phase == PhaseEnded {
			rs.TrackTitle = e.round.Track.Title
			rs.CorrectAnswer = e.round.Correct
			rs.Message = e.round.Message
		}
		snap.Round = rs
	}
	return snap
}

// emit publishes an event with a fresh snapshot. Caller holds the lock; the
// sink must not block.
func (e *Engine) emit(typ string) {
	e.notify(Event{Type: typ, Snapshot: e.snapshotLocked()})
}
