// Package session runs one maze game behind a small capability interface:
// submit a command, read the state, subscribe to changes. Presentation
// adapters (terminal, websocket) sit on top of it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/logging"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/content"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/gameplay"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

var (
	// ErrLoadFailed wraps whatever stopped a maze from loading
	ErrLoadFailed = errors.New("maze load failed")
	// ErrSessionEnded is returned by Submit once the game is won or closed
	ErrSessionEnded = errors.New("session ended")
	// ErrNoPlayer means a win could not be credited to anyone
	ErrNoPlayer = errors.New("no player identity")
)

// DefaultTickInterval is one countdown second
const DefaultTickInterval = time.Second

// Deps are the collaborators a session talks to
type Deps struct {
	Provider content.Provider
	Scorer   content.Scorer
	Identity content.Identity
	Presence content.Presence // optional
	Logger   logging.Logger
}

// Options select the maze and tune the trap countdown
type Options struct {
	GameID       int
	Level        string
	TrapSeconds  int           // 0 keeps the default
	TickInterval time.Duration // 0 means one second
}

// Result is delivered on Done when the player reaches the exit
type Result struct {
	SessionID string
	GameID    int
	Level     string
	PlayerID  int
	Score     int
	Saved     bool
	Err       error // why the score was not saved
}

// Engine owns one game. All mutation happens under mu; subscribers are called
// outside it, in version order.
type Engine struct {
	id     string
	deps   Deps
	opts   Options
	logger logging.Logger

	mu       sync.Mutex
	game     *state.Game
	version  uint64
	score    int
	closed   bool
	finished bool

	// countdown
	cd  *countdown
	gen uint64

	subs    map[int]func(Snapshot)
	nextSub int

	notifyMu  sync.Mutex
	delivered uint64 // last version handed to subscribers, under notifyMu

	done     chan Result
	doneOnce sync.Once
}

// Load fetches the maze and starts a session. Nothing is retried; any
// failure is returned wrapped in ErrLoadFailed.
func Load(ctx context.Context, deps Deps, opts Options) (*Engine, error) {
	if deps.Provider == nil {
		return nil, fmt.Errorf("%w: no content provider", ErrLoadFailed)
	}
	if deps.Presence == nil {
		deps.Presence = content.NopPresence{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	opts.Level = content.NormalizeLevel(opts.Level)

	id := uuid.NewString()
	logger := deps.Logger.With("session", id, "game", opts.GameID, "level", opts.Level)

	env, err := deps.Provider.FetchMaze(ctx, opts.GameID, opts.Level)
	if err != nil {
		logger.Errorf("fetch maze: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	maze, err := env.First()
	if err != nil {
		logger.Errorf("maze envelope: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	g, err := gameplay.BuildGame(opts.GameID, opts.Level, maze)
	if err != nil {
		logger.Errorf("build game: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if opts.TrapSeconds > 0 {
		g.TrapSeconds = opts.TrapSeconds
	}

	e := &Engine{
		id:     id,
		deps:   deps,
		opts:   opts,
		logger: logger,
		game:   g,
		subs:   make(map[int]func(Snapshot)),
		done:   make(chan Result, 1),
	}
	deps.Presence.SetActive(true)
	logger.Infof("session started at %v", g.Start)
	return e, nil
}

// ID returns the session's unique id
func (e *Engine) ID() string {
	return e.id
}

// State returns a snapshot of the current state
func (e *Engine) State() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Done is sent the Result once the player wins, then closed. It is closed
// without a value when the session is closed before a win.
func (e *Engine) Done() <-chan Result {
	return e.done
}

// Subscribe registers fn to receive a snapshot after changes, including
// countdown ticks, in version order. A snapshot overtaken by a newer one may
// be skipped. fn may run on the countdown goroutine and may call State; it
// must not block or call Submit or Close.
func (e *Engine) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

// Submit processes one line of player input. Blank lines are ignored.
// A command that wins the game also scores it before Submit returns.
func (e *Engine) Submit(ctx context.Context, text string) error {
	e.mu.Lock()
	if e.closed || e.game.Won {
		e.mu.Unlock()
		return ErrSessionEnded
	}

	before := len(e.game.Log)
	wasTrapped := e.game.Trapped()
	gameplay.ProcessCommand(e.game, text)
	if len(e.game.Log) == before {
		e.mu.Unlock()
		return nil
	}

	var stopped <-chan struct{}
	switch {
	case !wasTrapped && e.game.Trapped():
		e.logger.Infof("trap %s triggered at %v", e.game.Trap, e.game.Position)
		e.startCountdownLocked()
	case wasTrapped && !e.game.Trapped():
		stopped = e.stopCountdownLocked()
	}

	won := e.game.Won && !e.finished
	if won {
		e.finished = true
		stopped = e.stopCountdownLocked()
		e.logger.Infof("player reached the exit at %v", e.game.Position)
	}
	e.publishAndUnlock()
	wait(stopped)

	if won {
		e.finish(ctx)
	}
	return nil
}

// Close tears the session down. The countdown is stopped before Close
// returns; later Submit calls fail with ErrSessionEnded.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	wasActive := e.game.Active
	finished := e.finished
	stopped := e.stopCountdownLocked()
	e.mu.Unlock()

	wait(stopped)
	if wasActive {
		e.deps.Presence.SetActive(false)
	}
	if !finished {
		e.doneOnce.Do(func() { close(e.done) })
	}
	e.logger.Infof("session closed")
}

// finish scores a won game and reports the outcome on Done
func (e *Engine) finish(ctx context.Context) {
	e.deps.Presence.SetActive(false)

	res := e.submitScore(ctx)
	e.mu.Lock()
	e.score = res.Score
	switch {
	case res.Saved:
		gameplay.ScoreSaved(e.game, res.Score)
	case errors.Is(res.Err, gameplay.ErrUnknownLevel):
		gameplay.LevelUnscored(e.game)
	case errors.Is(res.Err, ErrNoPlayer):
		gameplay.PlayerUnknown(e.game)
	default:
		gameplay.ScoreNotSaved(e.game)
	}
	e.publishAndUnlock()

	e.done <- res
	e.doneOnce.Do(func() { close(e.done) })
}

// submitScore works out and submits the score without touching game state
func (e *Engine) submitScore(ctx context.Context) Result {
	res := Result{SessionID: e.id, GameID: e.opts.GameID, Level: e.opts.Level}

	score, err := gameplay.ScoreForLevel(e.opts.Level)
	if err != nil {
		e.logger.Errorf("score: %v", err)
		res.Err = err
		return res
	}
	res.Score = score

	var playerID int
	ok := false
	if e.deps.Identity != nil {
		playerID, ok = e.deps.Identity.PlayerID(ctx)
	}
	if !ok {
		e.logger.Errorf("score %d not submitted: %v", score, ErrNoPlayer)
		res.Err = ErrNoPlayer
		return res
	}
	res.PlayerID = playerID

	if e.deps.Scorer == nil {
		res.Err = errors.New("no scorer configured")
		e.logger.Errorf("score %d not submitted: %v", score, res.Err)
		return res
	}
	if err := e.deps.Scorer.SubmitScore(ctx, e.opts.GameID, playerID, score); err != nil {
		e.logger.Errorf("submit score %d for player %d: %v", score, playerID, err)
		res.Err = err
		return res
	}
	res.Saved = true
	e.logger.Infof("score %d saved for player %d", score, playerID)
	return res
}

// publishAndUnlock bumps the version and hands a snapshot to every
// subscriber. It is called with e.mu held and releases it before taking
// notifyMu, so a subscriber may call State. A snapshot older than one
// already delivered is dropped; each snapshot carries the whole state.
func (e *Engine) publishAndUnlock() {
	e.version++
	snap := e.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()
	if snap.Version <= e.delivered {
		return
	}
	e.delivered = snap.Version

	for _, fn := range fns {
		fn(snap)
	}
}
