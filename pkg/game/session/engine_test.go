package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/logging"
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/content"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/gameplay"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

type fakeProvider struct {
	maze *content.Maze
	err  error
}

func (p fakeProvider) FetchMaze(context.Context, int, string) (*content.Envelope, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.maze == nil {
		return &content.Envelope{}, nil
	}
	return &content.Envelope{Content: []content.Maze{*p.maze}}, nil
}

type submission struct{ gameID, playerID, score int }

type fakeScorer struct {
	mu    sync.Mutex
	calls []submission
	err   error
}

func (s *fakeScorer) SubmitScore(_ context.Context, gameID, playerID, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, submission{gameID, playerID, score})
	return s.err
}

func (s *fakeScorer) Calls() []submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]submission(nil), s.calls...)
}

type fakePresence struct {
	mu      sync.Mutex
	history []bool
}

func (p *fakePresence) SetActive(active bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, active)
}

func (p *fakePresence) History() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]bool(nil), p.history...)
}

// exitMaze is a corridor with the exit one step right of the start
func exitMaze() *content.Maze {
	return &content.Maze{
		Width:         3,
		Height:        3,
		StartPosition: world.Position{Row: 1, Col: 1},
		Grid:          [][]int{{1, 1, 1}, {1, 0, 3}, {1, 1, 1}},
	}
}

// trapMaze has a hole one step right of the start
func trapMaze() *content.Maze {
	return &content.Maze{
		Width:         3,
		Height:        1,
		StartPosition: world.Position{Row: 0, Col: 0},
		Grid:          [][]int{{0, 0, 0}},
		Items:         []content.MazeItem{{Row: 0, Col: 1, Type: world.KindTrapHole}},
	}
}

type fixture struct {
	scorer   *fakeScorer
	presence *fakePresence
	deps     Deps
}

func newFixture(maze *content.Maze, playerID int) *fixture {
	f := &fixture{scorer: &fakeScorer{}, presence: &fakePresence{}}
	f.deps = Deps{
		Provider: fakeProvider{maze: maze},
		Scorer:   f.scorer,
		Identity: content.StaticIdentity(playerID),
		Presence: f.presence,
		Logger:   logging.Discard(),
	}
	return f
}

func load(t *testing.T, deps Deps, opts Options) *Engine {
	t.Helper()
	e, err := Load(context.Background(), deps, opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func submit(t *testing.T, e *Engine, text string) {
	t.Helper()
	if err := e.Submit(context.Background(), text); err != nil {
		t.Fatalf("Submit(%q): %v", text, err)
	}
}

func lastLog(t *testing.T, s Snapshot) state.Entry {
	t.Helper()
	if len(s.Log) == 0 {
		t.Fatal("empty log")
	}
	return s.Log[len(s.Log)-1]
}

func waitResult(t *testing.T, e *Engine) Result {
	t.Helper()
	select {
	case res, ok := <-e.Done():
		if !ok {
			t.Fatal("Done closed without a result")
		}
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result{}
}

func TestLoad_Failures(t *testing.T) {
	cases := []struct {
		name  string
		prov  content.Provider
		cause error
	}{
		{"fetch error", fakeProvider{err: content.ErrNotFound}, content.ErrNotFound},
		{"empty envelope", fakeProvider{}, content.ErrEmptyEnvelope},
		{"malformed", fakeProvider{maze: &content.Maze{Width: 5, Height: 1, Grid: [][]int{{0}}}}, content.ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			presence := &fakePresence{}
			_, err := Load(context.Background(), Deps{Provider: tc.prov, Presence: presence}, Options{GameID: 1, Level: "FIRST"})
			if !errors.Is(err, ErrLoadFailed) {
				t.Errorf("err = %v, want ErrLoadFailed", err)
			}
			if !errors.Is(err, tc.cause) {
				t.Errorf("err = %v, want cause %v", err, tc.cause)
			}
			if len(presence.History()) != 0 {
				t.Errorf("presence touched on failed load: %v", presence.History())
			}
		})
	}

	if _, err := Load(context.Background(), Deps{}, Options{}); !errors.Is(err, ErrLoadFailed) {
		t.Errorf("no provider: err = %v", err)
	}
}

func TestLoad_InitialState(t *testing.T) {
	f := newFixture(exitMaze(), 42)
	e := load(t, f.deps, Options{GameID: 7, Level: "second"})

	if e.ID() == "" {
		t.Error("empty session id")
	}
	s := e.State()
	if s.SessionID != e.ID() || s.GameID != 7 || s.Level != "SECOND" {
		t.Errorf("snapshot ids = %q/%d/%q", s.SessionID, s.GameID, s.Level)
	}
	if !s.Active || s.Won || s.Trapped() {
		t.Errorf("flags: %+v", s)
	}
	if len(s.Log) != 2 {
		t.Errorf("log = %+v, want welcome and hint", s.Log)
	}
	if got := f.presence.History(); len(got) != 1 || !got[0] {
		t.Errorf("presence = %v, want [true]", got)
	}
}

func TestSubmit_WinSubmitsScore(t *testing.T) {
	f := newFixture(exitMaze(), 42)
	e := load(t, f.deps, Options{GameID: 7, Level: "SECOND"})

	submit(t, e, "move right")

	res := waitResult(t, e)
	if !res.Saved || res.Score != 2 || res.PlayerID != 42 || res.Err != nil {
		t.Errorf("result = %+v", res)
	}
	if calls := f.scorer.Calls(); len(calls) != 1 || calls[0] != (submission{7, 42, 2}) {
		t.Errorf("scorer calls = %+v", calls)
	}

	s := e.State()
	if !s.Won || s.Active || s.Score != 2 {
		t.Errorf("snapshot = won:%v active:%v score:%d", s.Won, s.Active, s.Score)
	}
	if l := lastLog(t, s); l.Severity != state.SeveritySuccess || !strings.Contains(l.Text, "2") {
		t.Errorf("last log = %+v", l)
	}
	if got := f.presence.History(); len(got) != 2 || got[1] {
		t.Errorf("presence = %v, want [true false]", got)
	}

	if err := e.Submit(context.Background(), "move left"); !errors.Is(err, ErrSessionEnded) {
		t.Errorf("Submit after win: %v", err)
	}
	if _, ok := <-e.Done(); ok {
		t.Error("Done delivered a second value")
	}
}

func TestSubmit_WinScoringFailures(t *testing.T) {
	cases := []struct {
		name      string
		level     string
		playerID  int
		scoreErr  error
		wantErr   error
		wantCalls int
		wantText  string
	}{
		{"missing identity", "FIRST", 0, nil, ErrNoPlayer, 0, "Player information not found. The score was not saved."},
		{"scorer down", "THIRD", 5, errors.New("503"), nil, 1, "Your score could not be saved."},
		{"unknown level", "FOURTH", 5, nil, gameplay.ErrUnknownLevel, 0, "This level has no score."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(exitMaze(), tc.playerID)
			f.scorer.err = tc.scoreErr
			e := load(t, f.deps, Options{GameID: 1, Level: tc.level})

			submit(t, e, "move right")
			res := waitResult(t, e)

			if res.Saved || res.Err == nil {
				t.Errorf("result = %+v, want an unsaved score", res)
			}
			if tc.wantErr != nil && !errors.Is(res.Err, tc.wantErr) {
				t.Errorf("Err = %v, want %v", res.Err, tc.wantErr)
			}
			if len(f.scorer.Calls()) != tc.wantCalls {
				t.Errorf("scorer calls = %d, want %d", len(f.scorer.Calls()), tc.wantCalls)
			}

			s := e.State()
			if !s.Won {
				t.Error("win rolled back")
			}
			if l := lastLog(t, s); l.Severity != state.SeverityError || l.Text != tc.wantText {
				t.Errorf("last log = %+v, want error %q", l, tc.wantText)
			}
		})
	}
}

func TestCountdown_ExpirySendsPlayerBack(t *testing.T) {
	f := newFixture(trapMaze(), 1)
	e := load(t, f.deps, Options{GameID: 1, Level: "FIRST", TrapSeconds: 3, TickInterval: 5 * time.Millisecond})

	reset := make(chan Snapshot, 1)
	unsubscribe := e.Subscribe(func(s Snapshot) {
		if !s.Trapped() && s.Position == s.Start && s.TimeLeft == 0 && s.Version > 1 {
			select {
			case reset <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	submit(t, e, "move right")

	var s Snapshot
	select {
	case s = <-reset:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown never ran out")
	}

	tooSlow := 0
	for _, entry := range s.Log {
		if entry.Severity == state.SeverityError {
			tooSlow++
		}
	}
	if tooSlow != 1 {
		t.Errorf("log = %+v, want exactly one error", s.Log)
	}
	if len(s.Items) != 0 {
		t.Errorf("trap came back: %+v", s.Items)
	}

	// The countdown is gone; nothing else changes.
	version := e.State().Version
	time.Sleep(30 * time.Millisecond)
	if got := e.State().Version; got != version {
		t.Errorf("version moved from %d to %d after expiry", version, got)
	}
}

func TestCountdown_EscapeStopsTimer(t *testing.T) {
	f := newFixture(trapMaze(), 1)
	e := load(t, f.deps, Options{GameID: 1, Level: "FIRST", TrapSeconds: 1000, TickInterval: 2 * time.Millisecond})

	submit(t, e, "move right")
	time.Sleep(10 * time.Millisecond)
	submit(t, e, "Jump")

	s := e.State()
	if s.Trapped() || s.TimeLeft != 0 {
		t.Fatalf("still trapped after escape: %+v", s)
	}
	time.Sleep(20 * time.Millisecond)
	after := e.State()
	if after.Version != s.Version || after.Position != s.Position {
		t.Errorf("state changed after escape: %+v -> %+v", s, after)
	}
}

func TestCountdown_WrongCommandKeepsTimer(t *testing.T) {
	f := newFixture(trapMaze(), 1)
	e := load(t, f.deps, Options{GameID: 1, Level: "FIRST", TrapSeconds: 1000, TickInterval: time.Hour})

	submit(t, e, "move right")
	submit(t, e, "run away")
	s := e.State()
	if s.Trap != world.KindTrapHole || s.TimeLeft != 1000 {
		t.Errorf("trap = %q timeLeft = %d", s.Trap, s.TimeLeft)
	}
	if l := lastLog(t, s); l.Text != "Wrong command! Panic!" {
		t.Errorf("last log = %+v", l)
	}
}

func TestClose_StopsCountdownAndEndsSession(t *testing.T) {
	f := newFixture(trapMaze(), 1)
	e, err := Load(context.Background(), f.deps, Options{GameID: 1, Level: "FIRST", TrapSeconds: 1000, TickInterval: 2 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	submit(t, e, "move right")
	e.Close()
	version := e.State().Version
	time.Sleep(20 * time.Millisecond)
	if got := e.State().Version; got != version {
		t.Errorf("tick after Close: version %d -> %d", version, got)
	}

	if _, ok := <-e.Done(); ok {
		t.Error("Done delivered a result for an abandoned session")
	}
	if err := e.Submit(context.Background(), "jump"); !errors.Is(err, ErrSessionEnded) {
		t.Errorf("Submit after Close: %v", err)
	}
	if got := f.presence.History(); len(got) != 2 || got[1] {
		t.Errorf("presence = %v, want [true false]", got)
	}
	e.Close()
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	f := newFixture(exitMaze(), 1)
	e := load(t, f.deps, Options{GameID: 1, Level: "FIRST"})

	var mu sync.Mutex
	var versions []uint64
	unsubscribe := e.Subscribe(func(s Snapshot) {
		mu.Lock()
		versions = append(versions, s.Version)
		mu.Unlock()
	})

	submit(t, e, "help")
	submit(t, e, "")
	submit(t, e, "move up")
	unsubscribe()
	unsubscribe()
	submit(t, e, "move down")

	mu.Lock()
	defer mu.Unlock()
	if len(versions) != 2 || versions[0] != 1 || versions[1] != 2 {
		t.Errorf("versions = %v, want [1 2]", versions)
	}
}

func TestState_IsACopy(t *testing.T) {
	f := newFixture(trapMaze(), 1)
	e := load(t, f.deps, Options{GameID: 1, Level: "FIRST"})

	s := e.State()
	s.Grid[0][0] = 1
	s.Log[0].Text = "changed"
	s.Items[0].Kind = world.KindKey

	fresh := e.State()
	if fresh.Grid[0][0] != 0 || fresh.Log[0].Text == "changed" || fresh.Items[0].Kind != world.KindTrapHole {
		t.Errorf("snapshot aliases engine state: %+v", fresh)
	}
}

func TestSubscribe_CallbackMayReadState(t *testing.T) {
	f := newFixture(trapMaze(), 1)
	e := load(t, f.deps, Options{GameID: 1, Level: "FIRST", TrapSeconds: 1000, TickInterval: time.Millisecond})

	var mu sync.Mutex
	var last uint64
	ordered := true
	unsubscribe := e.Subscribe(func(s Snapshot) {
		cur := e.State()
		mu.Lock()
		defer mu.Unlock()
		if s.Version <= last || cur.Version < s.Version {
			ordered = false
		}
		last = s.Version
	})
	defer unsubscribe()

	submit(t, e, "move right")

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := 0; i < 200; i++ {
			if err := e.Submit(context.Background(), "dance"); err != nil {
				return
			}
		}
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("submits stalled while a subscriber was reading state")
	}

	mu.Lock()
	defer mu.Unlock()
	if !ordered {
		t.Error("snapshots delivered out of version order")
	}
}
