package gameplay

import (
	"errors"
	"strings"
	"testing"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/content"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

func TestBuildGame_InitialState(t *testing.T) {
	maze := &content.Maze{
		Width:         3,
		Height:        3,
		StartPosition: pos(1, 1),
		Grid:          [][]int{{1, 1, 1}, {1, 0, 3}, {1, 1, 1}},
		Items:         []content.MazeItem{item(1, 1, world.KindKey), item(1, 2, world.KindTrapGhost)},
	}
	g, err := BuildGame(9, "first", maze)
	if err != nil {
		t.Fatalf("BuildGame: %v", err)
	}
	if g.GameID != 9 || g.Level != "FIRST" {
		t.Errorf("id/level = %d/%s", g.GameID, g.Level)
	}
	if g.Position != pos(1, 1) || g.Start != pos(1, 1) {
		t.Errorf("position/start = %v/%v", g.Position, g.Start)
	}
	if g.Inventory != (state.Inventory{}) {
		t.Errorf("inventory = %+v", g.Inventory)
	}
	if !g.Active || g.Won || g.Trapped() {
		t.Errorf("flags: active=%v won=%v trapped=%v", g.Active, g.Won, g.Trapped())
	}
	if g.Items.Len() != 2 {
		t.Errorf("items = %d, want 2", g.Items.Len())
	}
	if len(g.Log) != 2 {
		t.Fatalf("log = %+v, want welcome and help hint", g.Log)
	}
	if !strings.Contains(g.Log[1].Text, "help") {
		t.Errorf("second line %q should mention help", g.Log[1].Text)
	}
}

func TestBuildGame_RejectsMalformed(t *testing.T) {
	maze := &content.Maze{Width: 2, Height: 1, Grid: [][]int{{0}}}
	if _, err := BuildGame(1, "FIRST", maze); !errors.Is(err, content.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
	if _, err := BuildGame(1, "FIRST", nil); !errors.Is(err, content.ErrEmptyEnvelope) {
		t.Errorf("nil maze err = %v, want ErrEmptyEnvelope", err)
	}
}

func TestScoreForLevel(t *testing.T) {
	cases := []struct {
		level string
		want  int
	}{
		{"FIRST", 1},
		{"SECOND", 2},
		{"third", 3},
	}
	for _, tc := range cases {
		got, err := ScoreForLevel(tc.level)
		if err != nil || got != tc.want {
			t.Errorf("ScoreForLevel(%q) = %d, %v; want %d", tc.level, got, err, tc.want)
		}
	}
	if _, err := ScoreForLevel("FOURTH"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("FOURTH err = %v, want ErrUnknownLevel", err)
	}
}

func TestProcessCommand_UnknownAndBlank(t *testing.T) {
	g := buildGame(t, "FIRST", openRoom(), pos(2, 2))
	ProcessCommand(g, "   ")
	if len(g.Log) != 0 {
		t.Fatalf("blank input logged %+v", g.Log)
	}
	ProcessCommand(g, "dance")
	e := lastEntry(t, g)
	if e.Severity != state.SeverityError || !strings.HasPrefix(e.Text, "Unknown command") {
		t.Errorf("entry = %+v", e)
	}
}

func TestShowHelp_ListsEveryPhrase(t *testing.T) {
	g := buildGame(t, "FIRST", openRoom(), pos(2, 2))
	ProcessCommand(g, "?")
	e := lastEntry(t, g)
	if e.Severity != state.SeverityInfo {
		t.Errorf("severity = %s", e.Severity)
	}
	for _, phrase := range []string{"move up", "get key", "unlock door", "turn on flashlight", "info"} {
		if !strings.Contains(e.Text, phrase) {
			t.Errorf("help %q missing %q", e.Text, phrase)
		}
	}
}
