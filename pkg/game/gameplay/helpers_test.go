package gameplay

import (
	"testing"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/content"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// buildGame loads a maze and clears the welcome lines so tests can count
// the entries their own commands add.
func buildGame(t *testing.T, level string, grid [][]int, start world.Position, items ...content.MazeItem) *state.Game {
	t.Helper()
	maze := &content.Maze{
		Width:         len(grid[0]),
		Height:        len(grid),
		StartPosition: start,
		Grid:          grid,
		Items:         items,
	}
	g, err := BuildGame(1, level, maze)
	if err != nil {
		t.Fatalf("BuildGame: %v", err)
	}
	g.Log = g.Log[:0]
	return g
}

// openRoom is a 5x5 walled room with a 3x3 floor in the middle
func openRoom() [][]int {
	return [][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 0, 1},
		{1, 1, 1, 1, 1},
	}
}

func item(row, col int, kind world.ItemKind) content.MazeItem {
	return content.MazeItem{Row: row, Col: col, Type: kind}
}

func pos(row, col int) world.Position {
	return world.Position{Row: row, Col: col}
}

// countSeverity counts log entries of one severity
func countSeverity(g *state.Game, sev state.Severity) int {
	n := 0
	for _, e := range g.Log {
		if e.Severity == sev {
			n++
		}
	}
	return n
}

func lastEntry(t *testing.T, g *state.Game) state.Entry {
	t.Helper()
	e, ok := g.LastMessage()
	if !ok {
		t.Fatal("log is empty")
	}
	return e
}
