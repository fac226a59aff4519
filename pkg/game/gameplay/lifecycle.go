package gameplay

import (
	"errors"
	"fmt"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/content"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/entities"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// ErrUnknownLevel is returned for level identifiers that have no score
var ErrUnknownLevel = errors.New("unknown level")

// levelScores maps level identifiers to the score a win earns
var levelScores = map[string]int{
	"FIRST":  1,
	"SECOND": 2,
	"THIRD":  3,
}

// BuildGame creates a new session state from a maze definition
func BuildGame(gameID int, level string, maze *content.Maze) (*state.Game, error) {
	if maze == nil {
		return nil, content.ErrEmptyEnvelope
	}
	if err := maze.Validate(); err != nil {
		return nil, err
	}

	grid, err := world.NewGrid(maze.Grid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", content.ErrMalformed, err)
	}

	g := state.NewGame(gameID, content.NormalizeLevel(level))
	g.Grid = grid
	for _, it := range maze.Items {
		g.Items.Add(it.Type, world.Position{Row: it.Row, Col: it.Col})
	}
	g.Position = maze.StartPosition
	g.Start = maze.StartPosition
	g.TrapSeconds = entities.TrapCountdownSeconds
	g.Active = true

	logInfo(g, "Welcome to the Maze Adventure!")
	logInfo(g, "Type 'help' to see what you can do.")

	return g, nil
}

// Win ends the session successfully
func Win(g *state.Game) {
	g.Won = true
	g.Active = false
	g.ClearTrap()
	logSuccess(g, "Congratulations! You found the exit!")
}

// ScoreForLevel returns the score a win on level earns
func ScoreForLevel(level string) (int, error) {
	score, ok := levelScores[content.NormalizeLevel(level)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	return score, nil
}

// ScoreSaved logs that the win was recorded
func ScoreSaved(g *state.Game, score int) {
	logSuccess(g, "Score saved! You earned %d point(s).", score)
}

// ScoreNotSaved logs that the scoring service rejected or never received the score
func ScoreNotSaved(g *state.Game) {
	logError(g, "Your score could not be saved.")
}

// PlayerUnknown logs that nobody is signed in, so there is no one to credit
func PlayerUnknown(g *state.Game) {
	logError(g, "Player information not found. The score was not saved.")
}

// LevelUnscored logs a win on a level that has no score
func LevelUnscored(g *state.Game) {
	logError(g, "This level has no score.")
}
