// Package content holds the maze definitions the engine plays and the
// collaborators that fetch them and record scores.
package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
)

var (
	// ErrNotFound is returned when no maze exists for a game/level pair
	ErrNotFound = errors.New("maze not found")
	// ErrEmptyEnvelope is returned when the backend answered with no content
	ErrEmptyEnvelope = errors.New("content envelope is empty")
	// ErrMalformed is returned when a maze definition is inconsistent
	ErrMalformed = errors.New("malformed maze")
)

// MazeItem is an item as delivered by the backend
type MazeItem struct {
	Row  int            `json:"row" yaml:"row"`
	Col  int            `json:"col" yaml:"col"`
	Type world.ItemKind `json:"type" yaml:"type"`
}

// Maze is one level's layout
type Maze struct {
	Width         int            `json:"width" yaml:"width"`
	Height        int            `json:"height" yaml:"height"`
	StartPosition world.Position `json:"startPosition" yaml:"startPosition"`
	Grid          [][]int        `json:"grid" yaml:"grid"`
	Items         []MazeItem     `json:"items" yaml:"items"`
}

// Envelope wraps the content list the backend answers with
type Envelope struct {
	Content []Maze `json:"content"`
}

// First returns the first maze of the envelope. Only the first one is played.
func (e *Envelope) First() (*Maze, error) {
	if e == nil || len(e.Content) == 0 {
		return nil, ErrEmptyEnvelope
	}
	return &e.Content[0], nil
}

// NormalizeLevel folds a level identifier to its canonical upper-case form
func NormalizeLevel(level string) string {
	return strings.ToUpper(strings.TrimSpace(level))
}

// Validate checks the maze for shape problems. The returned error wraps
// ErrMalformed.
func (m *Maze) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrMalformed, m.Width, m.Height)
	}
	if len(m.Grid) != m.Height {
		return fmt.Errorf("%w: grid has %d rows, height is %d", ErrMalformed, len(m.Grid), m.Height)
	}
	for r, line := range m.Grid {
		if len(line) != m.Width {
			return fmt.Errorf("%w: row %d has %d columns, width is %d", ErrMalformed, r, len(line), m.Width)
		}
		for c, v := range line {
			if !world.CellCode(v).IsValid() {
				return fmt.Errorf("%w: cell %d:%d has unknown code %d", ErrMalformed, r, c, v)
			}
		}
	}

	start := m.StartPosition
	if !m.inBounds(start) {
		return fmt.Errorf("%w: start %d:%d out of bounds", ErrMalformed, start.Row, start.Col)
	}
	if world.CellCode(m.Grid[start.Row][start.Col]) == world.CodeWall {
		return fmt.Errorf("%w: start %d:%d is a wall", ErrMalformed, start.Row, start.Col)
	}

	for i, item := range m.Items {
		if !item.Type.IsValid() {
			return fmt.Errorf("%w: item %d has unknown type %q", ErrMalformed, i, item.Type)
		}
		if !m.inBounds(world.Position{Row: item.Row, Col: item.Col}) {
			return fmt.Errorf("%w: item %d at %d:%d out of bounds", ErrMalformed, i, item.Row, item.Col)
		}
	}
	return nil
}

func (m *Maze) inBounds(p world.Position) bool {
	return p.Row >= 0 && p.Row < m.Height && p.Col >= 0 && p.Col < m.Width
}
