package content

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
)

// ErrUnsolvable is returned when no exit can be reached from the start
var ErrUnsolvable = errors.New("maze has no reachable exit")

// reachable returns every tile reachable from the start by BFS. Walls and
// bounds stop the search; door tiles stop it too unless doorsOpen.
// Trap tiles are passable since every trap can be escaped.
func (m *Maze) reachable(doors mapset.Set[world.Position], doorsOpen bool) mapset.Set[world.Position] {
	seen := mapset.New[world.Position]()
	queue := []world.Position{m.StartPosition}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if !m.inBounds(current) || seen.Has(current) {
			continue
		}
		if world.CellCode(m.Grid[current.Row][current.Col]) == world.CodeWall {
			continue
		}
		if !doorsOpen && doors.Has(current) {
			continue
		}

		seen.Put(current)

		for _, next := range current.Neighbors() {
			if !seen.Has(next) {
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// CheckSolvable reports whether the exit can be reached. Doors only count as
// passable when a key lies on a tile reachable with every door shut.
// The returned error wraps ErrUnsolvable.
func (m *Maze) CheckSolvable() error {
	if err := m.Validate(); err != nil {
		return err
	}

	doors := mapset.New[world.Position]()
	var keys, exits []world.Position
	for _, item := range m.Items {
		p := world.Position{Row: item.Row, Col: item.Col}
		switch item.Type {
		case world.KindDoor:
			doors.Put(p)
		case world.KindKey:
			keys = append(keys, p)
		}
	}
	for r, line := range m.Grid {
		for c, v := range line {
			if world.CellCode(v) == world.CodeExit {
				exits = append(exits, world.Position{Row: r, Col: c})
			}
		}
	}
	if len(exits) == 0 {
		return fmt.Errorf("%w: no exit tile", ErrUnsolvable)
	}

	closed := m.reachable(doors, false)
	if anyIn(closed, exits) {
		return nil
	}
	if !anyIn(closed, keys) {
		return fmt.Errorf("%w: exit is behind a door and no key is reachable", ErrUnsolvable)
	}
	if !anyIn(m.reachable(doors, true), exits) {
		return fmt.Errorf("%w: exit is walled off", ErrUnsolvable)
	}
	return nil
}

func anyIn(set mapset.Set[world.Position], ps []world.Position) bool {
	for _, p := range ps {
		if set.Has(p) {
			return true
		}
	}
	return false
}
