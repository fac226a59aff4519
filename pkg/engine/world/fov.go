package world

import (
	"github.com/zyedidia/generic/mapset"
)

// BaseLightRadius is how far the player sees without a flashlight
// (Chebyshev distance).
const BaseLightRadius = 1

// LightRadius returns the view radius for a given flashlight level.
// Every flashlight switched on adds one tile.
func LightRadius(flashlightLevel int) int {
	if flashlightLevel < 0 {
		flashlightLevel = 0
	}
	return BaseLightRadius + flashlightLevel
}

// CalculateFOV returns the positions visible from center within radius.
// Walls block sight but are themselves visible.
func CalculateFOV(grid *Grid, center Position, radius int) mapset.Set[Position] {
	visible := mapset.New[Position]()
	if grid == nil || !grid.IsValidPosition(center) {
		return visible
	}
	visible.Put(center)

	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			target := Position{Row: center.Row + dr, Col: center.Col + dc}
			if !grid.IsValidPosition(target) {
				continue
			}
			if hasLineOfSight(grid, center, target) {
				visible.Put(target)
			}
		}
	}
	return visible
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// hasLineOfSight walks a Bresenham line from a to b. Any wall strictly
// between the two ends blocks the view.
func hasLineOfSight(grid *Grid, a, b Position) bool {
	dr, dc := b.Row-a.Row, b.Col-a.Col
	absDr, absDc := abs(dr), abs(dc)
	stepR, stepC := sign(dr), sign(dc)

	r, c := a.Row, a.Col
	if absDr >= absDc {
		err := 2*absDc - absDr
		for r != b.Row {
			r += stepR
			if err > 0 {
				c += stepC
				err -= 2 * absDr
			}
			err += 2 * absDc
			if r == b.Row && c == b.Col {
				return true
			}
			if blocksSight(grid, Position{Row: r, Col: c}) {
				return false
			}
		}
	} else {
		err := 2*absDr - absDc
		for c != b.Col {
			c += stepC
			if err > 0 {
				r += stepR
				err -= 2 * absDc
			}
			err += 2 * absDr
			if r == b.Row && c == b.Col {
				return true
			}
			if blocksSight(grid, Position{Row: r, Col: c}) {
				return false
			}
		}
	}
	return true
}

func blocksSight(grid *Grid, p Position) bool {
	cell := grid.GetCell(p)
	return cell == nil || cell.IsWall()
}
