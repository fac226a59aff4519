package gameplay

import (
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// CanEnter checks if the player can step onto cell, logging why not when
// logReason is set. Rules apply in order: bounds, wall, locked door.
func CanEnter(g *state.Game, cell *world.Cell, logReason bool) bool {
	if cell == nil {
		if logReason {
			logError(g, "Blocked! You cannot go that way.")
		}
		return false
	}

	if cell.IsWall() {
		if logReason {
			logError(g, "BUMP! You hit a wall.")
		}
		return false
	}

	if g.Items.At(cell.Pos(), world.KindDoor) != nil {
		if logReason {
			logWarning(g, "The path is blocked by a locked door.")
			logInfo(g, "Hint: stand next to the door and type 'open door'.")
		}
		return false
	}

	return true
}

// Move tries to move the player one tile in dir
func Move(g *state.Game, dir world.Direction) {
	target := g.Grid.GetCellRelative(g.Position, dir)
	if !CanEnter(g, target, true) {
		return
	}

	g.Position = target.Pos()
	logInfo(g, "You moved %s.", dynamicGet(dir.String()))
	checkTileEntry(g, target)
}

// checkTileEntry runs once after every successful move. Reaching the exit
// wins and ends the check; otherwise a live trap on the tile fires once.
func checkTileEntry(g *state.Game, cell *world.Cell) {
	if cell.IsExit() {
		Win(g)
		return
	}

	if trap := g.Items.TrapAt(cell.Pos()); trap != nil {
		TriggerTrap(g, trap.Kind)
		g.Items.Remove(trap.ID)
	}
}
