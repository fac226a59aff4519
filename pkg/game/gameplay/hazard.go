package gameplay

import (
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/entities"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// TriggerTrap puts the player into a trap of the given kind
func TriggerTrap(g *state.Game, kind world.ItemKind) {
	info, ok := entities.TrapTypes[kind]
	if !ok {
		return
	}
	seconds := g.TrapSeconds
	if seconds <= 0 {
		seconds = entities.TrapCountdownSeconds
	}
	g.SetTrap(kind, seconds)
	logWarning(g, info.TriggerMessage, seconds)
}

// ProcessTrapCommand handles input while trapped. Only the escape phrase for
// the active trap works; anything else leaves the trap and timer untouched.
func ProcessTrapCommand(g *state.Game, text string) {
	if !g.Trapped() {
		return
	}

	if entities.IsEscape(g.Trap, text) {
		info := entities.TrapTypes[g.Trap]
		g.ClearTrap()
		logSuccess(g, info.EscapedMessage)
		return
	}

	logError(g, "Wrong command! Panic!")
}

// Tick advances the trap countdown by one second. It returns true when the
// countdown ran out and the player was sent back to the start.
func Tick(g *state.Game) bool {
	if !g.Trapped() {
		return false
	}
	if g.TimeLeft > 0 {
		g.TimeLeft--
	}
	if g.TimeLeft > 0 {
		return false
	}
	FailTrap(g)
	return true
}

// FailTrap is the countdown-exhausted path: the trap ends and the player is
// returned to the level's start. Items and inventory are kept.
func FailTrap(g *state.Game) {
	g.ClearTrap()
	g.Position = g.Start
	logError(g, "Too slow! You were dragged back to the start.")
}
