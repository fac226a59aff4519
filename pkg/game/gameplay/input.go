package gameplay

import (
	engineinput "github.com/sung0916/my-english-edu-sub001/pkg/engine/input"
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// ProcessCommand interprets one raw line of player input
func ProcessCommand(g *state.Game, raw string) {
	if g.Won {
		return
	}
	ProcessIntent(g, engineinput.Parse(raw))
}

// ProcessIntent handles a parsed intent. While a trap is active only the
// trap handler sees the input.
func ProcessIntent(g *state.Game, intent engineinput.Intent) {
	if intent.Action == engineinput.ActionNone {
		return
	}

	if g.Trapped() {
		ProcessTrapCommand(g, intent.Text)
		return
	}

	switch intent.Action {
	case engineinput.ActionMoveUp:
		Move(g, world.Up)
	case engineinput.ActionMoveDown:
		Move(g, world.Down)
	case engineinput.ActionMoveLeft:
		Move(g, world.Left)
	case engineinput.ActionMoveRight:
		Move(g, world.Right)
	case engineinput.ActionTakeKey:
		TakeKey(g)
	case engineinput.ActionOpenDoor:
		OpenDoor(g)
	case engineinput.ActionUseFlashlight:
		UseFlashlight(g)
	case engineinput.ActionHelp:
		ShowHelp(g)
	default:
		logError(g, "Unknown command. Type 'help' to see what you can do.")
	}
}
