// Package entities describes the maze's interactive things and their fixed rules.
package entities

import (
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
)

// TrapCountdownSeconds is how long the player has to escape any trap
const TrapCountdownSeconds = 15

// TrapInfo contains the rules and messages for one trap kind.
// Message fields are translation msgids with a single %d for seconds left
// where noted.
type TrapInfo struct {
	Name           string
	EscapeCommand  string // normalized phrase that escapes this trap
	TriggerMessage string // %d = seconds to react
	EscapedMessage string
}

// TrapTypes maps trap kinds to their information
var TrapTypes = map[world.ItemKind]TrapInfo{
	world.KindTrapGhost: {
		Name:           "Ghost",
		EscapeCommand:  "run away",
		TriggerMessage: "A ghost appears! Type 'Run away' within %d seconds!",
		EscapedMessage: "You ran away from the ghost!",
	},
	world.KindTrapHole: {
		Name:           "Hole",
		EscapeCommand:  "jump",
		TriggerMessage: "The floor gives way! Type 'Jump' within %d seconds!",
		EscapedMessage: "You jumped clear of the hole!",
	},
}

// EscapeCommand returns the phrase that escapes the given trap kind
func EscapeCommand(kind world.ItemKind) string {
	return TrapTypes[kind].EscapeCommand
}

// IsEscape reports whether the normalized text escapes the given trap kind
func IsEscape(kind world.ItemKind, text string) bool {
	info, ok := TrapTypes[kind]
	return ok && info.EscapeCommand == text
}
