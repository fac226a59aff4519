package input

import (
	"sort"
	"strings"
)

// Action represents a high-level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// Interaction
	ActionTakeKey
	ActionOpenDoor
	ActionUseFlashlight

	// Meta
	ActionHelp

	// ActionUnknown is a non-empty line that matched nothing
	ActionUnknown
)

// Intent is what the player asked for, plus the normalized text it came from.
// Trapped input is matched against Text, not Action.
type Intent struct {
	Action Action
	Text   string
}

// bindings maps normalized phrases to actions. Several phrases may point to
// the same Action. Matching is exact; there is no prefix or fuzzy matching.
var bindings = map[string]Action{
	"move up":    ActionMoveUp,
	"move down":  ActionMoveDown,
	"move left":  ActionMoveLeft,
	"move right": ActionMoveRight,

	"take key": ActionTakeKey,
	"get key":  ActionTakeKey,

	"open door":   ActionOpenDoor,
	"unlock door": ActionOpenDoor,

	"turn on flashlight": ActionUseFlashlight,
	"use flashlight":     ActionUseFlashlight,

	"help": ActionHelp,
	"?":    ActionHelp,
	"info": ActionHelp,
}

// Normalize trims surrounding whitespace and folds case
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Parse turns a raw line into an Intent. Blank lines map to ActionNone.
func Parse(raw string) Intent {
	text := Normalize(raw)
	if text == "" {
		return Intent{Action: ActionNone}
	}
	if act, ok := bindings[text]; ok {
		return Intent{Action: act, Text: text}
	}
	return Intent{Action: ActionUnknown, Text: text}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveUp:
		return "Move up"
	case ActionMoveDown:
		return "Move down"
	case ActionMoveLeft:
		return "Move left"
	case ActionMoveRight:
		return "Move right"
	case ActionTakeKey:
		return "Take key"
	case ActionOpenDoor:
		return "Open door"
	case ActionUseFlashlight:
		return "Use flashlight"
	case ActionHelp:
		return "Help"
	case ActionUnknown:
		return "Unknown"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the accepted phrases grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for phrase, act := range bindings {
		result[act] = append(result[act], phrase)
	}
	// Stable ordering so help output doesn't shuffle between calls.
	for act, phrases := range result {
		sort.Strings(phrases)
		result[act] = phrases
	}
	return result
}

// HelpActions lists actions in the order help text presents them
func HelpActions() []Action {
	return []Action{
		ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionTakeKey, ActionOpenDoor, ActionUseFlashlight, ActionHelp,
	}
}
