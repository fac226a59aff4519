// Package gameplay provides core game logic for player movement and interactions.
package gameplay

import (
	"github.com/leonelquinteros/gotext"

	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// dynamicGet is used for msgids that come from tables rather than literals.
// Going through a variable keeps go vet's printf check quiet.
var dynamicGet = gotext.Get

// logMessage translates msg, formats it with a, and appends it to the game's log
func logMessage(g *state.Game, sev state.Severity, msg string, a ...any) {
	g.AddMessage(sev, dynamicGet(msg, a...))
}

func logInfo(g *state.Game, msg string, a ...any) {
	logMessage(g, state.SeverityInfo, msg, a...)
}

func logSuccess(g *state.Game, msg string, a ...any) {
	logMessage(g, state.SeveritySuccess, msg, a...)
}

func logWarning(g *state.Game, msg string, a ...any) {
	logMessage(g, state.SeverityWarning, msg, a...)
}

func logError(g *state.Game, msg string, a ...any) {
	logMessage(g, state.SeverityError, msg, a...)
}
