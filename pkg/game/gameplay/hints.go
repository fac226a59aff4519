package gameplay

import (
	"strings"

	engineinput "github.com/sung0916/my-english-edu-sub001/pkg/engine/input"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// ShowHelp lists every accepted phrase
func ShowHelp(g *state.Game) {
	logInfo(g, "Commands: %s", HelpText())
}

// HelpText returns the accepted phrases grouped by action, e.g.
// "move up | take key / get key | ..."
func HelpText() string {
	byAction := engineinput.GetBindingsByAction()
	groups := make([]string, 0, len(byAction))
	for _, act := range engineinput.HelpActions() {
		groups = append(groups, strings.Join(byAction[act], " / "))
	}
	return strings.Join(groups, " | ")
}
