package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/terminal"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/renderer"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/session"
)

// maxRuleWidth caps separator lines on very wide terminals
const maxRuleWidth = 72

// TUIRenderer is the terminal-based renderer implementation. Update may be
// called from the countdown goroutine, so all output goes through mu.
type TUIRenderer struct {
	out     io.Writer
	showMap bool

	colorInfo    color.Style
	colorSuccess color.Style
	colorError   color.Style
	colorWarning color.Style
	colorSubtle  color.Style
	colorPlayer  color.Style
	colorWall    color.Style
	colorExit    color.Style
	colorItem    color.Style
	colorTrap    color.Style
	colorDoor    color.Style

	mu          sync.Mutex
	lastVersion uint64
	seen        bool
	shown       int // log entries already printed
}

// New creates a terminal renderer writing to out
func New(out io.Writer, showMap bool) *TUIRenderer {
	return &TUIRenderer{out: out, showMap: showMap}
}

// Init initializes the TUI renderer colours
func (t *TUIRenderer) Init() {
	t.colorInfo = color.Style{color.FgBlue}
	t.colorSuccess = color.Style{color.FgGreen, color.OpBold}
	t.colorError = color.Style{color.FgRed, color.OpBold}
	t.colorWarning = color.Style{color.FgYellow, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorWall = color.Style{color.FgGray, color.OpBold}
	t.colorExit = color.Style{color.FgGreen}
	t.colorItem = color.Style{color.FgMagenta}
	t.colorTrap = color.Style{color.FgRed}
	t.colorDoor = color.Style{color.FgYellow, color.OpBold}
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleInfo:
		return t.colorInfo.Sprint(text)
	case renderer.StyleSuccess:
		return t.colorSuccess.Sprint(text)
	case renderer.StyleError:
		return t.colorError.Sprint(text)
	case renderer.StyleWarning:
		return t.colorWarning.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	case renderer.StylePlayer:
		return t.colorPlayer.Sprint(text)
	case renderer.StyleWall:
		return t.colorWall.Sprint(text)
	case renderer.StyleExit:
		return t.colorExit.Sprint(text)
	case renderer.StyleItem:
		return t.colorItem.Sprint(text)
	case renderer.StyleTrap:
		return t.colorTrap.Sprint(text)
	case renderer.StyleDoor:
		return t.colorDoor.Sprint(text)
	default:
		return text
	}
}

// Update prints log entries added since the last update, then the status
// line and, if enabled, the map. A countdown tick with nothing new to say
// only prints the time left.
func (t *TUIRenderer) Update(s session.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seen && s.Version <= t.lastVersion {
		return
	}
	t.seen = true
	t.lastVersion = s.Version

	entries := renderer.NewEntries(s, t.shown)
	t.shown = len(s.Log)

	if len(entries) == 0 {
		if s.Trapped() {
			fmt.Fprintln(t.out, t.colorWarning.Sprint(gotext.Get("Trap! %d seconds left", s.TimeLeft)))
		}
		return
	}

	for _, e := range entries {
		fmt.Fprintf(t.out, "  %s\n", t.StyleText(e.Text, renderer.StyleForSeverity(e.Severity)))
	}
	if t.showMap {
		t.printMap(s)
	}
	t.printStatusBar(s)
}

// Prompt prints the input prompt
func (t *TUIRenderer) Prompt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.out, "> ")
}

// printStatusBar renders the status line between two rules
func (t *TUIRenderer) printStatusBar(s session.Snapshot) {
	rule := t.colorSubtle.Sprint(terminal.Rule(t.out, maxRuleWidth))
	fmt.Fprintln(t.out, rule)
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(renderer.StatusLine(s)))
	fmt.Fprintln(t.out, rule)
}

// printMap renders the lit part of the maze
func (t *TUIRenderer) printMap(s session.Snapshot) {
	rows := renderer.MapRows(s)
	if rows == nil {
		return
	}
	fmt.Fprintln(t.out)
	for _, row := range rows {
		var b strings.Builder
		b.WriteString("  ")
		for _, cell := range row {
			b.WriteString(t.StyleText(cell.Icon, cell.Style))
		}
		fmt.Fprintln(t.out, b.String())
	}
	fmt.Fprintln(t.out, "  "+t.colorSubtle.Sprint(renderer.Legend()))
	fmt.Fprintln(t.out)
}
