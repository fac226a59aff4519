package state

// Severity classifies a log entry for presentation
type Severity string

// Severities
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Entry is one line of the player-facing log
type Entry struct {
	Text     string   `json:"text"`
	Severity Severity `json:"type"`
}

// AddMessage appends an entry to the game's log
func (g *Game) AddMessage(sev Severity, text string) {
	g.Log = append(g.Log, Entry{Text: text, Severity: sev})
}

// LastMessage returns the newest entry, if any
func (g *Game) LastMessage() (Entry, bool) {
	if len(g.Log) == 0 {
		return Entry{}, false
	}
	return g.Log[len(g.Log)-1], true
}
