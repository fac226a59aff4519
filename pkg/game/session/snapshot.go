package session

import (
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// Snapshot is a copy of a session's state. Nothing in it aliases the
// engine, so adapters may keep or encode it freely.
type Snapshot struct {
	SessionID string `json:"sessionId"`
	Version   uint64 `json:"version"` // increases with every change

	GameID int    `json:"gameId"`
	Level  string `json:"level"`

	Grid      [][]int         `json:"grid"`
	Position  world.Position  `json:"position"`
	Start     world.Position  `json:"start"`
	Items     []world.Item    `json:"items"`
	Inventory state.Inventory `json:"inventory"`
	Log       []state.Entry   `json:"log"`

	Trap     world.ItemKind `json:"trap,omitempty"`
	TimeLeft int            `json:"timeLeft"`

	Active bool `json:"active"`
	Won    bool `json:"won"`
	Score  int  `json:"score,omitempty"`
}

// Trapped reports whether a trap countdown was running
func (s Snapshot) Trapped() bool {
	return s.Trap != ""
}

func (e *Engine) snapshotLocked() Snapshot {
	g := e.game
	log := make([]state.Entry, len(g.Log))
	copy(log, g.Log)

	return Snapshot{
		SessionID: e.id,
		Version:   e.version,
		GameID:    g.GameID,
		Level:     g.Level,
		Grid:      g.Grid.Codes(),
		Position:  g.Position,
		Start:     g.Start,
		Items:     g.Items.Live(),
		Inventory: g.Inventory,
		Log:       log,
		Trap:      g.Trap,
		TimeLeft:  g.TimeLeft,
		Active:    g.Active,
		Won:       g.Won,
		Score:     e.score,
	}
}
