package state

import (
	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
)

// Inventory is what the player carries
type Inventory struct {
	HasKey          bool `json:"hasKey"`
	FlashlightLevel int  `json:"flashlightLevel"`
}

// Game represents the state of one maze session
type Game struct {
	GameID int
	Level  string

	Grid  *world.Grid
	Items *world.Items

	Position world.Position
	Start    world.Position // hazard-reset anchor

	Inventory Inventory

	Log []Entry

	Trap        world.ItemKind // empty when not trapped
	TimeLeft    int
	TrapSeconds int // countdown length for new traps

	Active bool
	Won    bool
}

// NewGame creates an empty game for the given level
func NewGame(gameID int, level string) *Game {
	return &Game{
		GameID: gameID,
		Level:  level,
		Items:  world.NewItems(),
		Log:    make([]Entry, 0),
	}
}

// Trapped returns true while a trap countdown is running
func (g *Game) Trapped() bool {
	return g.Trap != ""
}

// SetTrap puts the player into a trap with the given countdown
func (g *Game) SetTrap(kind world.ItemKind, seconds int) {
	g.Trap = kind
	g.TimeLeft = seconds
}

// ClearTrap ends any trap
func (g *Game) ClearTrap() {
	g.Trap = ""
	g.TimeLeft = 0
}

// CurrentCell returns the cell under the player
func (g *Game) CurrentCell() *world.Cell {
	if g.Grid == nil {
		return nil
	}
	return g.Grid.GetCell(g.Position)
}
