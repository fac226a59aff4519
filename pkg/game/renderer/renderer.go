// Package renderer holds what every presentation backend shares: the style
// vocabulary and helpers that turn a snapshot into display text.
package renderer

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/world"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/entities"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/session"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/state"
)

// Map glyphs
const (
	PlayerIcon = "@"
	IconWall   = "▒"
	IconFloor  = "·"
	IconExit   = "⌂"
	IconDark   = " "
)

// StyleForSeverity picks the style a log entry is drawn in
func StyleForSeverity(sev state.Severity) TextStyle {
	switch sev {
	case state.SeveritySuccess:
		return StyleSuccess
	case state.SeverityError:
		return StyleError
	case state.SeverityWarning:
		return StyleWarning
	default:
		return StyleInfo
	}
}

// NewEntries returns the log entries a renderer has not shown yet, given how
// many it already printed
func NewEntries(s session.Snapshot, shown int) []state.Entry {
	if shown < 0 || shown > len(s.Log) {
		shown = 0
	}
	return s.Log[shown:]
}

// StatusLine summarises position, inventory and any running trap
func StatusLine(s session.Snapshot) string {
	key := gotext.Get("no")
	if s.Inventory.HasKey {
		key = gotext.Get("yes")
	}
	parts := []string{
		gotext.Get("Position %d:%d", s.Position.Row, s.Position.Col),
		gotext.Get("Key: %s", key),
		gotext.Get("Flashlight: %d", s.Inventory.FlashlightLevel),
	}
	if s.Trapped() {
		parts = append(parts, gotext.Get("Trap! %d seconds left", s.TimeLeft))
	}
	if s.Won {
		parts = append(parts, gotext.Get("Score: %d", s.Score))
	}
	return strings.Join(parts, " | ")
}

// MapCell describes one map tile the way a renderer should draw it
type MapCell struct {
	Icon  string
	Style TextStyle
}

// MapRows lays out the part of the maze the player can see. Tiles beyond the
// light radius come back dark.
func MapRows(s session.Snapshot) [][]MapCell {
	grid, err := world.NewGrid(s.Grid)
	if err != nil {
		return nil
	}
	visible := world.CalculateFOV(grid, s.Position, world.LightRadius(s.Inventory.FlashlightLevel))

	items := make(map[world.Position]world.Item, len(s.Items))
	for _, it := range s.Items {
		if _, taken := items[it.Pos]; !taken {
			items[it.Pos] = it
		}
	}

	rows := make([][]MapCell, grid.Rows())
	grid.ForEachCell(func(cell *world.Cell) {
		rows[cell.Row] = append(rows[cell.Row], mapCell(s, cell, visible.Has(cell.Pos()), items))
	})
	return rows
}

func mapCell(s session.Snapshot, cell *world.Cell, visible bool, items map[world.Position]world.Item) MapCell {
	pos := cell.Pos()
	switch {
	case pos == s.Position:
		return MapCell{PlayerIcon, StylePlayer}
	case !visible:
		return MapCell{IconDark, StyleNormal}
	case cell.IsWall():
		return MapCell{IconWall, StyleWall}
	case cell.IsExit():
		return MapCell{IconExit, StyleExit}
	}
	if it, ok := items[pos]; ok {
		style := StyleItem
		switch {
		case it.Kind.IsTrap():
			style = StyleTrap
		case it.Kind == world.KindDoor:
			style = StyleDoor
		}
		return MapCell{entities.Icon(it.Kind), style}
	}
	return MapCell{IconFloor, StyleSubtle}
}

// Legend explains the map glyphs
func Legend() string {
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s  %s %s",
		PlayerIcon, gotext.Get("you"),
		IconExit, gotext.Get("exit"),
		entities.Icon(world.KindKey), gotext.Get("key"),
		entities.Icon(world.KindDoor), gotext.Get("door"),
		entities.Icon(world.KindFlashlight), gotext.Get("flashlight"),
		entities.Icon(world.KindTrapHole), gotext.Get("trap"),
	)
}
