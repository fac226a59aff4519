package renderer

import (
	"github.com/sung0916/my-english-edu-sub001/pkg/game/session"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleInfo
	StyleSuccess
	StyleError
	StyleWarning
	StyleSubtle
	StylePlayer
	StyleWall
	StyleExit
	StyleItem
	StyleTrap
	StyleDoor
)

// Renderer defines the interface for presentation backends that draw
// session snapshots. The terminal renderer is the only one today; the web
// adapter sends raw snapshots instead.
type Renderer interface {
	// Init sets up colours and anything else the backend needs
	Init()

	// Update draws whatever changed since the last snapshot it saw.
	// Snapshots older than the last one drawn are ignored.
	Update(s session.Snapshot)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// Prompt asks for the next command
	Prompt()
}
