// Package terminal answers questions about the attached terminal.
package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the width and height of the terminal behind w.
// Falls back to defaults if w is not a terminal.
func GetSize(w io.Writer) (width, height int) {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the width of the terminal behind w
func GetWidth(w io.Writer) int {
	width, _ := GetSize(w)
	return width
}

// Rule returns a horizontal line as wide as the terminal behind w, capped at max
func Rule(w io.Writer, max int) string {
	width := GetWidth(w)
	if max > 0 && width > max {
		width = max
	}
	return strings.Repeat("─", width)
}
