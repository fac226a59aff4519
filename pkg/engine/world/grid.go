package world

import (
	"fmt"
)

// Grid represents the maze map. It is read-only once built.
type Grid struct {
	cells [][]*Cell
	rows  int
	cols  int
}

// NewGrid builds a grid from a matrix of cell codes.
// Every row must have the same length and every code must be known.
func NewGrid(codes [][]int) (*Grid, error) {
	rows := len(codes)
	if rows == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	cols := len(codes[0])
	if cols == 0 {
		return nil, fmt.Errorf("grid has no columns")
	}

	g := &Grid{rows: rows, cols: cols, cells: make([][]*Cell, rows)}
	for r, line := range codes {
		if len(line) != cols {
			return nil, fmt.Errorf("grid row %d has %d columns, want %d", r, len(line), cols)
		}
		g.cells[r] = make([]*Cell, cols)
		for c, v := range line {
			code := CellCode(v)
			if !code.IsValid() {
				return nil, fmt.Errorf("grid cell %d:%d has unknown code %d", r, c, v)
			}
			g.cells[r][c] = &Cell{Row: r, Col: c, Code: code}
		}
	}
	return g, nil
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// IsValidPosition checks if a position is within grid bounds
func (g *Grid) IsValidPosition(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(p Position) *Cell {
	if !g.IsValidPosition(p) {
		return nil
	}
	return g.cells[p.Row][p.Col]
}

// GetCellRelative returns the cell adjacent to p in the specified direction
func (g *Grid) GetCellRelative(p Position, dir Direction) *Cell {
	if !dir.IsValid() {
		return nil
	}
	return g.GetCell(p.Step(dir))
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(cell *Cell)) {
	for _, line := range g.cells {
		for _, cell := range line {
			fn(cell)
		}
	}
}

// Codes returns a copy of the grid as a code matrix
func (g *Grid) Codes() [][]int {
	out := make([][]int, g.rows)
	for r, line := range g.cells {
		out[r] = make([]int, g.cols)
		for c, cell := range line {
			out[r][c] = int(cell.Code)
		}
	}
	return out
}
