// Package world provides the 2D grid primitives the maze engine is built on.
package world

// CellCode is the numeric code of a grid tile as delivered by maze content
type CellCode int

// Cell codes
const (
	CodeFloor    CellCode = 0
	CodeWall     CellCode = 1
	CodeReserved CellCode = 2
	CodeExit     CellCode = 3
)

// IsValid reports whether c is a known cell code
func (c CellCode) IsValid() bool {
	return c >= CodeFloor && c <= CodeExit
}

// Cell represents a single tile in the grid
type Cell struct {
	Row  int
	Col  int
	Code CellCode
}

// Pos returns the cell's position
func (c *Cell) Pos() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// IsWall returns true if the cell blocks movement
func (c *Cell) IsWall() bool {
	return c.Code == CodeWall
}

// IsExit returns true if reaching this cell wins the level
func (c *Cell) IsExit() bool {
	return c.Code == CodeExit
}

// IsWalkable returns true for floor, reserved and exit tiles
func (c *Cell) IsWalkable() bool {
	return c != nil && !c.IsWall()
}
