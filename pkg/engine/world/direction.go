package world

// Direction represents a cardinal direction on the maze grid.
// Up is toward row 0, Left is toward column 0.
type Direction int

// Direction constants
const (
	Up Direction = iota
	Right
	Down
	Left
)

// AllDirections returns the scan order used for neighbour lookups
func AllDirections() []Direction {
	return []Direction{Up, Down, Left, Right}
}

// ParseDirection maps a lower-case direction word to a Direction
func ParseDirection(word string) (Direction, bool) {
	switch word {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Up, false
}

// String returns the word used for this direction in commands
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= Up && d <= Left
}

// Delta returns the row and column offsets for this direction
func (d Direction) Delta() (rowDelta, colDelta int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 0
	}
}

// Position is a (row, col) coordinate on the grid
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Step returns the position one tile away in the given direction
func (p Position) Step(dir Direction) Position {
	dr, dc := dir.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Neighbors returns the four orthogonal neighbours in AllDirections order.
// Positions may fall outside any grid.
func (p Position) Neighbors() []Position {
	dirs := AllDirections()
	out := make([]Position, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, p.Step(d))
	}
	return out
}
