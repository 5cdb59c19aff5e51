package kernel

// Direction is one of the five one-step moves on the grid. The declaration
// order (North, East, South, West, Stay) doubles as the variant order of
// direction-aware kernel generators and must not change.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	Stay
)

// Directions lists all directions in variant order.
var Directions = []Direction{North, East, South, West, Stay}

// Offset returns the grid offset of the direction. Y grows south, so North
// is (0, -1).
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "stay"
	}
}
