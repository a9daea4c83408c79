package core

import "strconv"

// Coordinate is a tile position; X grows east and Y grows south
type Coordinate struct {
	X, Y int
}

// steps are the four orthogonal moves a unit can make, clockwise from north
var steps = [4]Coordinate{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// FromIndex is the inverse of ToIndex for a board width w
func FromIndex(idx, w int) Coordinate {
	return Coordinate{X: idx % w, Y: idx / w}
}

// ToIndex flattens c row by row into a board of width w
func (c Coordinate) ToIndex(w int) int {
	return c.Y*w + c.X
}

// IsValid reports whether c lies on a w by h board
func (c Coordinate) IsValid(w, h int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < w && c.Y < h
}

// DistanceTo is the taxicab distance to o, ignoring terrain
func (c Coordinate) DistanceTo(o Coordinate) int {
	dx, dy := c.X-o.X, c.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

// ValidNeighbors returns the orthogonal neighbors of c that are on a w by h board
func (c Coordinate) ValidNeighbors(w, h int) []Coordinate {
	out := make([]Coordinate, 0, len(steps))
	for _, s := range steps {
		if n := c.Add(s); n.IsValid(w, h) {
			out = append(out, n)
		}
	}
	return out
}

func (c Coordinate) String() string {
	return "(" + strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y) + ")"
}
