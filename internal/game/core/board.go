package core

// Team tags a unit and the tile it stands on. TeamNone marks an empty tile.
type Team int

const (
	TeamNone Team = iota
	TeamPlayer
	TeamEnemy
	TeamBarbarian
)

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	case TeamBarbarian:
		return "barbarian"
	default:
		return "none"
	}
}

// ParseTeam maps a team name back to its tag
func ParseTeam(s string) (Team, error) {
	switch s {
	case "player":
		return TeamPlayer, nil
	case "enemy":
		return TeamEnemy, nil
	case "barbarian":
		return TeamBarbarian, nil
	}
	return TeamNone, ErrUnknownTeam
}

// Structure is the optional building on a tile
type Structure int

const (
	StructureNone Structure = iota
	StructureCamp
	StructurePlayerCastle
	StructureEnemyCastle
)

// Tile represents a single cell on the map.
// Team is the only field that changes during a turn.
type Tile struct {
	Traversable   bool
	AttackThrough bool
	Team          Team
	Structure     Structure
}

func (t *Tile) IsOccupied() bool { return t.Team != TeamNone }
func (t *Tile) IsCastle() bool {
	return t.Structure == StructurePlayerCastle || t.Structure == StructureEnemyCastle
}
func (t *Tile) IsCamp() bool { return t.Structure == StructureCamp }

// CanEnter reports whether a unit may step onto this tile right now
func (t *Tile) CanEnter() bool { return t.Traversable && !t.IsOccupied() }

type Board struct {
	W, H int
	T    []Tile // length = W*H (row‑major)
}

// NewBoard returns a board of open plain tiles
func NewBoard(w, h int) *Board {
	b := &Board{W: w, H: h, T: make([]Tile, w*h)}
	for i := range b.T {
		b.T[i].Traversable = true
		b.T[i].AttackThrough = true
	}
	return b
}

func (b *Board) Idx(x, y int) int      { return y*b.W + x }
func (b *Board) XY(idx int) (int, int) { return idx % b.W, idx / b.W }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(c Coordinate) bool {
	return c.IsValid(b.W, b.H)
}

// GetTile safely returns a tile pointer if coordinates are valid, nil otherwise
func (b *Board) GetTile(c Coordinate) *Tile {
	if !b.InBounds(c) {
		return nil
	}
	return &b.T[c.ToIndex(b.W)]
}

// TeamAt returns the team tag at c, TeamNone when out of bounds
func (b *Board) TeamAt(c Coordinate) Team {
	if t := b.GetTile(c); t != nil {
		return t.Team
	}
	return TeamNone
}

// SetTeam overwrites the team tag at c
func (b *Board) SetTeam(c Coordinate, team Team) {
	if t := b.GetTile(c); t != nil {
		t.Team = team
	}
}

// Clone deep-copies the grid
func (b *Board) Clone() *Board {
	nb := &Board{W: b.W, H: b.H, T: make([]Tile, len(b.T))}
	copy(nb.T, b.T)
	return nb
}
