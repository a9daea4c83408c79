package core

import "fmt"

// Objectives are the strategic tiles of a map. Camp order is fixed for a game
// so camp indices line up with the distance oracle.
type Objectives struct {
	PlayerCastle Coordinate
	EnemyCastle  Coordinate
	Camps        []Coordinate
}

// CampFootprint returns the four tiles of the 2x2 camp anchored at c
func CampFootprint(c Coordinate) [4]Coordinate {
	return [4]Coordinate{
		c,
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X + 1, Y: c.Y + 1},
	}
}

// State is the mutable board handed to the AI for one turn
type State struct {
	Board      *Board
	Players    *Roster
	Enemies    *Roster
	Barbarians *Roster
	Objectives Objectives
}

func NewState(b *Board, obj Objectives) *State {
	return &State{
		Board:      b,
		Players:    NewRoster(),
		Enemies:    NewRoster(),
		Barbarians: NewRoster(),
		Objectives: obj,
	}
}

// Roster returns the collection for team, nil for TeamNone
func (s *State) Roster(team Team) *Roster {
	switch team {
	case TeamPlayer:
		return s.Players
	case TeamEnemy:
		return s.Enemies
	case TeamBarbarian:
		return s.Barbarians
	}
	return nil
}

// UnitAt finds whichever unit stands at c using the tile's team tag
func (s *State) UnitAt(c Coordinate) *Unit {
	r := s.Roster(s.Board.TeamAt(c))
	if r == nil {
		return nil
	}
	return r.At(c)
}

// Place inserts u into its roster and tags its tile
func (s *State) Place(u *Unit) error {
	tile := s.Board.GetTile(u.Pos)
	if tile == nil {
		return fmt.Errorf("place %s unit at %s: %w", u.Team, u.Pos, ErrInvalidCoordinates)
	}
	if tile.IsOccupied() {
		return fmt.Errorf("place %s unit at %s: %w", u.Team, u.Pos, ErrTileOccupied)
	}
	r := s.Roster(u.Team)
	if r == nil {
		return ErrUnknownTeam
	}
	if err := r.Add(u); err != nil {
		return fmt.Errorf("place %s unit at %s: %w", u.Team, u.Pos, err)
	}
	tile.Team = u.Team
	return nil
}

// Relocate moves the unit at from to to, updating the roster and both tiles together
func (s *State) Relocate(team Team, from, to Coordinate) error {
	if from == to {
		return nil
	}
	if !s.Board.InBounds(to) {
		return fmt.Errorf("move %s to %s: %w", from, to, ErrInvalidCoordinates)
	}
	if s.Board.TeamAt(to) != TeamNone {
		return fmt.Errorf("move %s to %s: %w", from, to, ErrTileOccupied)
	}
	r := s.Roster(team)
	if r == nil {
		return ErrUnknownTeam
	}
	if err := r.Move(from, to); err != nil {
		return fmt.Errorf("move %s to %s: %w", from, to, err)
	}
	s.Board.SetTeam(from, TeamNone)
	s.Board.SetTeam(to, team)
	return nil
}

// Remove takes the unit at c off the board and clears its tile
func (s *State) Remove(c Coordinate) *Unit {
	r := s.Roster(s.Board.TeamAt(c))
	if r == nil {
		return nil
	}
	u := r.Remove(c)
	s.Board.SetTeam(c, TeamNone)
	return u
}

// Validate checks that every tagged tile has exactly one matching unit and vice versa
func (s *State) Validate() error {
	tagged := 0
	for idx := range s.Board.T {
		team := s.Board.T[idx].Team
		if team == TeamNone {
			continue
		}
		tagged++
		c := FromIndex(idx, s.Board.W)
		r := s.Roster(team)
		if r == nil || r.At(c) == nil {
			return fmt.Errorf("tile %s tagged %s has no unit", c, team)
		}
	}
	units := 0
	for _, team := range []Team{TeamPlayer, TeamEnemy, TeamBarbarian} {
		for _, u := range s.Roster(team).Snapshot() {
			units++
			if s.Board.TeamAt(u.Pos) != team {
				return fmt.Errorf("%s unit at %s not tagged on tile", team, u.Pos)
			}
			if u.HP <= 0 {
				return fmt.Errorf("%s unit at %s has hp %d", team, u.Pos, u.HP)
			}
		}
	}
	if units != tagged {
		return fmt.Errorf("%d units but %d tagged tiles", units, tagged)
	}
	return nil
}
