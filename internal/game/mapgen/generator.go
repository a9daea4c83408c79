package mapgen

import (
	"math/rand"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width             int
	Height            int
	CampCount         int
	MountainRatio     int // 1 mountain per N tiles
	WaterRatio        int // 1 water tile per N tiles
	EnemyUnits        int
	PlayerUnits       int
	BarbariansPerCamp int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h int) MapConfig {
	return MapConfig{
		Width:             w,
		Height:            h,
		CampCount:         2,
		MountainRatio:     12,
		WaterRatio:        25,
		EnemyUnits:        6,
		PlayerUnits:       6,
		BarbariansPerCamp: 2,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a map with castles in opposite corners, camps in between,
// scattered terrain and starting armies. The enemy castle sits bottom-left so the
// conversion spawn point up and to its right stays on the map.
func (g *Generator) GenerateMap() *Map {
	b := core.NewBoard(g.config.Width, g.config.Height)
	obj := core.Objectives{
		PlayerCastle: core.Coordinate{X: b.W - 2, Y: 1},
		EnemyCastle:  core.Coordinate{X: 1, Y: b.H - 2},
	}
	b.GetTile(obj.PlayerCastle).Structure = core.StructurePlayerCastle
	b.GetTile(obj.EnemyCastle).Structure = core.StructureEnemyCastle

	obj.Camps = g.placeCamps(b)
	g.placeTerrain(b, g.config.MountainRatio, false)
	g.placeTerrain(b, g.config.WaterRatio, true)

	m := &Map{Board: b, Objectives: obj}
	m.Units = append(m.Units, g.placeArmy(b, core.TeamEnemy, obj.EnemyCastle, g.config.EnemyUnits, m.Units)...)
	m.Units = append(m.Units, g.placeArmy(b, core.TeamPlayer, obj.PlayerCastle, g.config.PlayerUnits, m.Units)...)
	for _, camp := range obj.Camps {
		m.Units = append(m.Units, g.placeBarbarians(camp, m.Units)...)
	}
	return m
}

// reserved reports whether a tile must stay plain: structures and the ring around castles
func reserved(b *core.Board, c core.Coordinate) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			t := b.GetTile(core.Coordinate{X: c.X + dx, Y: c.Y + dy})
			if t != nil && t.IsCastle() {
				return true
			}
		}
	}
	return b.GetTile(c).Structure != core.StructureNone
}

func (g *Generator) placeCamps(b *core.Board) []core.Coordinate {
	var camps []core.Coordinate
	maxAttempts := g.config.CampCount * 20
	for attempts := 0; len(camps) < g.config.CampCount && attempts < maxAttempts; attempts++ {
		if b.W < 4 || b.H < 4 {
			break
		}
		anchor := core.Coordinate{X: 1 + g.rng.Intn(b.W-3), Y: 1 + g.rng.Intn(b.H-3)}
		ok := true
		for _, c := range core.CampFootprint(anchor) {
			if reserved(b, c) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, c := range core.CampFootprint(anchor) {
			b.GetTile(c).Structure = core.StructureCamp
		}
		camps = append(camps, anchor)
	}
	return camps
}

func (g *Generator) placeTerrain(b *core.Board, ratio int, water bool) {
	if ratio <= 0 {
		return
	}
	want := (b.W * b.H) / ratio
	maxAttempts := want * 10
	for placed, attempts := 0, 0; placed < want && attempts < maxAttempts; attempts++ {
		c := core.Coordinate{X: g.rng.Intn(b.W), Y: g.rng.Intn(b.H)}
		t := b.GetTile(c)
		if !t.Traversable || reserved(b, c) {
			continue
		}
		t.Traversable = false
		t.AttackThrough = water
		placed++
	}
}

func occupied(units []*core.Unit, c core.Coordinate) bool {
	for _, u := range units {
		if u.Pos == c {
			return true
		}
	}
	return false
}

// placeArmy spirals outward from the castle filling free plain tiles
func (g *Generator) placeArmy(b *core.Board, team core.Team, castle core.Coordinate, n int, existing []*core.Unit) []*core.Unit {
	classes := []core.Class{core.ClassMelee, core.ClassRanged, core.ClassMage}
	var out []*core.Unit
	for _, c := range core.MovementRange(b, castle, b.W+b.H) {
		if len(out) >= n {
			break
		}
		if c == castle || occupied(existing, c) || b.GetTile(c).Structure != core.StructureNone {
			continue
		}
		u, _ := core.NewUnit(team, classes[len(out)%len(classes)], c)
		out = append(out, u)
	}
	return out
}

func (g *Generator) placeBarbarians(camp core.Coordinate, existing []*core.Unit) []*core.Unit {
	var out []*core.Unit
	for i, c := range core.CampFootprint(camp) {
		if i >= g.config.BarbariansPerCamp {
			break
		}
		if occupied(existing, c) {
			continue
		}
		class := core.ClassGuard
		if g.rng.Intn(2) == 0 {
			class = core.ClassScout
		}
		u, _ := core.NewUnit(core.TeamBarbarian, class, c)
		out = append(out, u)
	}
	return out
}
