package game

import (
	"fmt"
	"strings"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

const (
	emptySymbol    = "·"
	mountainSymbol = "▲"
	waterSymbol    = "≈"
	campSymbol     = "⌂"
	castleSymbol   = "♜"
)

var teamColors = map[core.Team]string{
	core.TeamPlayer:    ColorBlue,
	core.TeamEnemy:     ColorPurple,
	core.TeamBarbarian: ColorYellow,
}

var classLetters = map[core.Class]byte{
	core.ClassMelee:  'M',
	core.ClassRanged: 'R',
	core.ClassMage:   'W',
	core.ClassGuard:  'G',
	core.ClassScout:  'S',
}

// Board returns a colored text rendering of the current state
func (e *Engine) Board() string {
	return RenderState(e.state)
}

// RenderState draws s with one two-character cell per tile. Units that were
// hit this turn are drawn in red.
func RenderState(s *core.State) string {
	b := s.Board

	var sb strings.Builder
	sb.Grow((b.W*16 + 8) * (b.H + 3))

	sb.WriteString("   ")
	for x := 0; x < b.W; x++ {
		fmt.Fprintf(&sb, "%2d", x%100)
	}
	sb.WriteString("\n")

	for y := 0; y < b.H; y++ {
		fmt.Fprintf(&sb, "%2d ", y%100)
		for x := 0; x < b.W; x++ {
			writeCell(&sb, s, core.Coordinate{X: x, Y: y})
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(emptySymbol + "=plain " + mountainSymbol + "=mountain " + waterSymbol + "=water ")
	sb.WriteString(campSymbol + "=camp " + castleSymbol + "=castle\n")
	sb.WriteString(ColorBlue + "player" + ColorReset + " " + ColorPurple + "enemy" + ColorReset + " ")
	sb.WriteString(ColorYellow + "barbarian" + ColorReset + " " + ColorRed + "hit" + ColorReset)
	sb.WriteString("  M=melee R=ranged W=mage G=guard S=scout\n")
	return sb.String()
}

func writeCell(sb *strings.Builder, s *core.State, c core.Coordinate) {
	t := s.Board.GetTile(c)

	if u := s.UnitAt(c); u != nil {
		color := teamColors[u.Team]
		if u.Hit {
			color = ColorRed
		}
		sb.WriteString(color)
		sb.WriteString(" ")
		sb.WriteByte(classLetters[u.Class])
		sb.WriteString(ColorReset)
		return
	}

	switch {
	case t.Structure == core.StructurePlayerCastle:
		sb.WriteString(ColorBlue + " " + castleSymbol)
	case t.Structure == core.StructureEnemyCastle:
		sb.WriteString(ColorPurple + " " + castleSymbol)
	case t.IsCamp():
		sb.WriteString(ColorGreen + " " + campSymbol)
	case !t.Traversable && t.AttackThrough:
		sb.WriteString(ColorCyan + " " + waterSymbol)
	case !t.Traversable:
		sb.WriteString(ColorGray + " " + mountainSymbol)
	default:
		sb.WriteString(ColorGray + " " + emptySymbol)
	}
	sb.WriteString(ColorReset)
}
