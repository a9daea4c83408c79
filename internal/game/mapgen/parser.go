package mapgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// Tile glyphs of the map text format
const (
	GlyphPlain        = '.'
	GlyphMountain     = '#'
	GlyphWater        = '~'
	GlyphPlayerCastle = 'P'
	GlyphEnemyCastle  = 'E'
	GlyphCamp         = 'C'
	GlyphCampFill     = 'c'
)

var (
	ErrEmptyMap        = errors.New("map has no rows")
	ErrRaggedRow       = errors.New("row width differs from first row")
	ErrUnknownGlyph    = errors.New("unknown tile glyph")
	ErrCastleCount     = errors.New("map needs exactly one player castle and one enemy castle")
	ErrCampOutOfBounds = errors.New("camp footprint leaves the map")
	ErrCampOverlap     = errors.New("camp footprint covers a non-plain tile")
	ErrMalformedUnit   = errors.New("malformed unit line")
)

// ParseError reports the line a map file failed on
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("map line %d: %v", e.Line, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Map is a parsed map: terrain, objectives and starting units
type Map struct {
	Board      *core.Board
	Objectives core.Objectives
	Units      []*core.Unit
}

// NewState places the starting units onto a fresh copy of the board
func (m *Map) NewState() (*core.State, error) {
	obj := m.Objectives
	obj.Camps = append([]core.Coordinate(nil), m.Objectives.Camps...)
	s := core.NewState(m.Board.Clone(), obj)
	for _, u := range m.Units {
		cp := *u
		if err := s.Place(&cp); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func terrain(t *core.Tile, glyph rune) error {
	switch glyph {
	case GlyphPlain, GlyphCampFill:
		t.Traversable, t.AttackThrough = true, true
	case GlyphMountain:
		t.Traversable, t.AttackThrough = false, false
	case GlyphWater:
		t.Traversable, t.AttackThrough = false, true
	case GlyphPlayerCastle:
		t.Traversable, t.AttackThrough = true, true
		t.Structure = core.StructurePlayerCastle
	case GlyphEnemyCastle:
		t.Traversable, t.AttackThrough = true, true
		t.Structure = core.StructureEnemyCastle
	case GlyphCamp:
		t.Traversable, t.AttackThrough = true, true
	default:
		return ErrUnknownGlyph
	}
	return nil
}

// Parse reads the map text format: a glyph grid, a blank line, then one
// "<team> <class> <x> <y>" line per unit. Lines starting with ';' are comments.
func Parse(r io.Reader) (*Map, error) {
	sc := bufio.NewScanner(r)
	var (
		rows     []string
		rowLines []int
		unitLine []string
		unitNos  []int
		lineNo   int
		inUnits  bool
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasPrefix(line, ";") {
			continue
		}
		if line == "" {
			if len(rows) > 0 {
				inUnits = true
			}
			continue
		}
		if inUnits {
			unitLine = append(unitLine, line)
			unitNos = append(unitNos, lineNo)
			continue
		}
		rows = append(rows, line)
		rowLines = append(rowLines, lineNo)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}

	w, h := len([]rune(rows[0])), len(rows)
	b := core.NewBoard(w, h)
	var (
		obj              core.Objectives
		players, enemies int
	)
	for y, row := range rows {
		glyphs := []rune(row)
		if len(glyphs) != w {
			return nil, &ParseError{Line: rowLines[y], Err: ErrRaggedRow}
		}
		for x, g := range glyphs {
			c := core.Coordinate{X: x, Y: y}
			if err := terrain(b.GetTile(c), g); err != nil {
				return nil, &ParseError{Line: rowLines[y], Err: fmt.Errorf("%w %q", err, g)}
			}
			switch g {
			case GlyphPlayerCastle:
				obj.PlayerCastle = c
				players++
			case GlyphEnemyCastle:
				obj.EnemyCastle = c
				enemies++
			case GlyphCamp:
				obj.Camps = append(obj.Camps, c)
			}
		}
	}
	if players != 1 || enemies != 1 {
		return nil, ErrCastleCount
	}
	for _, camp := range obj.Camps {
		for _, fc := range core.CampFootprint(camp) {
			t := b.GetTile(fc)
			if t == nil {
				return nil, fmt.Errorf("camp at %s: %w", camp, ErrCampOutOfBounds)
			}
			switch g := []rune(rows[fc.Y])[fc.X]; g {
			case GlyphPlain, GlyphCamp, GlyphCampFill:
			default:
				return nil, &ParseError{Line: rowLines[fc.Y], Err: fmt.Errorf("camp at %s: %w %q at %s", camp, ErrCampOverlap, g, fc)}
			}
			t.Structure = core.StructureCamp
		}
	}

	m := &Map{Board: b, Objectives: obj}
	for i, line := range unitLine {
		u, err := parseUnit(line)
		if err != nil {
			return nil, &ParseError{Line: unitNos[i], Err: err}
		}
		m.Units = append(m.Units, u)
	}
	return m, nil
}

func parseUnit(line string) (*core.Unit, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return nil, ErrMalformedUnit
	}
	team, err := core.ParseTeam(fields[0])
	if err != nil {
		return nil, err
	}
	class, err := core.ParseClass(fields[1])
	if err != nil {
		return nil, err
	}
	x, errX := strconv.Atoi(fields[2])
	y, errY := strconv.Atoi(fields[3])
	if errX != nil || errY != nil {
		return nil, ErrMalformedUnit
	}
	return core.NewUnit(team, class, core.Coordinate{X: x, Y: y})
}

// LoadFile parses the map stored at path
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Format renders the map back into the text format
func Format(m *Map) string {
	var sb strings.Builder
	anchors := make(map[core.Coordinate]bool, len(m.Objectives.Camps))
	for _, c := range m.Objectives.Camps {
		anchors[c] = true
	}
	for y := 0; y < m.Board.H; y++ {
		for x := 0; x < m.Board.W; x++ {
			c := core.Coordinate{X: x, Y: y}
			t := m.Board.GetTile(c)
			switch {
			case anchors[c]:
				sb.WriteRune(GlyphCamp)
			case t.Structure == core.StructureCamp:
				sb.WriteRune(GlyphCampFill)
			case t.Structure == core.StructurePlayerCastle:
				sb.WriteRune(GlyphPlayerCastle)
			case t.Structure == core.StructureEnemyCastle:
				sb.WriteRune(GlyphEnemyCastle)
			case !t.Traversable && t.AttackThrough:
				sb.WriteRune(GlyphWater)
			case !t.Traversable:
				sb.WriteRune(GlyphMountain)
			default:
				sb.WriteRune(GlyphPlain)
			}
		}
		sb.WriteByte('\n')
	}
	if len(m.Units) > 0 {
		sb.WriteByte('\n')
		for _, u := range m.Units {
			fmt.Fprintf(&sb, "%s %s %d %d\n", u.Team, u.Class, u.Pos.X, u.Pos.Y)
		}
	}
	return sb.String()
}
