package distance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// Section headers of the distance file
const (
	headerPlayerCastle = "p1_castle"
	headerEnemyCastle  = "enemy_castle"
	headerCamps        = "barb_camps"
	sectionEnd         = "end"
	campMarker         = "#"
)

var (
	ErrMalformedLine   = errors.New("malformed line")
	ErrUnknownSection  = errors.New("unknown section header")
	ErrUnterminated    = errors.New("section not terminated")
	ErrCampHeader      = errors.New("camp header outside barb_camps")
	ErrMissingCampName = errors.New("camp entry before any camp header")
)

// ParseError reports the line a distance file failed on
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("distance file line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func sortedCoords(t Table) []core.Coordinate {
	out := make([]core.Coordinate, 0, len(t))
	for c := range t {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func writeTable(w *bufio.Writer, t Table) {
	for _, c := range sortedCoords(t) {
		fmt.Fprintf(w, "%d %d %d\n", c.X, c.Y, t[c])
	}
}

// Write serializes the oracle in the distance file format
func Write(w io.Writer, o *Oracle) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, headerPlayerCastle)
	writeTable(bw, o.PlayerCastle)
	fmt.Fprintf(bw, "%s\n\n", sectionEnd)

	fmt.Fprintln(bw, headerEnemyCastle)
	writeTable(bw, o.EnemyCastle)
	fmt.Fprintf(bw, "%s\n\n", sectionEnd)

	fmt.Fprintln(bw, headerCamps)
	for _, camp := range o.campOrder {
		fmt.Fprintf(bw, "%s %d %d\n", campMarker, camp.X, camp.Y)
		writeTable(bw, o.Camps[camp])
	}
	fmt.Fprintln(bw, sectionEnd)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write distance file: %w", err)
	}
	return nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// Read parses a distance file, routing each body line into the table of the
// section (or camp) currently open.
func Read(r io.Reader) (*Oracle, error) {
	o := New()
	sc := bufio.NewScanner(r)

	var (
		active  Table
		section string
		lineNo  int
	)
	fail := func(text string, err error) error {
		return &ParseError{Line: lineNo, Text: text, Err: err}
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if section == "" {
			switch line {
			case "":
			case headerPlayerCastle:
				section, active = line, o.PlayerCastle
			case headerEnemyCastle:
				section, active = line, o.EnemyCastle
			case headerCamps:
				section, active = line, nil
			default:
				return nil, fail(line, ErrUnknownSection)
			}
			continue
		}

		fields := strings.Fields(line)
		switch {
		case line == sectionEnd:
			section, active = "", nil
		case len(fields) == 0:
		case fields[0] == campMarker:
			if section != headerCamps {
				return nil, fail(line, ErrCampHeader)
			}
			nums, err := parseInts(fields[1:])
			if err != nil || len(nums) != 2 {
				return nil, fail(line, ErrMalformedLine)
			}
			active = o.Camp(core.Coordinate{X: nums[0], Y: nums[1]})
		default:
			nums, err := parseInts(fields)
			if err != nil || len(nums) != 3 {
				return nil, fail(line, ErrMalformedLine)
			}
			if active == nil {
				return nil, fail(line, ErrMissingCampName)
			}
			active[core.Coordinate{X: nums[0], Y: nums[1]}] = nums[2]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read distance file: %w", err)
	}
	if section != "" {
		return nil, &ParseError{Line: lineNo, Text: section, Err: ErrUnterminated}
	}
	return o, nil
}
