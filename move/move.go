// Package move describes the five kinds of FreeCell moves. A Move is a small
// value; it carries only indices and never the cards themselves, so it is
// only meaningful against the state it was generated from.
package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MoveType is the kind of move.
type MoveType uint8

const (
	MoveTypeColToFoundation MoveType = iota
	MoveTypeFreeCellToFoundation
	MoveTypeColToCol
	MoveTypeColToFreeCell
	MoveTypeFreeCellToCol
)

var ErrInvalidMove = errors.New("invalid move")

var typeNames = map[MoveType]string{
	MoveTypeColToFoundation:      "col_to_found",
	MoveTypeFreeCellToFoundation: "free_to_found",
	MoveTypeColToCol:             "col_to_col",
	MoveTypeColToFreeCell:        "col_to_free",
	MoveTypeFreeCellToCol:        "free_to_col",
}

// number of integer arguments each move type takes in its text form.
var typeArity = map[MoveType]int{
	MoveTypeColToFoundation:      1,
	MoveTypeFreeCellToFoundation: 1,
	MoveTypeColToCol:             3,
	MoveTypeColToFreeCell:        2,
	MoveTypeFreeCellToCol:        2,
}

func (t MoveType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// Move is a fully parameterized move descriptor.
type Move struct {
	action MoveType
	src    uint8
	dst    uint8
	// count is the number of cards moved; it is only above 1 for col_to_col.
	count uint8
}

func NewColToFoundation(col int) Move {
	return Move{action: MoveTypeColToFoundation, src: uint8(col), count: 1}
}

func NewFreeCellToFoundation(cell int) Move {
	return Move{action: MoveTypeFreeCellToFoundation, src: uint8(cell), count: 1}
}

// NewColToCol moves the top n cards of column src onto column dst.
func NewColToCol(src, dst, n int) Move {
	return Move{action: MoveTypeColToCol, src: uint8(src), dst: uint8(dst), count: uint8(n)}
}

func NewColToFreeCell(col, cell int) Move {
	return Move{action: MoveTypeColToFreeCell, src: uint8(col), dst: uint8(cell), count: 1}
}

func NewFreeCellToCol(cell, col int) Move {
	return Move{action: MoveTypeFreeCellToCol, src: uint8(cell), dst: uint8(col), count: 1}
}

func (m Move) Action() MoveType { return m.action }

// Src is the source column or free cell index.
func (m Move) Src() int { return int(m.src) }

// Dst is the destination column or free cell index. It is unused (0) for
// moves to a foundation, since the suit picks the foundation.
func (m Move) Dst() int { return int(m.dst) }

// Count is the number of cards moved.
func (m Move) Count() int { return int(m.count) }

func (m Move) FromColumn() bool {
	return m.action == MoveTypeColToFoundation || m.action == MoveTypeColToCol ||
		m.action == MoveTypeColToFreeCell
}

func (m Move) ToFoundation() bool {
	return m.action == MoveTypeColToFoundation || m.action == MoveTypeFreeCellToFoundation
}

// String gives the canonical text form, which Parse reads back.
func (m Move) String() string {
	switch m.action {
	case MoveTypeColToFoundation, MoveTypeFreeCellToFoundation:
		return fmt.Sprintf("%s(%d)", m.action, m.src)
	case MoveTypeColToCol:
		return fmt.Sprintf("%s(%d,%d,%d)", m.action, m.src, m.dst, m.count)
	case MoveTypeColToFreeCell, MoveTypeFreeCellToCol:
		return fmt.Sprintf("%s(%d,%d)", m.action, m.src, m.dst)
	}
	return "<unhandled move>"
}

// ShortDescription is for user display.
func (m Move) ShortDescription() string {
	switch m.action {
	case MoveTypeColToFoundation:
		return fmt.Sprintf("column %d -> foundation", m.src+1)
	case MoveTypeFreeCellToFoundation:
		return fmt.Sprintf("freecell %d -> foundation", m.src+1)
	case MoveTypeColToCol:
		if m.count == 1 {
			return fmt.Sprintf("column %d -> column %d", m.src+1, m.dst+1)
		}
		return fmt.Sprintf("column %d -> column %d (%d cards)", m.src+1, m.dst+1, m.count)
	case MoveTypeColToFreeCell:
		return fmt.Sprintf("column %d -> freecell %d", m.src+1, m.dst+1)
	case MoveTypeFreeCellToCol:
		return fmt.Sprintf("freecell %d -> column %d", m.src+1, m.dst+1)
	}
	return "UNHANDLED"
}

var reMove *regexp.Regexp

func init() {
	reMove = regexp.MustCompile(`^(?P<type>[a-z_]+)\((?P<args>[0-9,\s]*)\)$`)
}

// Parse reads the text form produced by String.
func Parse(s string) (Move, error) {
	match := reMove.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return Move{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidMove, s)
	}
	var mt MoveType
	found := false
	for t, name := range typeNames {
		if name == match[1] {
			mt = t
			found = true
			break
		}
	}
	if !found {
		return Move{}, fmt.Errorf("%w: unknown move type %q", ErrInvalidMove, match[1])
	}
	var args []int
	if strings.TrimSpace(match[2]) != "" {
		for _, a := range strings.Split(match[2], ",") {
			n, err := strconv.Atoi(strings.TrimSpace(a))
			if err != nil {
				return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
			}
			if n < 0 || n > 255 {
				return Move{}, fmt.Errorf("%w: argument %d out of range", ErrInvalidMove, n)
			}
			args = append(args, n)
		}
	}
	if len(args) != typeArity[mt] {
		return Move{}, fmt.Errorf("%w: %s takes %d arguments, got %d",
			ErrInvalidMove, mt, typeArity[mt], len(args))
	}
	switch mt {
	case MoveTypeColToFoundation:
		return NewColToFoundation(args[0]), nil
	case MoveTypeFreeCellToFoundation:
		return NewFreeCellToFoundation(args[0]), nil
	case MoveTypeColToCol:
		if args[2] == 0 {
			return Move{}, fmt.Errorf("%w: col_to_col must move at least one card", ErrInvalidMove)
		}
		return NewColToCol(args[0], args[1], args[2]), nil
	case MoveTypeColToFreeCell:
		return NewColToFreeCell(args[0], args[1]), nil
	default:
		return NewFreeCellToCol(args[0], args[1]), nil
	}
}

func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ListString joins moves with spaces.
func ListString(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// ParseList reads moves written by ListString.
func ParseList(s string) ([]Move, error) {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))
	for _, f := range fields {
		m, err := Parse(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
