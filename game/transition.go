package game

import (
	"fmt"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/move"
)

// ValidateMove checks that m is legal in this position.
func (s *State) ValidateMove(m move.Move) error {
	switch m.Action() {
	case move.MoveTypeColToFoundation:
		if err := s.checkColumn(m.Src(), true); err != nil {
			return err
		}
		if c := s.Top(m.Src()); !s.CanMoveToFoundation(c) {
			return fmt.Errorf("%w: %v cannot go to its foundation", move.ErrInvalidMove, c)
		}
	case move.MoveTypeFreeCellToFoundation:
		if err := s.checkFreeCell(m.Src(), true); err != nil {
			return err
		}
		if c := s.freecells[m.Src()]; !s.CanMoveToFoundation(c) {
			return fmt.Errorf("%w: %v cannot go to its foundation", move.ErrInvalidMove, c)
		}
	case move.MoveTypeColToCol:
		return s.validateColToCol(m)
	case move.MoveTypeColToFreeCell:
		if err := s.checkColumn(m.Src(), true); err != nil {
			return err
		}
		if err := s.checkFreeCell(m.Dst(), false); err != nil {
			return err
		}
	case move.MoveTypeFreeCellToCol:
		if err := s.checkFreeCell(m.Src(), true); err != nil {
			return err
		}
		if err := s.checkColumn(m.Dst(), false); err != nil {
			return err
		}
		c := s.freecells[m.Src()]
		if len(s.columns[m.Dst()]) > 0 && !CanStackOn(s.Top(m.Dst()), c) {
			return fmt.Errorf("%w: %v does not stack on %v", move.ErrInvalidMove, c, s.Top(m.Dst()))
		}
	default:
		return fmt.Errorf("%w: unknown move type %d", move.ErrInvalidMove, m.Action())
	}
	return nil
}

func (s *State) validateColToCol(m move.Move) error {
	src, dst, n := m.Src(), m.Dst(), m.Count()
	if err := s.checkColumn(src, true); err != nil {
		return err
	}
	if err := s.checkColumn(dst, false); err != nil {
		return err
	}
	if src == dst {
		return fmt.Errorf("%w: source and destination are both column %d", move.ErrInvalidMove, src)
	}
	col := s.columns[src]
	if n < 1 || n > len(col) {
		return fmt.Errorf("%w: cannot move %d cards from a column of %d", move.ErrInvalidMove, n, len(col))
	}
	if n > s.MaxMovableSequence() {
		return fmt.Errorf("%w: %d cards exceed the supermove limit of %d", move.ErrInvalidMove,
			n, s.MaxMovableSequence())
	}
	moving := col[len(col)-n:]
	for i := 1; i < len(moving); i++ {
		if !CanStackOn(moving[i-1], moving[i]) {
			return fmt.Errorf("%w: cards %v %v are not in sequence", move.ErrInvalidMove,
				moving[i-1], moving[i])
		}
	}
	if len(s.columns[dst]) > 0 && !CanStackOn(s.Top(dst), moving[0]) {
		return fmt.Errorf("%w: %v does not stack on %v", move.ErrInvalidMove, moving[0], s.Top(dst))
	}
	return nil
}

func (s *State) checkColumn(i int, mustHaveCards bool) error {
	if i < 0 || i >= NumColumns {
		return fmt.Errorf("%w: no column %d", move.ErrInvalidMove, i)
	}
	if mustHaveCards && len(s.columns[i]) == 0 {
		return fmt.Errorf("%w: column %d is empty", move.ErrInvalidMove, i)
	}
	return nil
}

func (s *State) checkFreeCell(i int, mustHaveCard bool) error {
	if i < 0 || i >= NumFreeCells {
		return fmt.Errorf("%w: no free cell %d", move.ErrInvalidMove, i)
	}
	occupied := !s.freecells[i].IsZero()
	if mustHaveCard && !occupied {
		return fmt.Errorf("%w: free cell %d is empty", move.ErrInvalidMove, i)
	}
	if !mustHaveCard && occupied {
		return fmt.Errorf("%w: free cell %d is taken", move.ErrInvalidMove, i)
	}
	return nil
}

// PlayMove returns the state reached by playing m. The receiver is not
// modified. m must be legal in this state (as every move returned by the
// move generator is); an illegal move is a programming error and panics with
// an error wrapping ErrInvariantViolation.
func (s *State) PlayMove(m move.Move) *State {
	if err := s.ValidateMove(m); err != nil {
		panic(fmt.Errorf("%w: playing %v: %v", ErrInvariantViolation, m, err))
	}
	child := *s
	switch m.Action() {
	case move.MoveTypeColToFoundation:
		c := child.pop(m.Src(), 1)[0]
		child.foundations[c.Suit] = c.Rank
	case move.MoveTypeFreeCellToFoundation:
		c := child.freecells[m.Src()]
		child.freecells[m.Src()] = card.Card{}
		child.foundations[c.Suit] = c.Rank
	case move.MoveTypeColToCol:
		moving := child.pop(m.Src(), m.Count())
		child.push(m.Dst(), moving...)
	case move.MoveTypeColToFreeCell:
		child.freecells[m.Dst()] = child.pop(m.Src(), 1)[0]
	case move.MoveTypeFreeCellToCol:
		c := child.freecells[m.Src()]
		child.freecells[m.Src()] = card.Card{}
		child.push(m.Dst(), c)
	}
	return &child
}

// pop removes the top n cards of a column and returns them in order. The
// remaining column keeps sharing its backing array, capped so that no later
// append can write into it.
func (s *State) pop(col, n int) []card.Card {
	c := s.columns[col]
	keep := len(c) - n
	s.columns[col] = c[:keep:keep]
	return c[keep:]
}

// push appends cards to a column, always into a fresh backing array.
func (s *State) push(col int, cards ...card.Card) {
	c := s.columns[col]
	out := make([]card.Card, len(c)+len(cards))
	copy(out, c)
	copy(out[len(c):], cards)
	s.columns[col] = out
}

// Replay validates and plays a sequence of moves from s, returning the final
// state. Unlike PlayMove it reports an illegal move as an error.
func Replay(s *State, moves []move.Move) (*State, error) {
	cur := s
	for i, m := range moves {
		if err := cur.ValidateMove(m); err != nil {
			return nil, fmt.Errorf("move %d (%v): %w", i+1, m, err)
		}
		cur = cur.PlayMove(m)
	}
	return cur, nil
}
