// Package game holds the FreeCell game state. A State is an immutable value:
// every transition returns a new State and leaves its parent untouched.
package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/freecell/card"
)

const (
	NumColumns   = 8
	NumFreeCells = 4
)

// DealColumnSizes is how a full 52-card deal is split across the columns,
// in dealing order.
var DealColumnSizes = [NumColumns]int{7, 7, 7, 7, 6, 6, 6, 6}

var (
	ErrInvalidDeal = errors.New("invalid deal")
	// ErrInvariantViolation marks programming errors. It is only ever used
	// as a panic value; nothing should recover from it.
	ErrInvariantViolation = errors.New("invariant violation")
)

// State is a FreeCell position: 8 tableau columns (top card last), 4 free
// cells (zero card = empty) and one foundation counter per suit.
//
// Column slices may be shared between a state and the states derived from
// it. They are never written to after construction.
type State struct {
	columns     [NumColumns][]card.Card
	freecells   [NumFreeCells]card.Card
	foundations [card.NumSuits]uint8
}

// NewFromDeal deals 52 cards into the columns in order: cards 0-6 go to
// column 0, 7-13 to column 1, and so on following DealColumnSizes.
func NewFromDeal(cards []card.Card) (*State, error) {
	if len(cards) != card.DeckSize {
		return nil, fmt.Errorf("%w: deal has %d cards, need %d", ErrInvalidDeal,
			len(cards), card.DeckSize)
	}
	s := &State{}
	idx := 0
	for col, size := range DealColumnSizes {
		s.columns[col] = append([]card.Card(nil), cards[idx:idx+size]...)
		idx += size
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromLayout builds an arbitrary position, for example a partially solved
// deal. Missing columns or free cells are empty; a nil foundations slice
// means all foundations are empty. The layout must account for all 52 cards.
func NewFromLayout(columns [][]card.Card, freecells []card.Card, foundations []uint8) (*State, error) {
	if len(columns) > NumColumns {
		return nil, fmt.Errorf("%w: %d columns, at most %d allowed", ErrInvalidDeal,
			len(columns), NumColumns)
	}
	if len(freecells) > NumFreeCells {
		return nil, fmt.Errorf("%w: %d free cells, at most %d allowed", ErrInvalidDeal,
			len(freecells), NumFreeCells)
	}
	if foundations != nil && len(foundations) != card.NumSuits {
		return nil, fmt.Errorf("%w: need %d foundations, got %d", ErrInvalidDeal,
			card.NumSuits, len(foundations))
	}
	s := &State{}
	for i, col := range columns {
		if len(col) > 0 {
			s.columns[i] = append([]card.Card(nil), col...)
		}
	}
	copy(s.freecells[:], freecells)
	copy(s.foundations[:], foundations)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the conservation law: every card of the deck is exactly
// once in a column, a free cell, or implied by a foundation counter.
func (s *State) Validate() error {
	var seen [card.NumSuits][card.King + 1]bool
	for suit, f := range s.foundations {
		if f > card.King {
			return fmt.Errorf("%w: foundation %v at %d", ErrInvalidDeal, card.Suit(suit), f)
		}
		for r := uint8(card.Ace); r <= f; r++ {
			seen[suit][r] = true
		}
	}
	mark := func(c card.Card, where string) error {
		if !c.Valid() {
			return fmt.Errorf("%w: bad card %v in %s", ErrInvalidDeal, c, where)
		}
		if seen[c.Suit][c.Rank] {
			return fmt.Errorf("%w: duplicate card %v in %s", ErrInvalidDeal, c, where)
		}
		seen[c.Suit][c.Rank] = true
		return nil
	}
	for i, col := range s.columns {
		for _, c := range col {
			if err := mark(c, fmt.Sprintf("column %d", i)); err != nil {
				return err
			}
		}
	}
	for i, c := range s.freecells {
		if c.IsZero() {
			continue
		}
		if err := mark(c, fmt.Sprintf("free cell %d", i)); err != nil {
			return err
		}
	}
	for suit := range seen {
		for r := uint8(card.Ace); r <= card.King; r++ {
			if !seen[suit][r] {
				return fmt.Errorf("%w: missing card %v", ErrInvalidDeal,
					card.New(r, card.Suit(suit)))
			}
		}
	}
	return nil
}

// Column returns a copy of the cards of column i, bottom first.
func (s *State) Column(i int) []card.Card {
	return slices.Clone(s.columns[i])
}

// ColumnView returns column i without copying. The slice is shared with the
// state and other states derived from it, so it must not be modified.
func (s *State) ColumnView(i int) []card.Card {
	return s.columns[i]
}

// ColumnLen is the number of cards in column i.
func (s *State) ColumnLen(i int) int {
	return len(s.columns[i])
}

// Top returns the top card of column i, or the zero card if it is empty.
func (s *State) Top(i int) card.Card {
	col := s.columns[i]
	if len(col) == 0 {
		return card.Card{}
	}
	return col[len(col)-1]
}

// FreeCell returns the card in free cell i, or the zero card.
func (s *State) FreeCell(i int) card.Card {
	return s.freecells[i]
}

// Foundation returns the top rank on the given suit's foundation (0 = empty).
func (s *State) Foundation(suit card.Suit) uint8 {
	return s.foundations[suit]
}

// CountFreeCells counts the empty free cells.
func (s *State) CountFreeCells() int {
	return lo.CountBy(s.freecells[:], func(c card.Card) bool { return c.IsZero() })
}

// CountEmptyColumns counts the columns with no cards.
func (s *State) CountEmptyColumns() int {
	return lo.CountBy(s.columns[:], func(col []card.Card) bool { return len(col) == 0 })
}

// MaxMovableSequence is the supermove capacity: (1 + free cells) * 2^(empty columns).
func (s *State) MaxMovableSequence() int {
	return (1 + s.CountFreeCells()) << s.CountEmptyColumns()
}

// CanMoveToFoundation is true if c is the next card for its suit's foundation.
func (s *State) CanMoveToFoundation(c card.Card) bool {
	return s.foundations[c.Suit]+1 == c.Rank
}

// CanStackOn is true if above may be placed on below in a column.
func (s *State) CanStackOn(below, above card.Card) bool {
	return CanStackOn(below, above)
}

// CanStackOn is true if above is one rank lower than below and of the
// other color.
func CanStackOn(below, above card.Card) bool {
	return above.Rank+1 == below.Rank && above.Color() != below.Color()
}

// IsWon is true once every foundation holds its king.
func (s *State) IsWon() bool {
	return lo.EveryBy(s.foundations[:], func(f uint8) bool { return f == card.King })
}

// CardsRemaining counts the cards not yet on a foundation.
func (s *State) CardsRemaining() int {
	n := lo.SumBy(s.columns[:], func(col []card.Card) int { return len(col) })
	return n + NumFreeCells - s.CountFreeCells()
}

// Equal reports whether two states are identical, slot for slot. Use
// HashKey to compare positions up to column and free cell order.
func (s *State) Equal(o *State) bool {
	if s.freecells != o.freecells || s.foundations != o.foundations {
		return false
	}
	for i := range s.columns {
		if len(s.columns[i]) != len(o.columns[i]) {
			return false
		}
		for j := range s.columns[i] {
			if s.columns[i][j] != o.columns[i][j] {
				return false
			}
		}
	}
	return true
}
