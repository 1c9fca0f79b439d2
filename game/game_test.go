package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/move"
)

func cards(s string) []card.Card {
	cs, err := card.ParseList(s)
	if err != nil {
		panic(err)
	}
	return cs
}

func orderedDeal(t *testing.T) *State {
	s, err := NewFromDeal(card.NewDeck())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewFromDealColumnSizes(t *testing.T) {
	is := is.New(t)
	s := orderedDeal(t)
	for i, size := range DealColumnSizes {
		is.Equal(len(s.Column(i)), size)
	}
	is.Equal(s.Column(0)[0], card.New(card.Ace, card.Clubs))
	is.Equal(s.Column(1)[6], card.New(card.Ace, card.Diamonds))
	is.Equal(s.Top(7), card.New(card.King, card.Spades))
	is.Equal(s.CountFreeCells(), 4)
	is.Equal(s.CountEmptyColumns(), 0)
	is.Equal(s.CardsRemaining(), 52)
	is.True(!s.IsWon())
}

func TestNewFromDealRejectsBadDecks(t *testing.T) {
	is := is.New(t)
	deck := card.NewDeck()

	dup := append([]card.Card(nil), deck...)
	dup[51] = dup[0]
	_, err := NewFromDeal(dup)
	is.True(errors.Is(err, ErrInvalidDeal))

	extra := append(append([]card.Card(nil), deck...), deck[3])
	_, err = NewFromDeal(extra)
	is.True(errors.Is(err, ErrInvalidDeal))

	_, err = NewFromDeal(deck[:51])
	is.True(errors.Is(err, ErrInvalidDeal))

	bad := append([]card.Card(nil), deck...)
	bad[10] = card.New(14, card.Clubs)
	_, err = NewFromDeal(bad)
	is.True(errors.Is(err, ErrInvalidDeal))
}

func TestNewFromLayout(t *testing.T) {
	is := is.New(t)
	won, err := NewFromLayout(nil, nil, []uint8{13, 13, 13, 13})
	is.NoErr(err)
	is.True(won.IsWon())
	is.Equal(won.CardsRemaining(), 0)
	is.Equal(won.CountEmptyColumns(), 8)

	_, err = NewFromLayout(nil, cards("KC"), []uint8{12, 13, 13, 13})
	is.NoErr(err)
	// Queen of clubs is both on the foundation and in a free cell.
	_, err = NewFromLayout(nil, cards("QC"), []uint8{12, 13, 13, 13})
	is.True(errors.Is(err, ErrInvalidDeal))
	_, err = NewFromLayout(nil, cards("JC"), []uint8{12, 13, 13, 13})
	is.True(errors.Is(err, ErrInvalidDeal))
	// King of clubs is missing.
	_, err = NewFromLayout(nil, nil, []uint8{12, 13, 13, 13})
	is.True(errors.Is(err, ErrInvalidDeal))
	_, err = NewFromLayout(nil, nil, []uint8{14, 13, 13, 13})
	is.True(errors.Is(err, ErrInvalidDeal))
	_, err = NewFromLayout(make([][]card.Card, 9), nil, nil)
	is.True(errors.Is(err, ErrInvalidDeal))
	_, err = NewFromLayout(nil, nil, []uint8{13, 13})
	is.True(errors.Is(err, ErrInvalidDeal))
}

func TestMaxMovableSequence(t *testing.T) {
	is := is.New(t)
	testcases := []struct {
		free, empty int
		expected    int
	}{
		{0, 0, 1},
		{4, 0, 5},
		{0, 3, 8},
		{2, 2, 12},
	}
	for _, tc := range testcases {
		s := &State{}
		for i := 0; i < NumColumns-tc.empty; i++ {
			s.columns[i] = cards("KS")
		}
		for i := 0; i < NumFreeCells-tc.free; i++ {
			s.freecells[i] = card.New(card.King, card.Hearts)
		}
		is.Equal(s.CountFreeCells(), tc.free)
		is.Equal(s.CountEmptyColumns(), tc.empty)
		is.Equal(s.MaxMovableSequence(), tc.expected)
	}
}

func TestCanMoveToFoundation(t *testing.T) {
	is := is.New(t)
	s := &State{}
	for f := uint8(0); f <= card.Queen; f++ {
		s.foundations[card.Hearts] = f
		for r := uint8(card.Ace); r <= card.King; r++ {
			is.Equal(s.CanMoveToFoundation(card.New(r, card.Hearts)), r == f+1)
		}
	}
	s.foundations = [4]uint8{}
	is.True(s.CanMoveToFoundation(card.New(card.Ace, card.Spades)))
	is.True(!s.CanMoveToFoundation(card.New(2, card.Spades)))
	s.foundations[card.Spades] = 12
	is.True(s.CanMoveToFoundation(card.New(card.King, card.Spades)))
	// other suits are independent
	is.True(!s.CanMoveToFoundation(card.New(card.King, card.Clubs)))
}

func TestCanStackOn(t *testing.T) {
	is := is.New(t)
	is.True(CanStackOn(card.MustFromString("5D"), card.MustFromString("4C")))
	is.True(CanStackOn(card.MustFromString("5S"), card.MustFromString("4H")))
	is.True(!CanStackOn(card.MustFromString("5D"), card.MustFromString("4H")))
	is.True(!CanStackOn(card.MustFromString("5D"), card.MustFromString("3S")))
	is.True(!CanStackOn(card.MustFromString("4C"), card.MustFromString("5D")))
	is.True(!CanStackOn(card.MustFromString("AC"), card.Card{}))
}

func TestHashKeySymmetry(t *testing.T) {
	is := is.New(t)
	columns := [][]card.Card{
		cards("KS QH JC"), cards("10D"), nil, cards("9S 8H"),
		cards("KD QC"), nil, cards("JH"), cards("10S 9D"),
	}
	foundations := []uint8{7, 7, 7, 7}
	var rest []card.Card
	for suit := card.Clubs; suit < card.NumSuits; suit++ {
		for r := uint8(8); r <= card.King; r++ {
			c := card.New(r, suit)
			found := false
			for _, col := range columns {
				for _, cc := range col {
					found = found || cc == c
				}
			}
			if !found {
				rest = append(rest, c)
			}
		}
	}
	// put the leftovers in column 2 and two free cells
	columns[2] = rest[:len(rest)-2]
	freecells := []card.Card{rest[len(rest)-2], {}, rest[len(rest)-1], {}}

	a, err := NewFromLayout(columns, freecells, foundations)
	is.NoErr(err)

	permuted := [][]card.Card{
		columns[7], columns[5], columns[3], columns[1],
		columns[0], columns[2], columns[4], columns[6],
	}
	b, err := NewFromLayout(permuted, []card.Card{{}, freecells[2], {}, freecells[0]}, foundations)
	is.NoErr(err)
	is.True(!a.Equal(b))
	is.Equal(a.HashKey(), b.HashKey())

	// moving a card changes the key.
	c := a.PlayMove(move.NewColToFreeCell(6, 1))
	is.True(c.HashKey() != a.HashKey())
}

func TestHashKeyDistinguishesColumnBoundaries(t *testing.T) {
	is := is.New(t)
	deck := card.NewDeck()
	a, err := NewFromLayout([][]card.Card{deck[:26], deck[26:]}, nil, nil)
	is.NoErr(err)
	b, err := NewFromLayout([][]card.Card{deck[:25], deck[25:]}, nil, nil)
	is.NoErr(err)
	is.True(a.HashKey() != b.HashKey())
}

func TestEmptyColumnMoveKeepsHash(t *testing.T) {
	is := is.New(t)
	s, err := NewFromLayout([][]card.Card{cards("KS")}, nil, []uint8{13, 13, 13, 12})
	is.NoErr(err)
	moved := s.PlayMove(move.NewColToCol(0, 5, 1))
	is.Equal(moved.HashKey(), s.HashKey())
	free := s.PlayMove(move.NewColToFreeCell(0, 2))
	free2 := s.PlayMove(move.NewColToFreeCell(0, 0))
	is.Equal(free.HashKey(), free2.HashKey())
}
