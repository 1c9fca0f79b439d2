package deal

import (
	"encoding/binary"
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

// NewRNG returns a deterministic generator for seed. The same seed gives
// the same deals on every platform.
func NewRNG(seed uint64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

// Random returns a shuffled deck for seed, in dealing order.
func Random(seed uint64) []card.Card {
	deck := card.NewDeck()
	rng := NewRNG(seed)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Unseeded returns a shuffled deck from the system entropy source.
func Unseeded() []card.Card {
	deck := card.NewDeck()
	frand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// RandomState deals Random(seed).
func RandomState(seed uint64) *game.State {
	s, err := game.NewFromDeal(Random(seed))
	if err != nil {
		// a shuffled deck is always a valid deal.
		panic(err)
	}
	return s
}

// PartiallySolved returns a position with every foundation at k and the
// remaining cards shuffled and spread as evenly as possible over the eight
// columns, the leftmost columns taking the extra cards.
func PartiallySolved(k int, seed uint64) (*game.State, error) {
	if k < 0 || k > card.King {
		return nil, fmt.Errorf("%w: foundation level %d out of range", game.ErrInvalidDeal, k)
	}
	var rest []card.Card
	for suit := card.Clubs; suit < card.NumSuits; suit++ {
		for r := k + 1; r <= card.King; r++ {
			rest = append(rest, card.New(uint8(r), suit))
		}
	}
	rng := NewRNG(seed)
	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	per, extra := len(rest)/game.NumColumns, len(rest)%game.NumColumns
	columns := make([][]card.Card, game.NumColumns)
	start := 0
	for i := range columns {
		end := start + per
		if i < extra {
			end++
		}
		columns[i] = rest[start:end]
		start = end
	}
	k8 := uint8(k)
	return game.NewFromLayout(columns, nil, []uint8{k8, k8, k8, k8})
}
