// Package card models the 52 playing cards used by FreeCell.
package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Suit is one of the four suits. The numeric values are also the foundation
// indices.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits (and foundations).
const NumSuits = 4

const (
	Ace  = 1
	Jack = 11
	// Queen and King are the top two ranks.
	Queen = 12
	King  = 13
)

// DeckSize is the number of distinct cards.
const DeckSize = 52

// Color is black or red.
type Color uint8

const (
	Black Color = iota
	Red
)

var ErrInvalidCard = errors.New("invalid card")

var suitLetters = [NumSuits]string{"C", "D", "H", "S"}
var suitSymbols = [NumSuits]string{"♣", "♦", "♥", "♠"}
var rankNames = [King + 1]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return suitLetters[s]
}

// Color returns the color of the suit.
func (s Suit) Color() Color {
	switch s {
	case Diamonds, Hearts:
		return Red
	}
	return Black
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Card is an immutable playing card. The zero value is not a card; it is used
// to mean "no card" wherever a slot can be empty.
type Card struct {
	Rank uint8
	Suit Suit
}

// New returns the card with the given rank and suit.
func New(rank uint8, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// IsZero is true for the empty marker.
func (c Card) IsZero() bool {
	return c.Rank == 0
}

// Valid reports whether c is one of the 52 cards.
func (c Card) Valid() bool {
	return c.Rank >= Ace && c.Rank <= King && c.Suit < NumSuits
}

func (c Card) Color() Color {
	return c.Suit.Color()
}

// Encode packs the card into a byte: rank in the low nibble, suit above it.
// The empty card encodes to 0, which no real card does.
func (c Card) Encode() uint8 {
	if c.IsZero() {
		return 0
	}
	return c.Rank | uint8(c.Suit)<<4
}

// Decode is the inverse of Encode.
func Decode(v uint8) Card {
	if v == 0 {
		return Card{}
	}
	return Card{Rank: v & 0xF, Suit: Suit(v >> 4)}
}

// String returns the short text form, e.g. "10H" or "QC". The empty card is "--".
func (c Card) String() string {
	if c.IsZero() {
		return "--"
	}
	if !c.Valid() {
		return fmt.Sprintf("?%d/%d", c.Rank, c.Suit)
	}
	return rankNames[c.Rank] + suitLetters[c.Suit]
}

// Pretty uses the suit symbol instead of its letter.
func (c Card) Pretty() string {
	if c.IsZero() || !c.Valid() {
		return c.String()
	}
	return rankNames[c.Rank] + suitSymbols[c.Suit]
}

// FromString parses the text form produced by String or Pretty. Ranks can be
// A, 2-10, T, J, Q or K; suits a letter (C, D, H, S) or a suit symbol.
func FromString(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	suitRune, size := utf8.DecodeLastRuneInString(s)
	suit, ok := parseSuit(suitRune)
	if !ok {
		return Card{}, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, s)
	}
	rank, ok := parseRank(s[:len(s)-size])
	if !ok {
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustFromString is FromString for literals; it panics on bad input.
func MustFromString(s string) Card {
	c, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseSuit(r rune) (Suit, bool) {
	switch r {
	case 'C', 'c', '♣':
		return Clubs, true
	case 'D', 'd', '♦':
		return Diamonds, true
	case 'H', 'h', '♥':
		return Hearts, true
	case 'S', 's', '♠':
		return Spades, true
	}
	return 0, false
}

func parseRank(r string) (uint8, bool) {
	switch strings.ToUpper(r) {
	case "A":
		return Ace, true
	case "T":
		return 10, true
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	}
	n, err := strconv.Atoi(r)
	if err != nil || n < 1 || n > 10 {
		return 0, false
	}
	return uint8(n), true
}

func (c Card) MarshalText() ([]byte, error) {
	if c.IsZero() {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "--" {
		*c = Card{}
		return nil
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// NewDeck returns the 52 cards, suit by suit, ace to king.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Clubs; s < NumSuits; s++ {
		for r := uint8(Ace); r <= King; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ParseList parses whitespace- or comma-separated cards.
func ParseList(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := FromString(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
