package card

import (
	"testing"

	"github.com/matryer/is"
)

func TestEncodeDecodeBijection(t *testing.T) {
	is := is.New(t)
	seen := map[uint8]bool{}
	for _, c := range NewDeck() {
		v := c.Encode()
		is.True(v != 0)
		is.True(!seen[v])
		seen[v] = true
		is.Equal(Decode(v), c)
	}
	is.Equal(len(seen), DeckSize)
	is.Equal(Decode(0), Card{})
	is.Equal(Card{}.Encode(), uint8(0))
}

func TestEncodeLayout(t *testing.T) {
	is := is.New(t)
	is.Equal(New(Queen, Hearts).Encode(), uint8(12|2<<4))
	is.Equal(New(Ace, Clubs).Encode(), uint8(1))
}

func TestColors(t *testing.T) {
	is := is.New(t)
	is.Equal(New(5, Clubs).Color(), Black)
	is.Equal(New(5, Spades).Color(), Black)
	is.Equal(New(5, Diamonds).Color(), Red)
	is.Equal(New(5, Hearts).Color(), Red)
}

func TestFromString(t *testing.T) {
	is := is.New(t)
	testcases := []struct {
		in   string
		card Card
	}{
		{"QC", New(Queen, Clubs)},
		{"10H", New(10, Hearts)},
		{"th", New(10, Hearts)},
		{"AS", New(Ace, Spades)},
		{"1S", New(Ace, Spades)},
		{"K♦", New(King, Diamonds)},
		{" 7d ", New(7, Diamonds)},
	}
	for _, tc := range testcases {
		c, err := FromString(tc.in)
		is.NoErr(err)
		is.Equal(c, tc.card)
	}
}

func TestFromStringErrors(t *testing.T) {
	is := is.New(t)
	for _, in := range []string{"", "Q", "QX", "11H", "0C", "ZZ"} {
		_, err := FromString(in)
		is.True(err != nil)
	}
}

func TestStringRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, c := range NewDeck() {
		parsed, err := FromString(c.String())
		is.NoErr(err)
		is.Equal(parsed, c)
		parsed, err = FromString(c.Pretty())
		is.NoErr(err)
		is.Equal(parsed, c)
	}
}

func TestTextMarshalEmpty(t *testing.T) {
	is := is.New(t)
	b, err := Card{}.MarshalText()
	is.NoErr(err)
	is.Equal(string(b), "")
	c := New(3, Spades)
	is.NoErr(c.UnmarshalText([]byte("--")))
	is.True(c.IsZero())
}

func TestParseList(t *testing.T) {
	is := is.New(t)
	cards, err := ParseList("AS, 2H\n10C  KD")
	is.NoErr(err)
	is.Equal(cards, []Card{New(Ace, Spades), New(2, Hearts), New(10, Clubs), New(King, Diamonds)})
}
