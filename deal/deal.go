// Package deal reads deals and layouts from text, YAML and JSON, and makes
// random deals for tests and batch runs.
package deal

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

// Parse reads a deal in dealing order: 52 card tokens separated by
// whitespace or commas. Lines starting with # are comments.
func Parse(text string) ([]card.Card, error) {
	var sb strings.Builder
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte(' ')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	cards, err := card.ParseList(sb.String())
	if err != nil {
		return nil, err
	}
	if len(cards) != card.DeckSize {
		return nil, fmt.Errorf("%w: read %d cards, need %d", game.ErrInvalidDeal,
			len(cards), card.DeckSize)
	}
	return cards, nil
}

// ParseState parses a deal and deals it.
func ParseState(text string) (*game.State, error) {
	cards, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return game.NewFromDeal(cards)
}

// LoadDeal reads a deal file in the Parse format.
func LoadDeal(path string) (*game.State, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseState(string(bts))
}

// Format writes cards in dealing order, one column per line.
func Format(cards []card.Card) string {
	var sb strings.Builder
	idx := 0
	for _, size := range game.DealColumnSizes {
		for i := 0; i < size && idx < len(cards); i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cards[idx].String())
			idx++
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
