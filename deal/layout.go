package deal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

// Layout is an arbitrary position as stored in YAML or JSON files.
// Foundations are in suit order (clubs, diamonds, hearts, spades); empty
// free cells are written as "".
type Layout struct {
	Foundations []int         `yaml:"foundations" json:"foundations"`
	FreeCells   []card.Card   `yaml:"freecells" json:"freecells"`
	Columns     [][]card.Card `yaml:"columns" json:"columns"`
}

// State builds and validates the position.
func (l *Layout) State() (*game.State, error) {
	var foundations []uint8
	if l.Foundations != nil {
		foundations = make([]uint8, len(l.Foundations))
		for i, f := range l.Foundations {
			if f < 0 || f > card.King {
				return nil, fmt.Errorf("%w: foundation %d out of range", game.ErrInvalidDeal, f)
			}
			foundations[i] = uint8(f)
		}
	}
	return game.NewFromLayout(l.Columns, l.FreeCells, foundations)
}

// LayoutFromState describes s as a Layout.
func LayoutFromState(s *game.State) *Layout {
	l := &Layout{
		Foundations: make([]int, card.NumSuits),
		FreeCells:   make([]card.Card, game.NumFreeCells),
		Columns:     make([][]card.Card, game.NumColumns),
	}
	for suit := card.Clubs; suit < card.NumSuits; suit++ {
		l.Foundations[suit] = int(s.Foundation(suit))
	}
	for i := range l.FreeCells {
		l.FreeCells[i] = s.FreeCell(i)
	}
	for i := range l.Columns {
		l.Columns[i] = append([]card.Card{}, s.ColumnView(i)...)
	}
	return l
}

func ParseYAMLLayout(bts []byte) (*game.State, error) {
	l := &Layout{}
	if err := yaml.Unmarshal(bts, l); err != nil {
		return nil, err
	}
	return l.State()
}

func ParseJSONLayout(bts []byte) (*game.State, error) {
	l := &Layout{}
	if err := json.Unmarshal(bts, l); err != nil {
		return nil, err
	}
	return l.State()
}

// LoadLayout reads a layout file. Files ending in .json are read as JSON,
// anything else as YAML.
func LoadLayout(path string) (*game.State, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSONLayout(bts)
	}
	return ParseYAMLLayout(bts)
}

// MarshalYAML writes s in the layout file format.
func MarshalYAML(s *game.State) ([]byte, error) {
	return yaml.Marshal(LayoutFromState(s))
}
