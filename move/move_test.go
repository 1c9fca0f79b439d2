package move

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestString(t *testing.T) {
	is := is.New(t)
	testcases := []struct {
		m    Move
		text string
	}{
		{NewColToFoundation(3), "col_to_found(3)"},
		{NewFreeCellToFoundation(0), "free_to_found(0)"},
		{NewColToCol(0, 5, 2), "col_to_col(0,5,2)"},
		{NewColToFreeCell(7, 1), "col_to_free(7,1)"},
		{NewFreeCellToCol(2, 4), "free_to_col(2,4)"},
	}
	for _, tc := range testcases {
		is.Equal(tc.m.String(), tc.text)
		parsed, err := Parse(tc.text)
		is.NoErr(err)
		is.Equal(parsed, tc.m)
	}
}

func TestParseLenient(t *testing.T) {
	is := is.New(t)
	m, err := Parse("  col_to_col(1, 2, 3) ")
	is.NoErr(err)
	is.Equal(m, NewColToCol(1, 2, 3))
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	for _, s := range []string{
		"", "col_to_found", "col_to_found()", "col_to_found(1,2)",
		"jump(1)", "col_to_col(1,2,0)", "free_to_col(1,300)",
	} {
		_, err := Parse(s)
		is.True(errors.Is(err, ErrInvalidMove))
	}
}

func TestAccessors(t *testing.T) {
	is := is.New(t)
	m := NewColToCol(4, 6, 3)
	is.Equal(m.Action(), MoveTypeColToCol)
	is.Equal(m.Src(), 4)
	is.Equal(m.Dst(), 6)
	is.Equal(m.Count(), 3)
	is.True(m.FromColumn())
	is.True(!m.ToFoundation())
	is.True(NewFreeCellToFoundation(1).ToFoundation())
}

func TestJSON(t *testing.T) {
	is := is.New(t)
	moves := []Move{NewColToFreeCell(0, 0), NewColToCol(2, 3, 1)}
	b, err := json.Marshal(moves)
	is.NoErr(err)
	is.Equal(string(b), `["col_to_free(0,0)","col_to_col(2,3,1)"]`)
	var back []Move
	is.NoErr(json.Unmarshal(b, &back))
	is.Equal(back, moves)
}

func TestShortDescription(t *testing.T) {
	is := is.New(t)
	is.Equal(NewColToCol(0, 1, 3).ShortDescription(), "column 1 -> column 2 (3 cards)")
	is.Equal(NewFreeCellToFoundation(3).ShortDescription(), "freecell 4 -> foundation")
}

func TestParseList(t *testing.T) {
	is := is.New(t)
	moves := []Move{NewColToFreeCell(3, 0), NewColToCol(1, 2, 3), NewFreeCellToFoundation(0)}
	back, err := ParseList(ListString(moves))
	is.NoErr(err)
	is.Equal(back, moves)

	empty, err := ParseList("")
	is.NoErr(err)
	is.Equal(len(empty), 0)

	_, err = ParseList("col_to_found(1) nonsense")
	is.True(errors.Is(err, ErrInvalidMove))
}
