// Package movegen enumerates the legal moves of a FreeCell position.
//
// The order of the generated moves is fixed (foundation moves first, then
// column to column, column to free cell, free cell to column, each in
// ascending index order). Search reproducibility depends on it.
package movegen

import (
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
)

// MoveGenerator generates all moves for a position.
type MoveGenerator interface {
	GenAll(s *game.State)
	Plays() []move.Move
}

// Generator is the standard MoveGenerator. It reuses its play buffer
// between calls, so the slice returned by Plays is only valid until the
// next GenAll.
type Generator struct {
	plays []move.Move
}

func NewGenerator() *Generator {
	return &Generator{plays: make([]move.Move, 0, 64)}
}

// Generate returns a freshly allocated list of the moves for s.
func Generate(s *game.State) []move.Move {
	g := &Generator{}
	g.GenAll(s)
	return g.plays
}

func (g *Generator) Plays() []move.Move {
	return g.plays
}

// GenAll generates every move for s into the play buffer.
func (g *Generator) GenAll(s *game.State) {
	g.plays = g.plays[:0]
	g.genFoundationMoves(s)
	g.genColToColMoves(s)
	g.genColToFreeCellMoves(s)
	g.genFreeCellToColMoves(s)
}

func (g *Generator) genFoundationMoves(s *game.State) {
	for i := 0; i < game.NumColumns; i++ {
		if s.ColumnLen(i) > 0 && s.CanMoveToFoundation(s.Top(i)) {
			g.plays = append(g.plays, move.NewColToFoundation(i))
		}
	}
	for i := 0; i < game.NumFreeCells; i++ {
		c := s.FreeCell(i)
		if !c.IsZero() && s.CanMoveToFoundation(c) {
			g.plays = append(g.plays, move.NewFreeCellToFoundation(i))
		}
	}
}

// genColToColMoves offers the whole movable run (capped at the supermove
// limit) to each empty column, but only a single card to non-empty
// columns.
func (g *Generator) genColToColMoves(s *game.State) {
	capacity := s.MaxMovableSequence()
	for src := 0; src < game.NumColumns; src++ {
		srcCol := s.ColumnView(src)
		if len(srcCol) == 0 {
			continue
		}
		run := min(RunLength(srcCol), capacity)
		top := srcCol[len(srcCol)-1]
		for dst := 0; dst < game.NumColumns; dst++ {
			if src == dst {
				continue
			}
			if s.ColumnLen(dst) == 0 {
				// moving a lone card to an empty column goes nowhere.
				if len(srcCol) > 1 {
					g.plays = append(g.plays, move.NewColToCol(src, dst, run))
				}
			} else if game.CanStackOn(s.Top(dst), top) {
				g.plays = append(g.plays, move.NewColToCol(src, dst, 1))
			}
		}
	}
}

// genColToFreeCellMoves only names the first empty free cell; the cells are
// interchangeable.
func (g *Generator) genColToFreeCellMoves(s *game.State) {
	cell := -1
	for i := 0; i < game.NumFreeCells; i++ {
		if s.FreeCell(i).IsZero() {
			cell = i
			break
		}
	}
	if cell == -1 {
		return
	}
	for col := 0; col < game.NumColumns; col++ {
		if s.ColumnLen(col) > 0 {
			g.plays = append(g.plays, move.NewColToFreeCell(col, cell))
		}
	}
}

func (g *Generator) genFreeCellToColMoves(s *game.State) {
	for cell := 0; cell < game.NumFreeCells; cell++ {
		c := s.FreeCell(cell)
		if c.IsZero() {
			continue
		}
		for col := 0; col < game.NumColumns; col++ {
			if s.ColumnLen(col) == 0 || game.CanStackOn(s.Top(col), c) {
				g.plays = append(g.plays, move.NewFreeCellToCol(cell, col))
			}
		}
	}
}
