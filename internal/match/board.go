// Package match holds the mutable state of one game: which piece stands
// on which cell, whose turn it is and the roll waiting to be spent.
package match

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/stickrace/internal/topology"
)

// PieceID identifies a piece for the lifetime of a match. It is the
// index of the cell the piece started on.
type PieceID int

// Piece is one racer.
type Piece struct {
	ID            PieceID
	Color         Color
	HasMoved      bool
	ReachedFarRow bool
}

// Frozen reports whether the piece may no longer move.
func (p *Piece) Frozen() bool {
	return p.ReachedFarRow
}

// PieceRef is the identity a caller uses to select a piece.
type PieceRef struct {
	ID    PieceID
	Color Color
}

// Board is the occupancy map of a grid. A cell holds at most one piece.
type Board struct {
	grid   topology.Grid
	cells  []*Piece
	pieces map[PieceID]*Piece
	index  map[PieceID]int
}

// NewBoard creates an empty board of the given (normalised) width.
func NewBoard(columns int) *Board {
	g := topology.New(columns)
	return &Board{
		grid:   g,
		cells:  make([]*Piece, g.Cells()),
		pieces: make(map[PieceID]*Piece),
		index:  make(map[PieceID]int),
	}
}

// Grid returns the board geometry.
func (b *Board) Grid() topology.Grid {
	return b.grid
}

// PlaceInitial fills red's home row with red pieces and blue's home row
// with blue pieces, one per cell.
func (b *Board) PlaceInitial() {
	for _, c := range Colors {
		row := b.grid.HomeRow(c.Direction())
		for col := 0; col < b.grid.Columns(); col++ {
			idx := b.grid.Index(topology.Coord{Row: row, Col: col})
			b.place(&Piece{ID: PieceID(idx), Color: c}, idx)
		}
	}
}

// Place puts a piece on an empty cell.
func (b *Board) Place(p Piece, index int) error {
	if !b.grid.Contains(index) {
		return fmt.Errorf("match: cell %d is outside the board", index)
	}
	if b.cells[index] != nil {
		return fmt.Errorf("match: cell %d is occupied", index)
	}
	if _, ok := b.pieces[p.ID]; ok {
		return fmt.Errorf("match: piece %d is already on the board", p.ID)
	}
	b.place(&p, index)
	return nil
}

func (b *Board) place(p *Piece, index int) {
	b.cells[index] = p
	b.pieces[p.ID] = p
	b.index[p.ID] = index
}

// OccupantAt returns the piece on index, or nil.
func (b *Board) OccupantAt(index int) *Piece {
	if !b.grid.Contains(index) {
		return nil
	}
	return b.cells[index]
}

// Piece looks up a piece still on the board.
func (b *Board) Piece(id PieceID) (*Piece, bool) {
	p, ok := b.pieces[id]
	return p, ok
}

// IndexOf returns the cell a piece stands on.
func (b *Board) IndexOf(id PieceID) (int, bool) {
	idx, ok := b.index[id]
	return idx, ok
}

// Relocate moves a piece to an empty cell and marks it as moved.
// Captures must be resolved with Remove first.
func (b *Board) Relocate(id PieceID, to int) error {
	p, ok := b.pieces[id]
	if !ok {
		return fmt.Errorf("match: piece %d is not on the board", id)
	}
	if !b.grid.Contains(to) {
		return fmt.Errorf("match: cell %d is outside the board", to)
	}
	from := b.index[id]
	if from == to {
		p.HasMoved = true
		return nil
	}
	if b.cells[to] != nil {
		return fmt.Errorf("match: cell %d is occupied by piece %d", to, b.cells[to].ID)
	}
	b.cells[from] = nil
	b.cells[to] = p
	b.index[id] = to
	p.HasMoved = true
	return nil
}

// Remove takes a piece off the board permanently.
func (b *Board) Remove(id PieceID) (*Piece, error) {
	p, ok := b.pieces[id]
	if !ok {
		return nil, fmt.Errorf("match: piece %d is not on the board", id)
	}
	b.cells[b.index[id]] = nil
	delete(b.pieces, id)
	delete(b.index, id)
	return p, nil
}

// Count returns how many pieces of a colour remain.
func (b *Board) Count(c Color) int {
	n := 0
	for _, p := range b.pieces {
		if p.Color == c {
			n++
		}
	}
	return n
}

// Pieces returns the remaining pieces of a colour ordered by cell index.
func (b *Board) Pieces(c Color) []*Piece {
	var out []*Piece
	for _, p := range b.pieces {
		if p.Color == c {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return b.index[out[i].ID] < b.index[out[j].ID]
	})
	return out
}
