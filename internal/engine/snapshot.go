package engine

import (
	"github.com/vovakirdan/stickrace/internal/dice"
	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/topology"
)

// CellView is one cell of a Snapshot.
type CellView struct {
	Occupied bool
	Piece    match.PieceID
	Color    match.Color
	Frozen   bool
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Columns int
	Rows    int
	Cells   []CellView

	Phase       Phase
	Current     match.Color
	PendingRoll int
	LastFace    dice.Face
	HasFace     bool
	ExtraTurn   bool

	BranchOptions []int
	BranchFrom    int

	Winner   match.Color
	Moves    int
	RedLeft  int
	BlueLeft int
	Queued   int
}

// Snapshot copies the current match state.
func (e *Engine) Snapshot() Snapshot {
	if e.state == nil {
		return Snapshot{Columns: topology.DefaultColumns, Rows: topology.Rows, Phase: e.phase, BranchFrom: -1}
	}

	board := e.state.Board
	grid := board.Grid()
	snap := Snapshot{
		Columns:     grid.Columns(),
		Rows:        grid.Rows(),
		Cells:       make([]CellView, grid.Cells()),
		Phase:       e.phase,
		Current:     e.state.Current,
		PendingRoll: e.state.PendingRoll,
		LastFace:    e.lastFace,
		HasFace:     e.hasFace,
		ExtraTurn:   e.state.ExtraTurn,
		BranchFrom:  -1,
		Winner:      e.winner,
		Moves:       e.moves,
		RedLeft:     board.Count(match.Red),
		BlueLeft:    board.Count(match.Blue),
		Queued:      len(e.queue),
	}

	for i := range snap.Cells {
		if p := board.OccupantAt(i); p != nil {
			snap.Cells[i] = CellView{Occupied: true, Piece: p.ID, Color: p.Color, Frozen: p.Frozen()}
		}
	}
	if e.branch != nil {
		snap.BranchOptions = []int{e.branch.options[0], e.branch.options[1]}
		snap.BranchFrom = e.branch.from
	}
	return snap
}

// Cell returns the view of one cell, or an empty view for bad indexes.
func (s Snapshot) Cell(index int) CellView {
	if index < 0 || index >= len(s.Cells) {
		return CellView{}
	}
	return s.Cells[index]
}

// IsBranchOption reports whether index is one of the offered cells.
func (s Snapshot) IsBranchOption(index int) bool {
	for _, o := range s.BranchOptions {
		if o == index {
			return true
		}
	}
	return false
}
