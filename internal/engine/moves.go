package engine

import "github.com/vovakirdan/stickrace/internal/match"

// LegalMove is a piece the current player may select with the pending
// roll and where it may end up.
type LegalMove struct {
	Piece        match.PieceRef
	From         int
	Destinations []int
	Branch       bool
}

// LegalMoves lists every selectable piece for the pending roll, ordered
// by cell index. It is empty when no roll is pending.
func (e *Engine) LegalMoves() []LegalMove {
	if e.state == nil || e.phase != PhaseAwaitingSelection || !e.state.HasRoll() {
		return nil
	}

	board := e.state.Board
	grid := board.Grid()
	player := e.state.Current
	far := grid.FarRow(player.Direction())

	var moves []LegalMove
	for _, p := range board.Pieces(player) {
		if p.Frozen() {
			continue
		}
		from, _ := board.IndexOf(p.ID)
		dest := grid.Resolve(from, player.Direction(), e.state.PendingRoll)
		if e.ownPieceAt(dest.Primary) {
			continue
		}

		var open []int
		for _, to := range dest.Options() {
			if e.ownPieceAt(to) {
				continue
			}
			if p.ReachedFarRow && grid.RowOf(to) == far {
				continue
			}
			open = append(open, to)
		}
		if len(open) == 0 {
			continue
		}
		moves = append(moves, LegalMove{
			Piece:        match.PieceRef{ID: p.ID, Color: p.Color},
			From:         from,
			Destinations: open,
			Branch:       dest.Branch,
		})
	}
	return moves
}

// BranchOptions returns the two cells of an outstanding branch offer.
func (e *Engine) BranchOptions() ([2]int, bool) {
	if e.branch == nil {
		return [2]int{}, false
	}
	return e.branch.options, true
}
