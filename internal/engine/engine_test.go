package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stickrace/internal/dice"
	"github.com/vovakirdan/stickrace/internal/match"
)

// scenario builds an engine mid-match with a hand-placed board.
func scenario(t *testing.T, columns int, current match.Color, pieces map[int]match.Color, faces ...dice.Face) (*Engine, *Recorder) {
	t.Helper()
	if len(faces) == 0 {
		faces = []dice.Face{dice.FaceTwo}
	}
	rec := &Recorder{}
	e := New(dice.NewSequence(faces...), rec, DefaultOptions())

	b := match.NewBoard(columns)
	for idx, c := range pieces {
		require.NoError(t, b.Place(match.Piece{ID: match.PieceID(idx), Color: c}, idx))
	}
	e.state = &match.State{Board: b, Current: current}
	e.phase = PhaseAwaitingRoll
	return e, rec
}

func ref(id int, c match.Color) match.PieceRef {
	return match.PieceRef{ID: match.PieceID(id), Color: c}
}

func TestStartMatch(t *testing.T) {
	rec := &Recorder{}
	e := New(dice.NewSequence(dice.FaceTwo), rec, DefaultOptions())

	assert.Equal(t, PhaseIdle, e.Phase())
	out := e.Roll()
	assert.ErrorIs(t, out.Reason, ErrNoMatch)

	out = e.Start(8, match.Blue)
	require.True(t, out.Accepted)
	assert.Equal(t, PhaseAwaitingRoll, e.Phase())
	assert.Equal(t, match.Blue, e.Current())
	assert.Equal(t, 9, e.Grid().Columns(), "even widths are bumped to odd")
	assert.Equal(t, 1, rec.Started)
	assert.Equal(t, "Blue starts! Roll the dice.", rec.LastMessage())

	snap := e.Snapshot()
	assert.Equal(t, 9, snap.RedLeft)
	assert.Equal(t, 9, snap.BlueLeft)
}

func TestBlueMovesAlongBottomRow(t *testing.T) {
	rec := &Recorder{}
	e := New(dice.NewSequence(dice.FaceTwo), rec, DefaultOptions())
	e.Start(9, match.Blue)

	out := e.Roll()
	require.True(t, out.Rolled)
	assert.Equal(t, dice.FaceTwo, out.Face)
	assert.Equal(t, "Blue rolled 2. Move a piece, then turn ends.", rec.LastMessage())

	// 29 holds a blue piece on the starting board
	_, err := e.state.Board.Remove(29)
	require.NoError(t, err)

	out = e.Select(ref(27, match.Blue))
	require.True(t, out.Accepted, "reason: %v", out.Reason)
	require.Len(t, rec.Moves, 1)
	assert.Equal(t, 27, rec.Moves[0].From)
	assert.Equal(t, 29, rec.Moves[0].To)
	assert.True(t, rec.Moves[0].Piece.HasMoved)
}

func TestRedBranchIntoFarRow(t *testing.T) {
	e, rec := scenario(t, 9, match.Red, map[int]match.Color{
		22: match.Red,
		35: match.Blue,
	}, dice.FaceZero)

	e.Roll()
	out := e.Select(ref(22, match.Red))
	require.True(t, out.Accepted)
	assert.Equal(t, PhaseAwaitingBranch, e.Phase())
	require.Len(t, rec.Branches, 1)
	assert.Equal(t, [2]int{28, 28 - 2*9}, rec.Branches[0])
	assert.Empty(t, rec.Moves, "move is not applied before the choice")

	before := e.Snapshot()

	// Nothing but a valid choice is accepted while the branch is open.
	assert.ErrorIs(t, e.Roll().Reason, ErrBranchPending)
	assert.ErrorIs(t, e.Select(ref(22, match.Red)).Reason, ErrBranchPending)
	assert.ErrorIs(t, e.Pass().Reason, ErrBranchPending)
	assert.ErrorIs(t, e.Choose(5).Reason, ErrNotAnOption)
	assert.Equal(t, before, e.Snapshot())

	out = e.Choose(10)
	require.True(t, out.Accepted)
	require.Len(t, rec.Moves, 1)
	assert.Equal(t, 22, rec.Moves[0].From)
	assert.Equal(t, 10, rec.Moves[0].To)
	assert.False(t, rec.Moves[0].Piece.ReachedFarRow)

	// A six keeps the turn.
	assert.Equal(t, PhaseAwaitingRoll, e.Phase())
	assert.Equal(t, match.Red, e.Current())
	assert.Equal(t, 0, e.Snapshot().PendingRoll)
}

func TestRedBranchChoosingFarRowFreezes(t *testing.T) {
	e, rec := scenario(t, 9, match.Red, map[int]match.Color{
		22: match.Red,
		35: match.Blue,
	}, dice.FaceZero)

	e.Roll()
	e.Select(ref(22, match.Red))
	require.True(t, e.Choose(28).Accepted)
	require.Len(t, rec.Moves, 1)
	assert.True(t, rec.Moves[0].Piece.ReachedFarRow)
	assert.True(t, e.Snapshot().Cell(28).Frozen)

	e.state.SetRoll(1, true)
	e.phase = PhaseAwaitingSelection
	assert.ErrorIs(t, e.Select(ref(22, match.Red)).Reason, ErrPieceFrozen)
}

func TestRedShortMoveHasNoBranch(t *testing.T) {
	e, rec := scenario(t, 9, match.Red, map[int]match.Color{
		22: match.Red,
		35: match.Blue,
	}, dice.FaceTwo)

	e.Roll()
	out := e.Select(ref(22, match.Red))
	require.True(t, out.Accepted)
	assert.Empty(t, rec.Branches)
	require.Len(t, rec.Moves, 1)
	assert.Equal(t, 20, rec.Moves[0].To)
}

func TestBranchWithOneBlockedOption(t *testing.T) {
	e, rec := scenario(t, 9, match.Red, map[int]match.Color{
		22: match.Red,
		10: match.Red,
		35: match.Blue,
	}, dice.FaceZero)

	e.Roll()
	require.True(t, e.Select(ref(22, match.Red)).Accepted)
	require.Len(t, rec.Branches, 1)

	out := e.Choose(10)
	assert.ErrorIs(t, out.Reason, ErrOwnPiece)
	assert.Equal(t, PhaseAwaitingBranch, e.Phase(), "branch stays open after a blocked choice")

	require.True(t, e.Choose(28).Accepted)
	assert.Equal(t, 28, rec.Moves[0].To)
}

func TestBranchWithBlockedPrimaryIsRejected(t *testing.T) {
	e, rec := scenario(t, 9, match.Red, map[int]match.Color{
		22: match.Red,
		28: match.Red,
		35: match.Blue,
	}, dice.FaceZero)

	e.Roll()
	for _, mv := range e.LegalMoves() {
		assert.NotEqual(t, 22, mv.From, "a blocked landing cell removes the piece from the legal moves")
	}

	out := e.Select(ref(22, match.Red))
	assert.ErrorIs(t, out.Reason, ErrOwnPiece)
	assert.Empty(t, rec.Branches)
	assert.Equal(t, PhaseAwaitingSelection, e.Phase())
	assert.Equal(t, 6, e.Snapshot().PendingRoll)
}

func TestBranchWithBothOptionsBlocked(t *testing.T) {
	e, rec := scenario(t, 9, match.Red, map[int]match.Color{
		22: match.Red,
		10: match.Red,
		28: match.Red,
		35: match.Blue,
	}, dice.FaceZero)

	e.Roll()
	out := e.Select(ref(22, match.Red))
	assert.ErrorIs(t, out.Reason, ErrOwnPiece)
	assert.Empty(t, rec.Branches)
	assert.Equal(t, PhaseAwaitingSelection, e.Phase())
}

func TestCaptureAtBranchChoice(t *testing.T) {
	e, rec := scenario(t, 9, match.Red, map[int]match.Color{
		22: match.Red,
		10: match.Blue,
		35: match.Blue,
	}, dice.FaceZero)

	e.Roll()
	e.Select(ref(22, match.Red))
	require.True(t, e.Choose(10).Accepted)
	require.Len(t, rec.Captures, 1)
	assert.Equal(t, match.PieceID(10), rec.Captures[0].ID)
	assert.Equal(t, 1, e.Snapshot().BlueLeft)
}

func TestEliminationEndsMatchOnce(t *testing.T) {
	e, rec := scenario(t, 9, match.Blue, map[int]match.Color{
		9:  match.Blue,
		11: match.Red,
	}, dice.FaceTwo)

	e.Roll()
	out := e.Select(ref(9, match.Blue))
	require.True(t, out.Accepted)
	assert.Zero(t, out.Handoff, "no handoff after the winning move")

	assert.Equal(t, PhaseEnded, e.Phase())
	assert.Equal(t, match.Blue, e.Winner())
	assert.Equal(t, []match.Color{match.Blue}, rec.Winners)
	assert.Contains(t, rec.Messages, "Blue wins!")

	assert.ErrorIs(t, e.Roll().Reason, ErrMatchOver)
	assert.ErrorIs(t, e.Select(ref(11, match.Blue)).Reason, ErrMatchOver)
	assert.ErrorIs(t, e.Pass().Reason, ErrMatchOver)
	assert.ErrorIs(t, e.HandoffElapsed().Reason, ErrMatchOver)
	assert.Len(t, rec.Winners, 1)
}

func TestFaceThreePassesTheTurn(t *testing.T) {
	e, rec := scenario(t, 9, match.Blue, map[int]match.Color{
		27: match.Blue,
		4:  match.Red,
	}, dice.FaceThree)

	e.Roll()
	out := e.Select(ref(27, match.Blue))
	require.True(t, out.Accepted)
	assert.Equal(t, DefaultTurnDelay, out.Handoff)
	assert.Equal(t, PhaseHandoff, e.Phase())
	assert.Equal(t, 0, e.Snapshot().PendingRoll)
	assert.False(t, e.Snapshot().ExtraTurn)

	out = e.HandoffElapsed()
	require.True(t, out.Accepted)
	assert.Equal(t, match.Red, e.Current())
	assert.Equal(t, PhaseAwaitingRoll, e.Phase())
	assert.Equal(t, []match.Color{match.Red}, rec.Turns)
	assert.Equal(t, "Red's turn! Roll the dice.", rec.LastMessage())
}

func TestFaceFourKeepsTheTurn(t *testing.T) {
	e, rec := scenario(t, 9, match.Blue, map[int]match.Color{
		27: match.Blue,
		4:  match.Red,
	}, dice.FaceFour)

	e.Roll()
	out := e.Select(ref(27, match.Blue))
	require.True(t, out.Accepted)
	assert.Zero(t, out.Handoff)

	snap := e.Snapshot()
	assert.Equal(t, match.Blue, snap.Current)
	assert.Equal(t, 0, snap.PendingRoll)
	assert.True(t, snap.ExtraTurn)
	assert.Equal(t, PhaseAwaitingRoll, snap.Phase)
	assert.Equal(t, "Blue can roll again!", rec.LastMessage())
}

func TestSelectionRejections(t *testing.T) {
	e, rec := scenario(t, 9, match.Blue, map[int]match.Color{
		27: match.Blue,
		28: match.Blue,
		3:  match.Red,
		0:  match.Blue,
	}, dice.FaceOne)
	frozen, _ := e.state.Board.Piece(0)
	frozen.ReachedFarRow = true

	assert.ErrorIs(t, e.Select(ref(27, match.Blue)).Reason, ErrNoRoll)
	assert.Equal(t, "Roll the dice first!", rec.LastMessage())

	e.Roll()
	before := e.Snapshot()

	tests := []struct {
		name   string
		piece  match.PieceRef
		reason error
	}{
		{"opponent piece", ref(3, match.Red), ErrNotYourPiece},
		{"frozen piece", ref(0, match.Blue), ErrPieceFrozen},
		{"own piece ahead", ref(27, match.Blue), ErrOwnPiece},
		{"empty cell", ref(15, match.Blue), ErrUnknownPiece},
		{"wrong colour in ref", ref(28, match.Red), ErrUnknownPiece},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := e.Select(tc.piece)
			assert.False(t, out.Accepted)
			assert.ErrorIs(t, out.Reason, tc.reason)
			assert.Equal(t, RejectionMessage(tc.reason), rec.LastMessage())
			assert.Equal(t, before, e.Snapshot(), "rejections never mutate the match")
		})
	}

	assert.ErrorIs(t, e.Roll().Reason, ErrRollPending)
	assert.ErrorIs(t, e.Choose(12).Reason, ErrNoBranchPending)
}

func TestSecondRollDoesNotDrawTheDie(t *testing.T) {
	e, _ := scenario(t, 9, match.Blue, map[int]match.Color{
		27: match.Blue,
		3:  match.Red,
	}, dice.FaceTwo)
	die := e.die.(*dice.Sequence)

	require.True(t, e.Roll().Accepted)
	assert.ErrorIs(t, e.Roll().Reason, ErrRollPending)
	assert.Equal(t, 1, die.Rolled())
	assert.Equal(t, 2, e.Snapshot().PendingRoll)
}

func TestFarRowReentryIsVetoed(t *testing.T) {
	e, _ := scenario(t, 9, match.Blue, map[int]match.Color{
		10: match.Blue,
		4:  match.Red,
	})
	p, _ := e.state.Board.Piece(10)
	p.ReachedFarRow = true

	out := e.apply(SelectPiece{Piece: ref(10, match.Blue)}, p, 10, 2)
	assert.ErrorIs(t, out.Reason, ErrFarRowReentry)
	idx, _ := e.state.Board.IndexOf(10)
	assert.Equal(t, 10, idx)
}

func TestEventsDuringHandoffAreQueued(t *testing.T) {
	e, rec := scenario(t, 9, match.Blue, map[int]match.Color{
		27: match.Blue,
		4:  match.Red,
	}, dice.FaceTwo, dice.FaceFour)

	e.Roll()
	out := e.Select(ref(27, match.Blue))
	require.Equal(t, DefaultTurnDelay, out.Handoff)

	out = e.Roll()
	assert.True(t, out.Queued)
	assert.False(t, out.Accepted)
	assert.Equal(t, 1, e.Snapshot().Queued)
	assert.Len(t, rec.Rolls, 1, "queued roll is not thrown yet")

	e.HandoffElapsed()
	assert.Equal(t, match.Red, e.Current())
	require.Len(t, rec.Rolls, 2)
	assert.Equal(t, match.Red, rec.Rolls[1].Player)
	assert.Equal(t, dice.FaceFour, rec.Rolls[1].Face)
	assert.Equal(t, PhaseAwaitingSelection, e.Phase())
	assert.Equal(t, 0, e.Snapshot().Queued)
}

func TestHandoffElapsedOutsideHandoff(t *testing.T) {
	e, rec := scenario(t, 9, match.Blue, map[int]match.Color{27: match.Blue, 4: match.Red})
	out := e.HandoffElapsed()
	assert.ErrorIs(t, out.Reason, ErrNotHandingOff)
	assert.Empty(t, rec.Messages)
}

func TestZeroDelaySwitchesImmediately(t *testing.T) {
	rec := &Recorder{}
	e := New(dice.NewSequence(dice.FaceThree), rec, Options{})
	e.Start(9, match.Red)
	e.Roll()

	// 3 steps from 8 runs along row 0 to 5, which is red's own.
	_, err := e.state.Board.Remove(5)
	require.NoError(t, err)

	out := e.Select(ref(8, match.Red))
	require.True(t, out.Accepted)
	assert.Zero(t, out.Handoff)
	assert.Equal(t, match.Blue, e.Current())
	assert.Equal(t, PhaseAwaitingRoll, e.Phase())
}

func TestPassTurn(t *testing.T) {
	e, rec := scenario(t, 9, match.Blue, map[int]match.Color{
		27: match.Blue,
		28: match.Blue,
		29: match.Blue,
		4:  match.Red,
	}, dice.FaceOne, dice.FaceTwo)

	assert.ErrorIs(t, e.Pass().Reason, ErrNoRoll)

	// 27 and 28 are blocked by their neighbours, 29 can move.
	e.Roll()
	moves := e.LegalMoves()
	require.Len(t, moves, 1)
	assert.Equal(t, match.PieceID(29), moves[0].Piece.ID)
	assert.Equal(t, []int{30}, moves[0].Destinations)
	assert.ErrorIs(t, e.Pass().Reason, ErrMovesAvailable)

	// Freeze everything: nothing can move, so the pass is accepted.
	for _, id := range []match.PieceID{27, 28, 29} {
		p, _ := e.state.Board.Piece(id)
		p.ReachedFarRow = true
	}
	assert.Empty(t, e.LegalMoves())
	out := e.Pass()
	require.True(t, out.Accepted)
	assert.Zero(t, out.Handoff, "a one keeps the turn even when passed")
	assert.Equal(t, "Blue can roll again!", rec.LastMessage())

	e.Roll()
	out = e.Pass()
	require.True(t, out.Accepted)
	assert.Equal(t, DefaultTurnDelay, out.Handoff)
	assert.Contains(t, rec.Messages, "Blue has no move and passes.")
}

func TestLegalMovesListsBranches(t *testing.T) {
	e, _ := scenario(t, 9, match.Red, map[int]match.Color{
		22: match.Red,
		35: match.Blue,
	}, dice.FaceZero)

	assert.Empty(t, e.LegalMoves(), "no moves before the roll")
	e.Roll()
	moves := e.LegalMoves()
	require.Len(t, moves, 1)
	assert.True(t, moves[0].Branch)
	assert.Equal(t, []int{28, 10}, moves[0].Destinations)
}

func TestResetDiscardsMatch(t *testing.T) {
	rec := &Recorder{}
	e := New(dice.NewSequence(dice.FaceTwo), rec, DefaultOptions())
	e.Start(9, match.Blue)
	e.Roll()

	out := e.Reset(13, match.Red)
	require.True(t, out.Accepted)
	assert.Equal(t, 2, rec.Started)

	snap := e.Snapshot()
	assert.Equal(t, 13, snap.Columns)
	assert.Equal(t, match.Red, snap.Current)
	assert.Equal(t, PhaseAwaitingRoll, snap.Phase)
	assert.Equal(t, 0, snap.PendingRoll)
	assert.False(t, snap.HasFace)
}

func TestEngineLogsRejections(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	e := New(dice.NewSequence(dice.FaceOne), nil, Options{TurnDelay: time.Second, Logger: logger})
	e.Start(9, match.Blue)
	e.Select(ref(27, match.Blue))

	assert.Contains(t, buf.String(), "event rejected")
	assert.Contains(t, buf.String(), "event=select")
}

func TestRecorderTailIsACopy(t *testing.T) {
	rec := &Recorder{Messages: make([]string, 0, 8)}
	rec.OnMessage("one")
	rec.OnMessage("two")
	rec.OnMessage("three")

	tail := rec.Tail(2)
	assert.Equal(t, []string{"two", "three"}, tail)
	tail[0] = "changed"
	assert.Equal(t, "two", rec.Messages[1])

	all := rec.Tail(10)
	rec.OnMessage("four")
	assert.Equal(t, []string{"one", "two", "three"}, all)
	assert.Len(t, append(all, "x"), 4)
	assert.Equal(t, "four", rec.Messages[3], "appending to a tail leaves the recorder alone")
	assert.Empty(t, rec.Tail(0))
}
