package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stickrace/internal/core"
	"github.com/vovakirdan/stickrace/internal/dice"
	"github.com/vovakirdan/stickrace/internal/engine"
	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/registry"
	"github.com/vovakirdan/stickrace/internal/storage"
)

type fakeSaver struct {
	matches []storage.MatchRecord
	moves   [][]storage.MoveRecord
}

func (f *fakeSaver) SaveMatch(m storage.MatchRecord, moves []storage.MoveRecord) (int64, error) {
	f.matches = append(f.matches, m)
	f.moves = append(f.moves, moves)
	return int64(len(f.matches)), nil
}

func newTestBoard(t *testing.T, saver storage.MatchSaver, faces ...dice.Face) BoardModel {
	t.Helper()
	v, err := registry.Lookup("classic")
	require.NoError(t, err)

	return NewBoardModel(BoardSettings{
		Variant:   v,
		TurnDelay: time.Second,
		Die:       dice.NewSequence(faces...),
	}, saver, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
}

func press(t *testing.T, m BoardModel, msg tea.Msg) (BoardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(BoardModel)
	require.True(t, ok)
	return bm, cmd
}

func TestBoardModelStartsOnFirstPiece(t *testing.T) {
	m := newTestBoard(t, nil, dice.FaceTwo)

	assert.Equal(t, engine.PhaseAwaitingRoll, m.Engine().Phase())
	assert.Equal(t, match.Blue, m.Engine().Current())
	assert.Equal(t, 27, m.Cursor())
	assert.Contains(t, m.View(), "Blue's turn")
}

func TestBoardModelStartingSideOverride(t *testing.T) {
	v, err := registry.Lookup("wide")
	require.NoError(t, err)

	m := NewBoardModel(BoardSettings{
		Variant:  v,
		Starting: match.Red,
		Die:      dice.NewSequence(dice.FaceTwo),
	}, nil, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	assert.Equal(t, match.Red, m.Engine().Current())
	assert.Equal(t, 11, m.Engine().Grid().Columns())
	assert.Equal(t, 0, m.Cursor())

	m, _ = press(t, m, runeKey('n'))
	assert.Equal(t, match.Red, m.Engine().Current(), "restart keeps the chosen side")
}

func TestBoardModelTurnWithHandoff(t *testing.T) {
	m := newTestBoard(t, nil, dice.FaceTwo)

	m, cmd := press(t, m, runeKey('r'))
	assert.Nil(t, cmd)
	require.Equal(t, engine.PhaseAwaitingSelection, m.Engine().Phase())
	assert.Equal(t, 34, m.Cursor(), "cursor jumps to the first movable piece")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 35, m.Cursor())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 34, m.Cursor(), "cycling wraps around")

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "a two hands the turn over after a delay")
	assert.Equal(t, engine.PhaseHandoff, m.Engine().Phase())
	ref, ok := m.Engine().PieceAt(26)
	require.True(t, ok)
	assert.Equal(t, match.PieceID(34), ref.ID)

	m, _ = press(t, m, HandoffMsg{Seq: 0})
	assert.Equal(t, engine.PhaseHandoff, m.Engine().Phase(), "stale tick is ignored")

	m, _ = press(t, m, HandoffMsg{Seq: 1})
	assert.Equal(t, engine.PhaseAwaitingRoll, m.Engine().Phase())
	assert.Equal(t, match.Red, m.Engine().Current())
	assert.Equal(t, 0, m.Cursor())
	assert.True(t, m.flipped(), "board turns for red")

	m, _ = press(t, m, runeKey('f'))
	assert.False(t, m.flipped())
}

func TestBoardModelConfirmOnEmptyCell(t *testing.T) {
	m := newTestBoard(t, nil, dice.FaceTwo)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 18, m.Cursor())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "There is no piece under the cursor.", m.notice)
	assert.Equal(t, engine.PhaseAwaitingRoll, m.Engine().Phase())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.notice, "notice clears on the next key")
}

func TestBoardModelRestartDropsPendingHandoff(t *testing.T) {
	m := newTestBoard(t, nil, dice.FaceTwo)

	m, _ = press(t, m, runeKey('r'))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, _ = press(t, m, runeKey('n'))
	assert.Equal(t, engine.PhaseAwaitingRoll, m.Engine().Phase())
	assert.Equal(t, 0, m.Engine().Snapshot().Moves)

	m, _ = press(t, m, HandoffMsg{Seq: 1})
	assert.Equal(t, match.Blue, m.Engine().Current(), "tick of the old match is ignored")
	assert.Equal(t, engine.PhaseAwaitingRoll, m.Engine().Phase())
}

func TestBoardModelBackAbandonsMatch(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestBoard(t, saver, dice.FaceFour)
	require.NotEmpty(t, m.MatchID())

	m, _ = press(t, m, runeKey('r'))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, m.Engine().Snapshot().Moves)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.True(t, m.BackToMenu())

	require.Len(t, saver.matches, 1)
	assert.Equal(t, storage.EndAbandoned, saver.matches[0].EndReason)
	assert.Equal(t, "classic", saver.matches[0].Variant)
	assert.Len(t, saver.moves[0], 1)
}

func TestBoardModelQuit(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestBoard(t, saver, dice.FaceTwo)

	m, cmd := press(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())
	assert.Empty(t, saver.matches, "a match without moves is not recorded")
}

func TestBoardModelResizeAndHelp(t *testing.T) {
	m := newTestBoard(t, nil, dice.FaceTwo)

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 28, m.screen.Height())

	m, _ = press(t, m, runeKey('?'))
	assert.True(t, m.help.ShowAll)
}
