package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/stickrace/internal/storage"
)

func openHistoryStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.SaveMatch(storage.MatchRecord{
		MatchID:   "match-one",
		Variant:   "classic",
		Columns:   9,
		Starting:  "blue",
		Winner:    "blue",
		EndReason: storage.EndCompleted,
		Moves:     2,
		Duration:  75,
	}, []storage.MoveRecord{
		{MatchID: "match-one", Seq: 1, Color: "blue", Piece: 27, Face: 2, From: 27, To: 29, Captured: -1},
		{MatchID: "match-one", Seq: 2, Color: "red", Piece: 4, Face: 3, From: 4, To: 1, Captured: -1},
	})
	require.NoError(t, err)
	return store
}

func updateHistory(t *testing.T, m HistoryModel, msg tea.Msg) HistoryModel {
	t.Helper()
	next, _ := m.Update(msg)
	hm, ok := next.(HistoryModel)
	require.True(t, ok)
	return hm
}

func TestHistoryModelBrowse(t *testing.T) {
	m := NewHistoryModel(openHistoryStore(t), 100, 30)

	view := m.View()
	assert.Contains(t, view, "MATCH HISTORY")
	assert.Contains(t, view, "classic")
	assert.Contains(t, view, "1:15")
	assert.Contains(t, view, "Matches   1")

	m = updateHistory(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.InDetail())
	view = m.View()
	assert.Contains(t, view, "MATCH match-on - classic")
	assert.Contains(t, view, "27→29")

	m = updateHistory(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.InDetail())
	assert.False(t, m.IsGoingBack())

	m = updateHistory(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsGoingBack())
}

func TestHistoryModelWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)
	assert.Contains(t, m.View(), "History is disabled.")

	m = updateHistory(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.InDetail())
}

func TestHistoryModelEmpty(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer store.Close()

	m := NewHistoryModel(store, 60, 20)
	assert.Contains(t, m.View(), "No matches recorded yet.")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{75, "1:15"},
		{3600, "60:00"},
	}

	for _, tc := range tests {
		if got := FormatDuration(tc.seconds); got != tc.expected {
			t.Errorf("FormatDuration(%d) = %q, expected %q", tc.seconds, got, tc.expected)
		}
	}
}
