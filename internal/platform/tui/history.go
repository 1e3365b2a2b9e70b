package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stickrace/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the stats sidebar
	sidebarWidth       = 24  // Width of the stats sidebar
	maxMatches         = 100 // Max matches to load
)

// HistorySource is the read side of the match store.
type HistorySource interface {
	RecentMatches(limit int) ([]storage.MatchRecord, error)
	Moves(matchID string) ([]storage.MoveRecord, error)
	Stats() (*storage.HistoryStats, error)
}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show moves"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing stored matches.
// It shows the list of recent matches and, on enter, the moves of one.
type HistoryModel struct {
	source      HistorySource
	matches     []storage.MatchRecord
	stats       *storage.HistoryStats
	moves       []storage.MoveRecord
	detail      *storage.MatchRecord // match whose moves are shown
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	err         error
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history browser. source may be nil.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	m := HistoryModel{
		source:      source,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads recent matches and the aggregate statistics.
func (m *HistoryModel) load() {
	m.matches, m.stats, m.err = nil, nil, nil
	if m.source == nil {
		return
	}

	matches, err := m.source.RecentMatches(maxMatches)
	if err != nil {
		m.err = err
		return
	}
	stats, err := m.source.Stats()
	if err != nil {
		m.err = err
		return
	}
	m.matches, m.stats = matches, stats
}

// createTable creates a table with the columns of the current mode.
func (m *HistoryModel) createTable() table.Model {
	var columns []table.Column
	if m.detail != nil {
		columns = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Side", Width: 6},
			{Title: "Piece", Width: 6},
			{Title: "Roll", Width: 5},
			{Title: "Move", Width: 10},
			{Title: "Captured", Width: 9},
		}
	} else {
		columns = []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Variant", Width: 9},
			{Title: "Width", Width: 5},
			{Title: "Start", Width: 5},
			{Title: "Winner", Width: 9},
			{Title: "Moves", Width: 5},
			{Title: "Time", Width: 6},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // header, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table for the current mode.
func (m *HistoryModel) updateTableRows() {
	var rows []table.Row
	if m.detail != nil {
		rows = make([]table.Row, len(m.moves))
		for i, mv := range m.moves {
			rows[i] = moveRow(mv)
		}
	} else {
		rows = make([]table.Row, len(m.matches))
		for i, rec := range m.matches {
			rows[i] = matchRow(rec)
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func matchRow(rec storage.MatchRecord) table.Row {
	winner := rec.Winner
	if winner == "" {
		winner = rec.EndReason
	}
	return table.Row{
		rec.CreatedAt.Local().Format("Jan 02 15:04"),
		rec.Variant,
		fmt.Sprintf("%d", rec.Columns),
		rec.Starting,
		winner,
		fmt.Sprintf("%d", rec.Moves),
		FormatDuration(rec.Duration),
	}
}

func moveRow(mv storage.MoveRecord) table.Row {
	captured := "-"
	if mv.Captured >= 0 {
		captured = fmt.Sprintf("%d", mv.Captured)
	}
	return table.Row{
		fmt.Sprintf("%d", mv.Seq),
		mv.Color,
		fmt.Sprintf("%d", mv.Piece),
		fmt.Sprintf("%d", mv.Face),
		fmt.Sprintf("%d→%d", mv.From, mv.To),
		captured,
	}
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// openDetail switches to the moves of the selected match.
func (m *HistoryModel) openDetail() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.matches) || m.source == nil {
		return
	}
	rec := m.matches[i]
	moves, err := m.source.Moves(rec.MatchID)
	if err != nil {
		m.err = err
		return
	}
	m.detail, m.moves = &rec, moves
	m.table = m.createTable()
	m.updateTableRows()
}

func (m *HistoryModel) closeDetail() {
	selected := m.selectedMatch()
	m.detail, m.moves = nil, nil
	m.table = m.createTable()
	m.updateTableRows()
	m.table.SetCursor(selected)
}

func (m HistoryModel) selectedMatch() int {
	if m.detail == nil {
		return m.table.Cursor()
	}
	for i, rec := range m.matches {
		if rec.MatchID == m.detail.MatchID {
			return i
		}
	}
	return 0
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.detail != nil {
				m.closeDetail()
				return m, nil
			}
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if m.detail == nil {
				m.openDetail()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "MATCH HISTORY"
	if m.detail != nil {
		title = fmt.Sprintf("MATCH %s - %s", shortID(m.detail.MatchID), m.detail.Variant)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table next to a stats sidebar.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(m.renderSidebar()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders a one-line summary above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if m.stats != nil {
		summary := fmt.Sprintf("%d matches  |  Red %d  |  Blue %d", m.stats.Matches, m.stats.RedWins, m.stats.BlueWins)
		b.WriteString(centerText(summary, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

func (m HistoryModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString("Totals\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	if m.stats == nil {
		b.WriteString("no data")
		return b.String()
	}

	fmt.Fprintf(&b, "Matches   %d\n", m.stats.Matches)
	fmt.Fprintf(&b, "Completed %d\n", m.stats.Completed)
	fmt.Fprintf(&b, "Red wins  %d\n", m.stats.RedWins)
	fmt.Fprintf(&b, "Blue wins %d\n", m.stats.BlueWins)
	fmt.Fprintf(&b, "Avg moves %.1f\n", m.stats.AvgMoves)
	if !m.stats.LastPlayed.IsZero() {
		fmt.Fprintf(&b, "Last      %s", m.stats.LastPlayed.Local().Format("Jan 02"))
	}
	return b.String()
}

// renderTableContent renders the table or an explanation why it is empty.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.source == nil:
		return emptyStyle.Render("History is disabled.\nNo match database is open.")
	case m.err != nil:
		return emptyStyle.Render("Could not read history:\n" + m.err.Error())
	case m.detail == nil && len(m.matches) == 0:
		return emptyStyle.Render("No matches recorded yet.\nFinish a match to see it here!")
	case m.detail != nil && len(m.moves) == 0:
		return emptyStyle.Render("This match has no moves.")
	}

	return m.table.View()
}

// InDetail reports whether the moves of one match are shown.
func (m HistoryModel) InDetail() bool {
	return m.detail != nil
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
