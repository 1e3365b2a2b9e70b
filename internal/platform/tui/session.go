package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stickrace/internal/core"
	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/registry"
	"github.com/vovakirdan/stickrace/internal/storage"
)

// SessionOptions configures a session.
type SessionOptions struct {
	Store     *storage.Store // nil disables history
	Logger    *log.Logger
	Config    core.RuntimeConfig
	Variant   string      // variant preselected in the menu
	Starting  match.Color // side preselected in the menu
	TurnDelay time.Duration
	// Direct skips the menu and starts Variant right away.
	Direct bool
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenBoard
	screenHistory
)

// SessionModel manages the full session flow: menu -> match or history -> menu.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	current  sessionScreen
	menu     MenuModel
	board    *BoardModel
	history  *HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Variant == "" {
		opts.Variant = registry.DefaultVariant
	}

	m := SessionModel{
		opts:   opts,
		config: opts.Config,
		menu:   NewMenuModel(opts.Variant, opts.Starting, opts.Store != nil, opts.Config.ScreenW, opts.Config.ScreenH),
	}

	if opts.Direct {
		if v, err := registry.Lookup(opts.Variant); err == nil {
			m.startBoard(v, m.menu.Starting())
		}
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenBoard:
		return m.updateBoard(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		m.startBoard(*selected, m.menu.Starting())
		m.menu = m.menu.Resume()
		return m, nil
	}

	if m.menu.WantsHistory() {
		m.menu = m.menu.Resume()
		var source HistorySource
		if m.opts.Store != nil {
			source = m.opts.Store
		}
		history := NewHistoryModel(source, m.config.ScreenW, m.config.ScreenH)
		m.history = &history
		m.current = screenHistory
		return m, nil
	}

	return m, cmd
}

func (m *SessionModel) startBoard(v registry.Variant, starting match.Color) {
	var saver storage.MatchSaver
	if m.opts.Store != nil {
		saver = m.opts.Store
	}

	board := NewBoardModel(BoardSettings{
		Variant:   v,
		Starting:  starting,
		TurnDelay: m.opts.TurnDelay,
		Seed:      m.config.Seed,
	}, saver, m.opts.Logger, m.config)
	m.board = &board
	m.current = screenBoard
}

// updateBoard handles updates while a match is on screen.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.board.Update(msg)
	if board, ok := newModel.(BoardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.BackToMenu() {
		m.board = nil
		m.current = screenMenu
		return m, nil
	}

	return m, cmd
}

// updateHistory handles updates while the history browser is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(HistoryModel); ok {
		m.history = &history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.history = nil
		m.current = screenMenu
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenBoard:
		return m.board.View()
	case screenHistory:
		return m.history.View()
	}
	return m.menu.View()
}

// Run starts a local session in the alternate screen and blocks until
// the user quits.
func Run(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
