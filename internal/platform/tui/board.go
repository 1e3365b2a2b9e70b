package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stickrace/internal/core"
	"github.com/vovakirdan/stickrace/internal/dice"
	"github.com/vovakirdan/stickrace/internal/engine"
	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/registry"
	"github.com/vovakirdan/stickrace/internal/storage"
)

// BoardSettings describes the match a BoardModel plays.
type BoardSettings struct {
	Variant   registry.Variant
	Starting  match.Color // overrides the variant when set
	TurnDelay time.Duration
	Seed      int64         // 0 = time based
	Die       engine.Roller // overrides Seed when set
}

// BoardModel is the Bubble Tea model for one hot-seat match: both
// players share the keyboard and take turns.
type BoardModel struct {
	engine   *engine.Engine
	events   *engine.Recorder
	history  *storage.Recorder // nil without a match store
	settings BoardSettings

	screen *core.Screen
	keys   BoardKeyMap
	help   help.Model
	config core.RuntimeConfig

	cursor   int
	autoFlip bool
	handoff  int // sequence of the last scheduled HandoffMsg
	notice   string

	quitting   bool
	backToMenu bool
}

// NewBoardModel creates the model and starts the match. saver may be nil,
// in which case nothing is recorded.
func NewBoardModel(settings BoardSettings, saver storage.MatchSaver, logger *log.Logger, cfg core.RuntimeConfig) BoardModel {
	if settings.Starting == match.NoColor {
		settings.Starting = settings.Variant.Starting
	}
	die := settings.Die
	if die == nil {
		die = dice.New(dice.NewSeededSource(settings.Seed), logger)
	}

	events := &engine.Recorder{}
	observers := engine.Observers{events}
	if logger != nil {
		observers = append(observers, engine.LogObserver{Logger: logger})
	}

	var history *storage.Recorder
	if saver != nil {
		history = storage.NewRecorder(saver, logger)
		history.SetVariant(settings.Variant.ID)
		observers = append(observers, history)
	}

	v := settings.Variant
	v.Starting = settings.Starting
	e := v.NewEngine(die, observers, engine.Options{TurnDelay: settings.TurnDelay, Logger: logger})

	h := help.New()
	h.Width = cfg.ScreenW

	m := BoardModel{
		engine:   e,
		events:   events,
		history:  history,
		settings: settings,
		screen:   core.NewScreen(cfg.ScreenW, boardScreenHeight(cfg.ScreenH)),
		keys:     DefaultBoardKeyMap(),
		help:     h,
		config:   cfg,
		cursor:   -1,
		autoFlip: true,
	}
	m.syncCursor()
	return m
}

func boardScreenHeight(h int) int {
	return max(h-2, 1)
}

// Init implements tea.Model. The match is already running.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, boardScreenHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case HandoffMsg:
		if msg.Seq != m.handoff {
			return m, nil
		}
		cmd := m.after(m.engine.HandoffElapsed())
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.abandon()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.abandon()
		m.backToMenu = true
		return m, nil

	case core.ActionUp:
		m.cursor = m.layout().move(m.cursor, -1, 0)
	case core.ActionDown:
		m.cursor = m.layout().move(m.cursor, 1, 0)
	case core.ActionLeft:
		m.cursor = m.layout().move(m.cursor, 0, -1)
	case core.ActionRight:
		m.cursor = m.layout().move(m.cursor, 0, 1)

	case core.ActionRoll:
		cmd := m.after(m.engine.Roll())
		return m, cmd

	case core.ActionConfirm:
		return m.confirm()

	case core.ActionPass:
		cmd := m.after(m.engine.Pass())
		return m, cmd

	case core.ActionCycle:
		m.cycle()

	case core.ActionFlip:
		m.autoFlip = !m.autoFlip

	case core.ActionRestart:
		m.handoff++
		m.engine.Reset(m.settings.Variant.Columns, m.settings.Starting)
		m.syncCursor()
	}

	return m, nil
}

// confirm picks the piece under the cursor, or lands on the cell under
// the cursor when a branch is open.
func (m BoardModel) confirm() (tea.Model, tea.Cmd) {
	if m.engine.Phase() == engine.PhaseAwaitingBranch {
		cmd := m.after(m.engine.Choose(m.cursor))
		return m, cmd
	}

	ref, ok := m.engine.PieceAt(m.cursor)
	if !ok {
		m.notice = "There is no piece under the cursor."
		return m, nil
	}
	cmd := m.after(m.engine.Select(ref))
	return m, cmd
}

// after reacts to an engine outcome: it moves the cursor where the
// player will want it and schedules the end of a handoff.
func (m *BoardModel) after(out engine.Outcome) tea.Cmd {
	m.syncCursor()
	if out.Handoff <= 0 {
		return nil
	}
	m.handoff++
	return handoffCmd(out.Handoff, m.handoff)
}

// cycle jumps to the other branch option, or to the next piece that
// can move.
func (m *BoardModel) cycle() {
	if opts, ok := m.engine.BranchOptions(); ok {
		if m.cursor == opts[0] {
			m.cursor = opts[1]
		} else {
			m.cursor = opts[0]
		}
		return
	}

	targets := m.targets()
	if len(targets) == 0 {
		return
	}
	for _, idx := range targets {
		if idx > m.cursor {
			m.cursor = idx
			return
		}
	}
	m.cursor = targets[0]
}

// targets lists the cells the cursor cycles through: movable pieces while
// a roll is pending, otherwise every unfrozen piece of the player to move.
func (m *BoardModel) targets() []int {
	var targets []int
	for _, mv := range m.engine.LegalMoves() {
		targets = append(targets, mv.From)
	}
	if len(targets) > 0 {
		return targets
	}

	snap := m.engine.Snapshot()
	for i, cell := range snap.Cells {
		if cell.Occupied && cell.Color == snap.Current && !cell.Frozen {
			targets = append(targets, i)
		}
	}
	sort.Ints(targets)
	return targets
}

func (m *BoardModel) syncCursor() {
	if opts, ok := m.engine.BranchOptions(); ok {
		if m.cursor != opts[0] && m.cursor != opts[1] {
			m.cursor = opts[0]
		}
		return
	}

	targets := m.targets()
	for _, idx := range targets {
		if idx == m.cursor {
			return
		}
	}
	if len(targets) > 0 {
		m.cursor = targets[0]
	} else if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BoardModel) abandon() {
	if m.history != nil {
		m.history.Abandon()
	}
}

func (m BoardModel) flipped() bool {
	return m.autoFlip && m.engine.Current() == match.Red
}

func (m BoardModel) layout() boardLayout {
	return newBoardLayout(m.engine.Grid(), m.screen.Width(), m.flipped())
}

func (m BoardModel) marks(snap engine.Snapshot) boardMarks {
	movable := make(map[int]bool)
	for _, mv := range m.engine.LegalMoves() {
		movable[mv.From] = true
	}
	return boardMarks{cursor: m.cursor, movable: movable, from: snap.BranchFrom}
}

// View renders the current state to a string for display.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.engine.Snapshot()
	v := boardView{
		title:    fmt.Sprintf("S T I C K R A C E   %s · %d columns", m.settings.Variant.Title, snap.Columns),
		snap:     snap,
		layout:   m.layout(),
		marks:    m.marks(snap),
		log:      m.events.Tail(logLines),
		autoFlip: m.autoFlip,
		notice:   m.notice,
	}
	v.draw(m.screen)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Engine exposes the match engine.
func (m BoardModel) Engine() *engine.Engine {
	return m.engine
}

// Cursor returns the cell index under the cursor.
func (m BoardModel) Cursor() int {
	return m.cursor
}

// MatchID returns the ID the running match is recorded under, or "".
func (m BoardModel) MatchID() string {
	if m.history == nil {
		return ""
	}
	return m.history.MatchID()
}

// IsQuitting returns true if the user requested to quit entirely.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m BoardModel) BackToMenu() bool {
	return m.backToMenu
}
