package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/registry"
)

// MenuItemKind tells what a menu entry does.
type MenuItemKind int

const (
	MenuItemVariant MenuItemKind = iota
	MenuItemHistory
	MenuItemQuit
)

// MenuItem represents a selectable entry in the setup menu.
type MenuItem struct {
	Kind    MenuItemKind
	Title   string
	Variant registry.Variant
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sideStyles     = map[match.Color]lipgloss.Style{
		match.Red:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		match.Blue: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
)

// MenuModel is the Bubble Tea model for the match setup menu: pick a
// board and the side that moves first.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	starting    match.Color
	width       int
	height      int
	quitting    bool
	selected    *registry.Variant
	openHistory bool
	hasHistory  bool
}

// NewMenuModel creates a menu with the cursor on the preferred variant.
// The history entry is only offered when hasHistory is set.
func NewMenuModel(preferred string, starting match.Color, hasHistory bool, width, height int) MenuModel {
	variants := registry.List()
	items := make([]MenuItem, 0, len(variants)+2)
	cursor := 0

	for _, v := range variants {
		if v.ID == preferred {
			cursor = len(items)
		}
		items = append(items, MenuItem{Kind: MenuItemVariant, Title: v.Title, Variant: v})
	}
	if hasHistory {
		items = append(items, MenuItem{Kind: MenuItemHistory, Title: "Match history"})
	}
	items = append(items, MenuItem{Kind: MenuItemQuit, Title: "Quit"})

	if starting == match.NoColor {
		starting = match.Blue
	}

	return MenuModel{
		items:      items,
		cursor:     cursor,
		starting:   starting,
		width:      width,
		height:     height,
		hasHistory: hasHistory,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft, MenuActionRight:
		m.starting = m.starting.Opponent()

	case MenuActionHistory:
		if m.hasHistory {
			m.openHistory = true
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.Kind {
		case MenuItemVariant:
			v := item.Variant
			m.selected = &v
		case MenuItemHistory:
			m.openHistory = true
		case MenuItemQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  S T I C K R A C E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("A dice race for two players", m.width))
	b.WriteString("\n\n")

	side := sideStyles[m.starting].Render(m.starting.Title())
	b.WriteString(centerText("First to roll:  < "+side+" >", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + item.Title
		if item.Kind == MenuItemVariant {
			line = fmt.Sprintf("%s%-9s %2d columns", cursor, item.Title, item.Variant.Columns)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if item := m.items[m.cursor]; item.Kind == MenuItemVariant && item.Variant.Description != "" {
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(item.Variant.Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: First side  |  Enter: Play  |  Q: Quit"
	if m.hasHistory {
		controls = "Up/Down: Navigate  |  Left/Right: First side  |  Enter: Play  |  Tab: History  |  Q: Quit"
	}
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen variant, or nil if none was chosen.
func (m MenuModel) Selected() *registry.Variant {
	return m.selected
}

// Starting returns the side picked to move first.
func (m MenuModel) Starting() match.Color {
	return m.starting
}

// WantsHistory returns true if the user asked for the match history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Resume clears the last choice so the menu can be shown again with the
// same cursor and side.
func (m MenuModel) Resume() MenuModel {
	m.selected = nil
	m.openHistory = false
	return m
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
