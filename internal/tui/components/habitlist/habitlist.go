package habitlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/potato/internal/habits"
	"github.com/julianstephens/potato/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID    string
	Title string
}

var (
	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true).
			MarginTop(1)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true)
	todoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// Model is the category-grouped habit list of one day.
type Model struct {
	Keys   KeyMap
	groups []habits.Group
	flat   []models.Habit
	cursor int
	width  int
}

func New() Model {
	return Model{Keys: DefaultKeyMap()}
}

// SetGroups replaces the rows, keeping the cursor on the same habit when it
// is still present.
func (m *Model) SetGroups(groups []habits.Group) {
	var current string
	if h, ok := m.Selected(); ok {
		current = h.ID
	}

	m.groups = groups
	m.flat = nil
	for _, g := range groups {
		m.flat = append(m.flat, g.Habits...)
	}

	m.cursor = min(m.cursor, max(len(m.flat)-1, 0))
	for i, h := range m.flat {
		if h.ID == current {
			m.cursor = i
			break
		}
	}
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (models.Habit, bool) {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return models.Habit{}, false
	}
	return m.flat[m.cursor], true
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.cursor < len(m.flat)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.Keys.Add):
		return m, func() tea.Msg { return AddHabitMsg{} }
	case key.Matches(keyMsg, m.Keys.Toggle):
		if h, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleHabitMsg{ID: h.ID} }
		}
	case key.Matches(keyMsg, m.Keys.Delete):
		if h, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID, Title: h.Title} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.flat) == 0 {
		return emptyStyle.Render("\n  No habits for this day.\n  Press 'a' to add one.")
	}

	var b strings.Builder
	row := 0
	for _, g := range m.groups {
		b.WriteString(categoryStyle.Render(g.Category))
		b.WriteString("\n")
		for _, h := range g.Habits {
			b.WriteString(m.renderRow(h, row == m.cursor))
			b.WriteString("\n")
			row++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderRow(h models.Habit, selected bool) string {
	pointer := "  "
	if selected {
		pointer = cursorStyle.Render("> ")
	}
	box, style := "○", todoStyle
	if h.Completed {
		box, style = "●", doneStyle
	}
	line := fmt.Sprintf("%s%s %s", pointer, box, style.Render(h.Title))
	if h.Link != "" {
		line += " " + linkStyle.Render("↗ "+h.Link)
	}
	return line
}
