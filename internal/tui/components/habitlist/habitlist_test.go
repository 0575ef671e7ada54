package habitlist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/potato/internal/habits"
	"github.com/julianstephens/potato/internal/models"
)

func sampleGroups() []habits.Group {
	return []habits.Group{
		{Category: "学习", Habits: []models.Habit{{ID: "a", Title: "Read"}}},
		{Category: "生活", Habits: []models.Habit{
			{ID: "b", Title: "Water", Completed: true},
			{ID: "c", Title: "Run", Link: "Strava"},
		}},
	}
}

func press(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationAndMessages(t *testing.T) {
	m := New()
	m.SetGroups(sampleGroups())

	m, _ = m.Update(press("up"))
	if m.Cursor() != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor())
	}
	for i := 0; i < 5; i++ {
		m, _ = m.Update(press("down"))
	}
	if h, _ := m.Selected(); h.ID != "c" {
		t.Errorf("selected %q after moving down, want c", h.ID)
	}

	_, cmd := m.Update(press(" "))
	if cmd == nil {
		t.Fatal("toggle produced no command")
	}
	if msg, ok := cmd().(ToggleHabitMsg); !ok || msg.ID != "c" {
		t.Errorf("toggle message = %#v", cmd())
	}

	_, cmd = m.Update(press("d"))
	if msg, ok := cmd().(DeleteHabitMsg); !ok || msg.Title != "Run" {
		t.Errorf("delete message = %#v", cmd())
	}

	_, cmd = m.Update(press("a"))
	if _, ok := cmd().(AddHabitMsg); !ok {
		t.Errorf("add message = %#v", cmd())
	}
}

func TestSetGroupsKeepsSelection(t *testing.T) {
	m := New()
	m.SetGroups(sampleGroups())
	m, _ = m.Update(press("down"))

	groups := sampleGroups()
	groups[0].Habits = append([]models.Habit{{ID: "z", Title: "New"}}, groups[0].Habits...)
	m.SetGroups(groups)
	if h, _ := m.Selected(); h.ID != "b" {
		t.Errorf("selection moved to %q", h.ID)
	}

	m.SetGroups(nil)
	if _, ok := m.Selected(); ok {
		t.Error("empty list has a selection")
	}
	if _, cmd := m.Update(press("enter")); cmd != nil {
		t.Error("toggle on an empty list produced a command")
	}
}

func TestView(t *testing.T) {
	m := New()
	if !strings.Contains(m.View(), "No habits for this day.") {
		t.Errorf("empty view = %q", m.View())
	}
	m.SetGroups(sampleGroups())
	out := m.View()
	for _, want := range []string{"学习", "生活", "○ Read", "> ", "● Water", "↗ Strava"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
}
