package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/tracker"
	"github.com/julianstephens/potato/internal/tui/components/datestrip"
	"github.com/julianstephens/potato/internal/tui/components/garden"
)

var faces = map[tracker.Mood]string{
	tracker.MoodSleepy:  "(-_-) zzz",
	tracker.MoodNeutral: "(•_•)",
	tracker.MoodHappy:   "(^_^)",
	tracker.MoodExcited: "\\(^o^)/",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = m.viewHabits()
	case constants.StateGarden:
		content = m.viewGarden()
	case constants.StateAddHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active != constants.StateGarden {
		active = constants.StateHabits
	}
	var tabs []string
	for i, title := range []string{"Habits", "Garden"} {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHabits() string {
	v := m.tracker.View()

	summary := fmt.Sprintf("%s  %d/%d done  %s",
		m.bar.ViewAs(float64(v.Progress)/100),
		v.Completed, v.Total,
		faceStyle.Render(faces[v.Mood]),
	)

	rows := []string{
		datestrip.Render(m.tracker.DateStrip()),
		"",
		summary,
	}
	if v.CanWater && m.watering == nil {
		rows = append(rows, hintStyle.Render(tracker.HintWaterReady))
	}
	rows = append(rows, m.list.View(), "", messageStyle.Render(m.message))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) viewGarden() string {
	message := ""
	if m.watering != nil {
		message = m.status
	}
	return docStyle.Render(garden.Render(m.tracker.View(), message, m.watering != nil, m.width))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", m.pendingDelete.Title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}
