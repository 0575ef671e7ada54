package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/logger"
	"github.com/julianstephens/potato/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetWidth(msg.Width)
		return m, nil
	case motivationMsg:
		m.message = string(msg)
		return m, waitForMotivation(m.motivationCh)
	case pouredMsg, harvestedMsg, settledMsg:
		return m, m.updateWatering(msg)
	}

	switch m.state {
	case constants.StateAddHabit:
		return m, m.updateAddHabit(msg)
	case constants.StateConfirmDelete:
		return m, m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		if _, _, err := m.tracker.ToggleHabit(msg.ID); err != nil {
			m.err = err
		}
		m.refresh()
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.pendingDelete = msg
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.finishWatering()
		m.debounce.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		if m.state == constants.StateHabits {
			m.state = constants.StateGarden
			return m, nil
		}
		// Coming back to the list always fetches a fresh line.
		m.state = constants.StateHabits
		m.lastProgress = -1
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Water):
		return m, m.startWatering()
	}

	if m.state != constants.StateHabits {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDay(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextDay):
		m.shiftDay(1)
		return m, nil
	case key.Matches(msg, m.keys.Today):
		m.tracker.SelectToday()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) shiftDay(n int) {
	if err := m.tracker.ShiftDay(n); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = ""
	m.refresh()
}

// updateAddHabit handles the add habit state
func (m *Model) updateAddHabit(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		fm := m.habitForm
		h, err := m.tracker.AddHabit(fm.Title, fm.ResolvedCategory(), fm.Link)
		if err != nil {
			logger.Warn("Failed to add habit", "error", err)
			m.err = err
		} else {
			m.err = nil
			m.status = "Added " + h.Title
		}
		m.state = m.previousState
		m.refresh()
		return nil
	case huh.StateAborted:
		m.state = m.previousState
		return nil
	}
	return cmd
}

// updateConfirmDelete handles the delete confirmation state
func (m *Model) updateConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if _, err := m.tracker.RemoveHabit(m.pendingDelete.ID); err != nil {
			m.err = err
		} else {
			m.status = "Deleted " + m.pendingDelete.Title
		}
		m.state = m.previousState
		m.refresh()
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = m.previousState
	}
	return nil
}
