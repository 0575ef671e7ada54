package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/potato/internal/growth"
)

type (
	pouredMsg    struct{}
	harvestedMsg struct{}
	settledMsg   struct{}
)

func after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// startWatering takes the watering lock and schedules the pour. A watering
// that is already running ignores the key.
func (m *Model) startWatering() tea.Cmd {
	if m.watering != nil {
		return nil
	}
	if m.tracker.View().HasWateredToday {
		m.err = growth.ErrAlreadyWatered
		return nil
	}
	w, err := m.tracker.BeginWatering()
	if err != nil {
		m.err = err
		return nil
	}
	m.watering = w
	m.err = nil
	m.status = "Pouring water..."
	return after(m.timings.Pour, pouredMsg{})
}

func (m *Model) updateWatering(msg tea.Msg) tea.Cmd {
	if m.watering == nil {
		return nil
	}
	switch msg.(type) {
	case pouredMsg:
		m.watering.Pour()
		if m.watering.WillHarvest() {
			m.status = "Harvesting..."
			return after(m.timings.Harvest, harvestedMsg{})
		}
		return m.commitWatering()
	case harvestedMsg:
		return m.commitWatering()
	case settledMsg:
		m.finishWatering()
	}
	return nil
}

func (m *Model) commitWatering() tea.Cmd {
	r, err := m.watering.Commit()
	if err != nil {
		m.err = err
	}
	if r.After.LastWateredDate == "" {
		m.finishWatering()
		m.status = ""
		return nil
	}

	m.status = r.Message()
	m.refresh()
	if r.Harvested() {
		m.finishWatering()
		return nil
	}
	return after(m.timings.Settle, settledMsg{})
}

func (m *Model) finishWatering() {
	if m.watering != nil {
		m.watering.Release()
		m.watering = nil
	}
}
