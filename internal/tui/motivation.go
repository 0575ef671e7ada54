package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type motivationMsg string

func (m *Model) requestMotivation(percent int) {
	svc, ch := m.motivation, m.motivationCh
	m.debounce.Trigger(context.Background(),
		func(ctx context.Context) string { return svc.Motivate(ctx, percent) },
		func(text string) { offer(ch, text) },
	)
}

// offer puts text in ch, replacing an undelivered line.
func offer(ch chan string, text string) {
	for {
		select {
		case ch <- text:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func waitForMotivation(ch chan string) tea.Cmd {
	return func() tea.Msg {
		return motivationMsg(<-ch)
	}
}
