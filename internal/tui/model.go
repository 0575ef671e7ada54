package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/motivation"
	"github.com/julianstephens/potato/internal/tracker"
	"github.com/julianstephens/potato/internal/tui/components/habitlist"
)

type Model struct {
	tracker       *tracker.Tracker
	motivation    *motivation.Service
	debounce      *motivation.Debouncer
	motivationCh  chan string
	message       string
	lastProgress  int
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	list          habitlist.Model
	bar           progress.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	pendingDelete habitlist.DeleteHabitMsg
	timings       tracker.Timings
	watering      *tracker.Watering
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

type Option func(*Model)

// WithTimings replaces the watering pauses.
func WithTimings(timings tracker.Timings) Option {
	return func(m *Model) { m.timings = timings }
}

// WithMotivationDelay sets how long progress must stay unchanged before a
// motivational line is requested.
func WithMotivationDelay(d time.Duration) Option {
	return func(m *Model) { m.debounce = motivation.NewDebouncer(d) }
}

func NewModel(t *tracker.Tracker, svc *motivation.Service, opts ...Option) Model {
	m := Model{
		tracker:      t,
		motivation:   svc,
		debounce:     motivation.NewDebouncer(constants.MotivationDebounce),
		motivationCh: make(chan string, 1),
		message:      constants.InitialMotivation,
		lastProgress: -1,
		state:        constants.StateHabits,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		list:         habitlist.New(),
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		timings:      tracker.DefaultTimings(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.list.Keys.Toggle, m.list.Keys.Add, m.keys.PrevDay, m.keys.NextDay)
	case constants.StateGarden:
		keys = append(keys, m.keys.Water)
	case constants.StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Water}
	days := []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Today}
	list := []key.Binding{m.list.Keys.Up, m.list.Keys.Down, m.list.Keys.Toggle, m.list.Keys.Add, m.list.Keys.Delete}
	return [][]key.Binding{global, days, list}
}

func (m Model) Init() tea.Cmd {
	return waitForMotivation(m.motivationCh)
}

// State is the active screen.
func (m Model) State() constants.SessionState {
	return m.state
}

// Message is the motivational line currently shown.
func (m Model) Message() string {
	return m.message
}

// refresh reloads the list from the tracker and, while the habits tab is
// showing, asks for a new motivational line when the day's progress moved.
func (m *Model) refresh() {
	v := m.tracker.View()
	m.list.SetGroups(v.Groups)
	if m.state != constants.StateHabits {
		return
	}
	if v.Total > 0 && v.Progress != m.lastProgress {
		m.lastProgress = v.Progress
		m.requestMotivation(v.Progress)
	}
}
