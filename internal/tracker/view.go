package tracker

import (
	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/growth"
	"github.com/julianstephens/potato/internal/habits"
	"github.com/julianstephens/potato/internal/models"
	"github.com/julianstephens/potato/internal/utils"
)

// Mood is the mascot's expression for a progress value.
type Mood int

const (
	MoodSleepy Mood = iota
	MoodNeutral
	MoodHappy
	MoodExcited
)

func (m Mood) String() string {
	switch m {
	case MoodSleepy:
		return "sleepy"
	case MoodNeutral:
		return "neutral"
	case MoodHappy:
		return "happy"
	case MoodExcited:
		return "excited"
	default:
		return "unknown"
	}
}

// MoodFor maps progress to a mood.
func MoodFor(progress int) Mood {
	switch {
	case progress <= 0:
		return MoodSleepy
	case progress < 50:
		return MoodNeutral
	case progress < 100:
		return MoodHappy
	default:
		return MoodExcited
	}
}

const (
	LabelWatered   = "Come back tomorrow!"
	LabelReady     = "Water Potato!"
	LabelNotYet    = "Finish habits to get water"
	HintWaterReady = "Water Available!"
)

// ButtonLabel is the text of the watering action.
func ButtonLabel(wateredToday, canWater bool) string {
	switch {
	case wateredToday:
		return LabelWatered
	case canWater:
		return LabelReady
	default:
		return LabelNotYet
	}
}

// View is everything the display layer needs for the selected day. It is
// recomputed on every call.
type View struct {
	Day             string
	Today           string
	Groups          []habits.Group
	Completed       int
	Total           int
	Progress        int
	IsToday         bool
	HasWateredToday bool
	CanWater        bool
	Mood            Mood
	Growth          models.GrowthState
	Stage           growth.Stage
	ButtonLabel     string
}

// Habits flattens the view in display order.
func (v View) Habits() []models.Habit {
	out := make([]models.Habit, 0, v.Total)
	for _, g := range v.Groups {
		out = append(out, g.Habits...)
	}
	return out
}

func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.Today()
	day := t.habits.ViewForDay(t.selected)
	state := t.engine.State()
	watered := state.WateredOn(today)
	can := growth.CanWater(t.selected, today, day.Progress, state.LastWateredDate)

	return View{
		Day:             t.selected,
		Today:           today,
		Groups:          day.Groups,
		Completed:       day.Completed,
		Total:           day.Total,
		Progress:        day.Progress,
		IsToday:         t.selected == today,
		HasWateredToday: watered,
		CanWater:        can,
		Mood:            MoodFor(day.Progress),
		Growth:          state,
		Stage:           t.engine.DisplayStage(),
		ButtonLabel:     ButtonLabel(watered, can),
	}
}

// DateCell is one entry of the date strip.
type DateCell struct {
	Date     string
	Weekday  string
	Day      int
	Selected bool
	Today    bool
}

// DateStrip returns the window of days around the selected day.
func (t *Tracker) DateStrip() []DateCell {
	t.mu.Lock()
	selected := t.selected
	t.mu.Unlock()
	return BuildDateStrip(selected, t.Today())
}

// BuildDateStrip lays out DateStripDays cells starting DateStripOffset days
// before selected.
func BuildDateStrip(selected, today string) []DateCell {
	cells := make([]DateCell, 0, constants.DateStripDays)
	for i := 0; i < constants.DateStripDays; i++ {
		day, err := utils.AddDays(selected, i-constants.DateStripOffset)
		if err != nil {
			return nil
		}
		d, _ := utils.ParseDate(day)
		cells = append(cells, DateCell{
			Date:     day,
			Weekday:  d.Weekday().String()[:3],
			Day:      d.Day(),
			Selected: day == selected,
			Today:    day == today,
		})
	}
	return cells
}
