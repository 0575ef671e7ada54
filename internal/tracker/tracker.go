// Package tracker is the controller that owns the habit store, the growth
// engine and the selected day, and keeps both records persisted.
package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/potato/internal/growth"
	"github.com/julianstephens/potato/internal/habits"
	"github.com/julianstephens/potato/internal/logger"
	"github.com/julianstephens/potato/internal/models"
	"github.com/julianstephens/potato/internal/storage"
	"github.com/julianstephens/potato/internal/utils"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the wall clock.
func WithClock(clock utils.Clock) Option {
	return func(t *Tracker) { t.clock = clock }
}

// WithLocation sets the timezone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	store    storage.Provider
	habits   *habits.Store
	engine   *growth.Engine
	loc      *time.Location
	clock    utils.Clock
	selected string
}

// Open hydrates a tracker from store. Missing or corrupt records fall back to
// the sample habits and a fresh potato; the fallbacks are written back unless
// the store could not be read at all.
func Open(store storage.Provider, opts ...Option) (*Tracker, LoadReport) {
	t := &Tracker{
		store: store,
		loc:   time.Local,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	today := t.Today()
	t.selected = today

	var report LoadReport
	list, src, err := loadHabits(store, today)
	report.Habits, report.HabitsErr = src, err
	t.habits = habits.New(list)

	state, src, err := loadGrowth(store)
	report.Growth, report.GrowthErr = src, err
	state, report.GrowthRepairs = normalizeGrowth(state)
	t.engine = growth.NewEngine(state)

	if report.Habits == SourceMissing || report.Habits == SourceCorrupt {
		if err := saveHabits(store, t.habits.All()); err != nil {
			logger.Warn("Failed to write sample habits", "error", err)
		}
	}
	if report.Growth == SourceMissing || report.Growth == SourceCorrupt || len(report.GrowthRepairs) > 0 {
		if err := saveGrowth(store, state); err != nil {
			logger.Warn("Failed to write growth state", "error", err)
		}
	}

	logger.Debug("Tracker hydrated",
		"habits", report.Habits, "habitCount", t.habits.Len(),
		"growth", report.Growth, "stage", state.GrowthStage, "harvests", state.HarvestCount)
	return t, report
}

// Reset replaces both records with the first-run defaults.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.Today()
	t.habits = habits.New(habits.Seed(today))
	t.engine = growth.NewEngine(models.GrowthState{})
	t.selected = today

	if err := saveHabits(t.store, t.habits.All()); err != nil {
		return err
	}
	return saveGrowth(t.store, models.GrowthState{})
}

// Today is the current calendar day in the tracker's timezone.
func (t *Tracker) Today() string {
	return utils.Today(t.loc, t.clock)
}

func (t *Tracker) Location() *time.Location {
	return t.loc
}

func (t *Tracker) SelectedDay() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// SelectDay changes the selected day.
func (t *Tracker) SelectDay(day string) error {
	if !utils.ValidateDate(day) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", day)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = day
	return nil
}

// ShiftDay moves the selection by n days.
func (t *Tracker) ShiftDay(n int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	day, err := utils.AddDays(t.selected, n)
	if err != nil {
		return err
	}
	t.selected = day
	return nil
}

func (t *Tracker) SelectToday() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = t.Today()
}

// AddHabit creates a habit on the selected day and persists the collection.
// On a write failure the habit stays in memory and the error is returned.
func (t *Tracker) AddHabit(title, category, link string) (models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, err := t.habits.Add(title, category, link, t.selected)
	if err != nil {
		return models.Habit{}, err
	}
	logger.Debug("Habit added", "id", h.ID, "date", h.Date, "category", h.Category)
	return h, saveHabits(t.store, t.habits.All())
}

// ToggleHabit flips a habit's completion. Unknown ids report changed=false.
func (t *Tracker) ToggleHabit(id string) (models.Habit, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.habits.Toggle(id)
	if !ok {
		return models.Habit{}, false, nil
	}
	return h, true, saveHabits(t.store, t.habits.All())
}

// RemoveHabit deletes a habit. Unknown ids report changed=false.
func (t *Tracker) RemoveHabit(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.habits.Remove(id) {
		return false, nil
	}
	logger.Debug("Habit removed", "id", id)
	return true, saveHabits(t.store, t.habits.All())
}

func (t *Tracker) Habit(id string) (models.Habit, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.habits.Get(id)
}

// Habits returns every stored habit in insertion order.
func (t *Tracker) Habits() []models.Habit {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.habits.All()
}

func (t *Tracker) eng() *growth.Engine {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine
}

// Growth returns the persisted growth state.
func (t *Tracker) Growth() models.GrowthState {
	return t.eng().State()
}

func (t *Tracker) DisplayStage() growth.Stage {
	return t.eng().DisplayStage()
}

func (t *Tracker) LastResult() (growth.Result, bool) {
	return t.eng().LastResult()
}

func (t *Tracker) ClearLastResult() {
	t.eng().ClearLastResult()
}

// CanWater recomputes the watering gate from the current selection.
func (t *Tracker) CanWater() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canWaterLocked(t.Today())
}

func (t *Tracker) canWaterLocked(today string) bool {
	progress := t.habits.ProgressForDay(t.selected)
	return growth.CanWater(t.selected, today, progress, t.engine.State().LastWateredDate)
}

// Water applies one watering immediately and persists the growth state.
func (t *Tracker) Water() (growth.Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.Today()
	r, err := t.engine.Water(t.canWaterLocked(today), today)
	if err != nil {
		return growth.Result{}, err
	}
	logger.Info("Potato watered", "outcome", r.Outcome, "stage", r.After.GrowthStage, "harvests", r.After.HarvestCount)
	return r, saveGrowth(t.store, r.After)
}

// BeginWatering starts a staged watering. The returned Watering must be
// released.
func (t *Tracker) BeginWatering() (*Watering, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.Today()
	w, err := t.engine.Begin(t.canWaterLocked(today), today)
	if err != nil {
		return nil, err
	}
	return &Watering{tracker: t, w: w}, nil
}

// Watering is a staged watering holding the engine lock.
type Watering struct {
	tracker *Tracker
	w       *growth.Watering
}

func (w *Watering) WillHarvest() bool {
	return w.w.WillHarvest()
}

func (w *Watering) Pour() {
	w.w.Pour()
}

// Commit applies the transition and persists it.
func (w *Watering) Commit() (growth.Result, error) {
	r, err := w.w.Commit()
	if err != nil {
		return growth.Result{}, err
	}
	logger.Info("Potato watered", "outcome", r.Outcome, "stage", r.After.GrowthStage, "harvests", r.After.HarvestCount)

	t := w.tracker
	t.mu.Lock()
	defer t.mu.Unlock()
	return r, saveGrowth(t.store, r.After)
}

func (w *Watering) Release() {
	w.w.Release()
}
