package growth

import (
	"errors"
	"sync"

	"github.com/julianstephens/potato/internal/models"
)

var errWateringDone = errors.New("watering already finished")

// Engine owns the growth state and the watering lock.
type Engine struct {
	mu       sync.Mutex
	state    models.GrowthState
	watering *Watering
	last     *Result
}

// NewEngine starts an engine from a hydrated state, normalizing it first.
func NewEngine(state models.GrowthState) *Engine {
	state, _ = Normalize(state)
	return &Engine{state: state}
}

// State returns a snapshot of the persisted state.
func (e *Engine) State() models.GrowthState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// DisplayStage is the stage to draw. It reports StageHarvesting once the water
// of a pending harvest has been poured.
func (e *Engine) DisplayStage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	if w := e.watering; w != nil && w.poured && !w.committed && WillHarvest(e.state) {
		return StageHarvesting
	}
	return Stage(e.state.GrowthStage)
}

// Watering reports whether a staged watering holds the lock.
func (e *Engine) Watering() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.watering != nil
}

// Water applies one watering immediately.
func (e *Engine) Water(eligible bool, today string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkLocked(eligible, today); err != nil {
		return Result{}, err
	}
	return e.applyLocked(today), nil
}

// Begin acquires the watering lock for a staged pour and settle sequence.
// The caller must Release the returned Watering.
func (e *Engine) Begin(eligible bool, today string) (*Watering, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkLocked(eligible, today); err != nil {
		return nil, err
	}
	w := &Watering{engine: e, today: today, harvest: WillHarvest(e.state)}
	e.watering = w
	return w, nil
}

// LastResult returns the most recent watering result until it is cleared.
func (e *Engine) LastResult() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return Result{}, false
	}
	return *e.last, true
}

func (e *Engine) ClearLastResult() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = nil
}

func (e *Engine) checkLocked(eligible bool, today string) error {
	if e.watering != nil {
		return ErrWateringInProgress
	}
	if !eligible {
		return ErrNotEligible
	}
	if e.state.LastWateredDate == today {
		return ErrAlreadyWatered
	}
	return nil
}

func (e *Engine) applyLocked(today string) Result {
	before := e.state
	after, outcome := Next(before, today)
	e.state = after
	r := Result{Outcome: outcome, Before: before, After: after}
	e.last = &r
	return r
}

// Watering is a staged watering holding the engine lock.
type Watering struct {
	engine    *Engine
	today     string
	harvest   bool
	poured    bool
	committed bool
}

// WillHarvest predicts whether committing will harvest.
func (w *Watering) WillHarvest() bool {
	return w.harvest
}

// Pour marks the water as landed.
func (w *Watering) Pour() {
	w.engine.mu.Lock()
	defer w.engine.mu.Unlock()
	if w.engine.watering == w {
		w.poured = true
	}
}

// Commit applies the transition. It can succeed at most once.
func (w *Watering) Commit() (Result, error) {
	e := w.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.watering != w || w.committed {
		return Result{}, errWateringDone
	}
	if e.state.LastWateredDate == w.today {
		return Result{}, ErrAlreadyWatered
	}
	w.committed = true
	return e.applyLocked(w.today), nil
}

// Release drops the lock. It is safe to call more than once.
func (w *Watering) Release() {
	e := w.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.watering == w {
		e.watering = nil
	}
}
