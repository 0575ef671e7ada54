package tracker

import (
	"context"
	"time"

	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/growth"
)

// Timings are the pauses of a staged watering. Zero values skip the pause.
type Timings struct {
	Pour    time.Duration
	Harvest time.Duration
	Settle  time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		Pour:    constants.PourDelay,
		Harvest: constants.HarvestDelay,
		Settle:  constants.SettleDelay,
	}
}

// Step is a stage of a running watering sequence.
type Step int

const (
	StepPouring Step = iota
	StepPoured
	StepHarvesting
	StepCommitted
	StepSettled
)

// WaterStaged runs the full pour, then harvest hold or settle, sequence while
// holding the watering lock. notify may be nil. Cancelling ctx before the
// commit abandons the watering without changing state.
func (t *Tracker) WaterStaged(ctx context.Context, timings Timings, notify func(Step)) (growth.Result, error) {
	if notify == nil {
		notify = func(Step) {}
	}

	w, err := t.BeginWatering()
	if err != nil {
		return growth.Result{}, err
	}
	defer w.Release()

	notify(StepPouring)
	if err := sleep(ctx, timings.Pour); err != nil {
		return growth.Result{}, err
	}
	w.Pour()
	notify(StepPoured)

	if w.WillHarvest() {
		notify(StepHarvesting)
		if err := sleep(ctx, timings.Harvest); err != nil {
			return growth.Result{}, err
		}
	}

	r, err := w.Commit()
	if err != nil {
		return r, err
	}
	notify(StepCommitted)

	if !r.Harvested() {
		// Already committed; a cancelled settle just ends early.
		_ = sleep(ctx, timings.Settle)
	}
	notify(StepSettled)
	return r, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
