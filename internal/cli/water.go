package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/julianstephens/potato/internal/growth"
	"github.com/julianstephens/potato/internal/tracker"
)

type WaterCmd struct {
	Instant bool `help:"Skip the watering animation delays."`
}

func (c *WaterCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	t.SelectToday()

	view := t.View()
	if view.HasWateredToday {
		return errors.New("already watered today, come back tomorrow")
	}
	if !view.CanWater {
		return fmt.Errorf("finish today's habits to get water (%d/%d done)", view.Completed, view.Total)
	}

	timings := tracker.DefaultTimings()
	if c.Instant {
		timings = tracker.Timings{}
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := t.WaterStaged(sigCtx, timings, func(s tracker.Step) {
		switch s {
		case tracker.StepPouring:
			ctx.println("Pouring water...")
		case tracker.StepHarvesting:
			ctx.println("Harvesting...")
		}
	})
	switch {
	case errors.Is(err, context.Canceled):
		return errors.New("watering cancelled")
	case errors.Is(err, growth.ErrWateringInProgress):
		return errors.New("a watering is already in progress")
	case err != nil && r.Outcome == 0:
		return err
	}

	ctx.println(r.Message())
	ctx.printf("Stage: %s, harvested: %d\n", growth.Stage(r.After.GrowthStage), r.After.HarvestCount)
	if err != nil {
		return fmt.Errorf("watered but not saved: %w", err)
	}
	return nil
}
