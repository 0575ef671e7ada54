package cli

import (
	"fmt"

	"github.com/julianstephens/potato/internal/tracker"
)

type InitCmd struct {
	Force bool `help:"Reset habits and the potato to first-run defaults."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.Force {
		if err := t.Reset(); err != nil {
			return fmt.Errorf("failed to reset records: %w", err)
		}
		ctx.printf("Reset habits and growth state\n")
	} else if r := ctx.LoadReport(); r.Habits == tracker.SourceMissing {
		ctx.printf("Added %d sample habits for %s\n", len(t.Habits()), t.Today())
	}

	ctx.printf("Initialized potato storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
