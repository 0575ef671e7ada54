package cli

import (
	"github.com/julianstephens/potato/internal/tui/components/garden"
)

type GardenCmd struct {
	Art bool `help:"Draw the potato." default:"true" negatable:""`
}

func (c *GardenCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	t.SelectToday()
	view := t.View()

	if c.Art {
		ctx.println(garden.Art(view.Stage))
	}
	ctx.printf("Stage:          %s\n", view.Stage)
	ctx.printf("Harvested:      %d\n", view.Growth.HarvestCount)
	watered := "no"
	if view.HasWateredToday {
		watered = "yes"
	}
	ctx.printf("Watered today:  %s\n", watered)
	ctx.printf("Status:         %s\n", garden.StatusMessage(view.Stage))
	ctx.printf("Next:           %s\n", view.ButtonLabel)
	return nil
}
