package cli

import (
	"context"

	"github.com/julianstephens/potato/internal/constants"
)

type MotivateCmd struct{}

func (c *MotivateCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	t.SelectToday()
	view := t.View()

	if view.Total == 0 {
		ctx.println(constants.InitialMotivation)
		return nil
	}
	ctx.println(ctx.Motivation().Motivate(context.Background(), view.Progress))
	return nil
}
