package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/potato/internal/tracker"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := selectDay(t, c.Date); err != nil {
		return err
	}

	ctx.println(formatDateStrip(t.DateStrip()))
	ctx.println()

	view := t.View()
	printHabits(ctx, view)
	ctx.println()
	switch {
	case view.CanWater:
		ctx.printf("%s Run 'potato water'.\n", tracker.HintWaterReady)
	case !view.IsToday:
		ctx.println("Watering is only possible for today.")
	default:
		ctx.println(view.ButtonLabel)
	}
	return nil
}

// formatDateStrip renders the strip on one line, brackets marking the
// selected day and an asterisk marking today.
func formatDateStrip(cells []tracker.DateCell) string {
	parts := make([]string, 0, len(cells))
	for _, cell := range cells {
		label := fmt.Sprintf("%s %d", cell.Weekday, cell.Day)
		if cell.Today {
			label += "*"
		}
		if cell.Selected {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}
