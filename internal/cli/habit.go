package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/potato/internal/tracker"
	"github.com/julianstephens/potato/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a habit to a day."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done or not done."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	List   HabitListCmd   `cmd:"" help:"List a day's habits by category." default:"1"`
}

// selectDay points the tracker at date, which may be empty or "today".
func selectDay(t *tracker.Tracker, date string) error {
	day, err := utils.ResolveDate(date, t.Today())
	if err != nil {
		return err
	}
	return t.SelectDay(day)
}

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Category string `short:"c" help:"Category label (default: ${default_category})." default:"${default_category}"`
	Link     string `short:"l" help:"Optional link or app name."`
	Date     string `help:"Day in YYYY-MM-DD format (default: today)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := selectDay(t, c.Date); err != nil {
		return err
	}

	h, err := t.AddHabit(c.Title, c.Category, c.Link)
	if h.ID == "" {
		return err
	}
	if err != nil {
		return fmt.Errorf("habit added but not saved: %w", err)
	}
	ctx.printf("Added habit %s: %s [%s] on %s\n", ShortID(h.ID), h.Title, h.CategoryLabel(), h.Date)
	return nil
}

type HabitToggleCmd struct {
	ID string `arg:"" help:"Habit id or unique id prefix."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	id, err := resolveHabitID(t, c.ID)
	if err != nil {
		return err
	}

	h, changed, err := t.ToggleHabit(id)
	if !changed {
		return fmt.Errorf("habit not found: %s", c.ID)
	}
	if err != nil {
		return fmt.Errorf("habit updated but not saved: %w", err)
	}

	status := "not done"
	if h.Completed {
		status = "done"
	}
	if err := t.SelectDay(h.Date); err != nil {
		return err
	}
	view := t.View()
	ctx.printf("%s is %s. %s: %d/%d (%d%%)\n", h.Title, status, h.Date, view.Completed, view.Total, view.Progress)
	if view.CanWater {
		ctx.println(tracker.HintWaterReady)
	}
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit id or unique id prefix."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	id, err := resolveHabitID(t, c.ID)
	if err != nil {
		return err
	}
	h, _ := t.Habit(id)

	changed, err := t.RemoveHabit(id)
	if !changed {
		return fmt.Errorf("habit not found: %s", c.ID)
	}
	if err != nil {
		return fmt.Errorf("habit removed but not saved: %w", err)
	}
	ctx.printf("Deleted habit: %s\n", h.Title)
	return nil
}

type HabitListCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD or 'today')."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := selectDay(t, c.Date); err != nil {
		return err
	}
	printHabits(ctx, t.View())
	return nil
}

func printHabits(ctx *Context, v tracker.View) {
	label := v.Day
	if v.IsToday {
		label += " (today)"
	}
	ctx.printf("Habits for %s: %d/%d done %s %d%%\n", label, v.Completed, v.Total, progressBar(v.Progress, 20), v.Progress)

	if v.Total == 0 {
		ctx.println("\n  No habits for this day. Add one with 'potato habit add'.")
		return
	}

	for _, g := range v.Groups {
		ctx.printf("\n%s\n", g.Category)
		for _, h := range g.Habits {
			mark := "[ ]"
			if h.Completed {
				mark = "[x]"
			}
			line := fmt.Sprintf("  %s %s  %s", mark, ShortID(h.ID), h.Title)
			if h.Link != "" {
				line += fmt.Sprintf(" (%s)", h.Link)
			}
			ctx.println(line)
		}
	}
}

// progressBar is plain ASCII so piped and logged output stays readable.
func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
