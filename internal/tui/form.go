package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/potato/internal/constants"
)

const customCategory = "custom"

type HabitFormModel struct {
	Title    string
	Category string
	Custom   string
	Link     string
}

// ResolvedCategory is the preset choice, or the typed name when custom was
// picked.
func (fm *HabitFormModel) ResolvedCategory() string {
	if fm.Category == customCategory {
		return strings.TrimSpace(fm.Custom)
	}
	return fm.Category
}

// NewHabitForm creates a new form for adding habits
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	if fm.Category == "" {
		fm.Category = constants.DefaultCategory
	}

	options := make([]huh.Option[string], 0, len(constants.Categories)+1)
	for _, c := range constants.Categories {
		options = append(options, huh.NewOption(c, c))
	}
	options = append(options, huh.NewOption("Custom...", customCategory))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&fm.Category),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Custom category").
				Value(&fm.Custom),
		).WithHideFunc(func() bool { return fm.Category != customCategory }),
		huh.NewGroup(
			huh.NewInput().
				Title("Link (optional)").
				Placeholder("app or URL").
				Value(&fm.Link),
		),
	).WithTheme(huh.ThemeDracula())
}
