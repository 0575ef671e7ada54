package models

import (
	"strings"

	"github.com/julianstephens/potato/internal/constants"
)

// Habit is a single thing to do on one calendar day.
type Habit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"` // YYYY-MM-DD format, never changes after creation
	Link      string `json:"link,omitempty"`
	Category  string `json:"category,omitempty"`
}

// CategoryLabel returns the grouping label for the habit. Blank categories
// fall back to the uncategorized label.
func (h Habit) CategoryLabel() string {
	if c := strings.TrimSpace(h.Category); c != "" {
		return c
	}
	return constants.UncategorizedLabel
}
