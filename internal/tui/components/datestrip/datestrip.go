package datestrip

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/potato/internal/tracker"
)

var (
	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1).
			Align(lipgloss.Center)

	selectedStyle = cellStyle.
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("37")).
			Bold(true)

	todayStyle = cellStyle.Foreground(lipgloss.Color("37")).Bold(true)
)

// Render lays the cells out horizontally.
func Render(cells []tracker.DateCell) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		label := fmt.Sprintf("%s\n%2d", c.Weekday, c.Day)
		if c.Today {
			label += "•"
		} else {
			label += " "
		}
		style := cellStyle
		switch {
		case c.Selected:
			style = selectedStyle
		case c.Today:
			style = todayStyle
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
