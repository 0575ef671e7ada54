// Package garden draws the potato field.
package garden

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/potato/internal/growth"
	"github.com/julianstephens/potato/internal/tracker"
)

var (
	soilStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
	plantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	budStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("217"))
	spudStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("178")).Bold(true)
	dotOn      = lipgloss.NewStyle().Foreground(lipgloss.Color("37")).Render("●")
	dotOff     = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render("○")
	messageBox = lipgloss.NewStyle().
			Foreground(lipgloss.Color("30")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("37")).
			Padding(0, 1)
	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)
	buttonReady = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("33")).
			Bold(true).
			Padding(0, 3)
	buttonIdle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("254")).
			Padding(0, 3)
)

const soil = "  ~~~~~~~~~~~  "

var art = map[growth.Stage][]string{
	growth.StageSeed: {
		"               ",
		"               ",
		"               ",
		"       .       ",
	},
	growth.StageSprout: {
		"               ",
		"               ",
		"     \\ | /     ",
		"      \\|/      ",
	},
	growth.StagePlant: {
		"       o       ",
		"    \\_ | _/    ",
		"     \\ | /     ",
		"      \\|/      ",
	},
	growth.StageHarvesting: {
		"  *  _____  *  ",
		"   /  o o  \\   ",
		"  |   \\_/   |  ",
		"   \\_______/   ",
	},
}

// Art is the uncolored drawing for a stage.
func Art(stage growth.Stage) string {
	lines, ok := art[stage]
	if !ok {
		lines = art[growth.StageSeed]
	}
	return strings.Join(append(append([]string{}, lines...), soil), "\n")
}

func renderArt(stage growth.Stage) string {
	lines, ok := art[stage]
	if !ok {
		lines = art[growth.StageSeed]
	}
	style := plantStyle
	if stage == growth.StageHarvesting {
		style = spudStyle
	}
	out := make([]string, 0, len(lines)+1)
	for i, l := range lines {
		if stage == growth.StagePlant && i == 0 {
			out = append(out, budStyle.Render(l))
			continue
		}
		out = append(out, style.Render(l))
	}
	out = append(out, soilStyle.Render(soil))
	return strings.Join(out, "\n")
}

// StatusMessage describes the potato when no watering message is showing.
func StatusMessage(stage growth.Stage) string {
	switch stage {
	case growth.StageSeed:
		return "A seed is resting in the soil."
	case growth.StageSprout:
		return "A little sprout is peeking out."
	case growth.StagePlant:
		return "Almost ready! One more watering to harvest."
	case growth.StageHarvesting:
		return "Harvesting..."
	default:
		return ""
	}
}

// Progress renders the three growth dots.
func Progress(stage growth.Stage) string {
	dots := make([]string, 3)
	for i := range dots {
		if stage == growth.StageHarvesting || int(stage) >= i {
			dots[i] = dotOn
		} else {
			dots[i] = dotOff
		}
	}
	return strings.Join(dots, " ")
}

// Render draws the garden tab. message overrides the status line while a
// watering is running; watering disables the button.
func Render(v tracker.View, message string, watering bool, width int) string {
	header := lipgloss.JoinVertical(lipgloss.Center, "GROWTH PROGRESS", Progress(v.Stage))
	if message != "" {
		header = messageBox.Render(message)
	}

	pouring := ""
	if watering && v.Stage != growth.StageHarvesting {
		pouring = plantStyle.Render("  ~ pouring ~  ")
	}

	button := buttonIdle.Render(v.ButtonLabel)
	if v.CanWater && !watering {
		button = buttonReady.Render(v.ButtonLabel + "  [w]")
	}

	counter := counterStyle.Render(fmt.Sprintf("Total Harvest  %d potatoes", v.Growth.HarvestCount))

	status := StatusMessage(v.Stage)
	body := lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		pouring,
		renderArt(v.Stage),
		"",
		status,
		"",
		button,
		"",
		counter,
	)
	if width <= 0 {
		return body
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}
