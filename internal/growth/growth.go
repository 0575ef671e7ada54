// Package growth implements the potato growth state machine.
//
// A potato moves Seed -> Sprout -> Plant and is harvested on the next
// watering, which adds one to the harvest counter and starts over at Seed.
// Only one watering may succeed per calendar day.
package growth

import (
	"errors"
	"fmt"

	"github.com/julianstephens/potato/internal/models"
)

// Stage is a growth stage. StageHarvesting is shown while a harvest is in
// progress and is never persisted.
type Stage int

const (
	StageSeed Stage = iota
	StageSprout
	StagePlant
	StageHarvesting
)

func (s Stage) String() string {
	switch s {
	case StageSeed:
		return "seed"
	case StageSprout:
		return "sprout"
	case StagePlant:
		return "plant"
	case StageHarvesting:
		return "harvesting"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Outcome tells a growth step apart from a harvest.
type Outcome int

const (
	Grew Outcome = iota + 1
	Harvested
)

func (o Outcome) String() string {
	switch o {
	case Grew:
		return "grew"
	case Harvested:
		return "harvested"
	default:
		return "none"
	}
}

var (
	ErrNotEligible        = errors.New("finish today's habits before watering")
	ErrAlreadyWatered     = errors.New("potato already watered today")
	ErrWateringInProgress = errors.New("watering already in progress")
)

// Next is the pure transition for one successful watering on today.
func Next(state models.GrowthState, today string) (models.GrowthState, Outcome) {
	next := state
	next.LastWateredDate = today
	if Stage(state.GrowthStage) >= StagePlant {
		next.HarvestCount++
		next.GrowthStage = int(StageSeed)
		return next, Harvested
	}
	next.GrowthStage++
	return next, Grew
}

// WillHarvest reports whether watering state would yield a harvest.
func WillHarvest(state models.GrowthState) bool {
	return Stage(state.GrowthStage) >= StagePlant
}

// CanWater is the watering gate: the selected day is today, every habit for
// it is done, and the potato has not been watered today.
func CanWater(selectedDay, today string, progress int, lastWatered string) bool {
	return selectedDay == today && progress == 100 && lastWatered != today
}

// Normalize repairs a hydrated state and lists what it had to fix.
func Normalize(state models.GrowthState) (models.GrowthState, []string) {
	var problems []string
	if state.HarvestCount < 0 {
		problems = append(problems, fmt.Sprintf("negative harvestCount %d reset to 0", state.HarvestCount))
		state.HarvestCount = 0
	}
	if state.GrowthStage < int(StageSeed) || state.GrowthStage > int(StagePlant) {
		problems = append(problems, fmt.Sprintf("growthStage %d out of range, reset to 0", state.GrowthStage))
		state.GrowthStage = int(StageSeed)
	}
	return state, problems
}

// Result describes one committed watering for the display layer.
type Result struct {
	Outcome Outcome
	Before  models.GrowthState
	After   models.GrowthState
}

// Harvested reports whether the watering produced a harvest.
func (r Result) Harvested() bool {
	return r.Outcome == Harvested
}

// Message is the celebratory line shown after the watering.
func (r Result) Message() string {
	if r.Outcome == Harvested {
		return "Big Potato Unlocked! You harvested 1 potato."
	}
	if Stage(r.Before.GrowthStage) == StageSeed {
		return "First sprinkle! Your potato woke up."
	}
	return "Nice! Your potato is growing."
}
