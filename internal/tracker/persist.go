package tracker

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/growth"
	"github.com/julianstephens/potato/internal/habits"
	"github.com/julianstephens/potato/internal/logger"
	"github.com/julianstephens/potato/internal/models"
	"github.com/julianstephens/potato/internal/storage"
)

// Source says where a hydrated record came from.
type Source int

const (
	SourceStored Source = iota
	SourceMissing
	SourceCorrupt
	SourceUnavailable
)

func (s Source) String() string {
	switch s {
	case SourceStored:
		return "stored"
	case SourceMissing:
		return "missing"
	case SourceCorrupt:
		return "corrupt"
	case SourceUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// LoadReport describes how each record was hydrated.
type LoadReport struct {
	Habits        Source
	Growth        Source
	HabitsErr     error
	GrowthErr     error
	GrowthRepairs []string
}

// OK reports whether both records were read as stored.
func (r LoadReport) OK() bool {
	return r.Habits == SourceStored && r.Growth == SourceStored && len(r.GrowthRepairs) == 0
}

// EncodeHabits serializes the habit collection. An empty collection is "[]".
func EncodeHabits(list []models.Habit) ([]byte, error) {
	if list == nil {
		list = []models.Habit{}
	}
	return json.Marshal(list)
}

// DecodeHabits parses a stored habit collection. JSON null is rejected.
func DecodeHabits(raw []byte) ([]models.Habit, error) {
	var list []models.Habit
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	if list == nil {
		return nil, errors.New("habit collection is null")
	}
	return list, nil
}

func EncodeGrowth(state models.GrowthState) ([]byte, error) {
	return json.Marshal(state)
}

// DecodeGrowth parses a stored growth record. Missing fields keep their zero
// values.
func DecodeGrowth(raw []byte) (models.GrowthState, error) {
	var state models.GrowthState
	if err := json.Unmarshal(raw, &state); err != nil {
		return models.GrowthState{}, err
	}
	return state, nil
}

func loadHabits(store storage.Provider, today string) ([]models.Habit, Source, error) {
	raw, err := store.Get(constants.HabitsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return habits.Seed(today), SourceMissing, nil
	}
	if err != nil {
		logger.Warn("Failed to read habits, using sample habits", "key", constants.HabitsKey, "error", err)
		return habits.Seed(today), SourceUnavailable, err
	}

	list, err := DecodeHabits(raw)
	if err != nil {
		logger.Warn("Stored habits are corrupt, using sample habits", "key", constants.HabitsKey, "error", err)
		preserveCorrupt(store, constants.HabitsKey, raw)
		return habits.Seed(today), SourceCorrupt, err
	}
	return list, SourceStored, nil
}

func loadGrowth(store storage.Provider) (models.GrowthState, Source, error) {
	raw, err := store.Get(constants.GrowthKey)
	if errors.Is(err, storage.ErrNotFound) {
		return models.GrowthState{}, SourceMissing, nil
	}
	if err != nil {
		logger.Warn("Failed to read growth state, starting fresh", "key", constants.GrowthKey, "error", err)
		return models.GrowthState{}, SourceUnavailable, err
	}

	state, err := DecodeGrowth(raw)
	if err != nil {
		logger.Warn("Stored growth state is corrupt, starting fresh", "key", constants.GrowthKey, "error", err)
		preserveCorrupt(store, constants.GrowthKey, raw)
		return models.GrowthState{}, SourceCorrupt, err
	}
	return state, SourceStored, nil
}

// preserveCorrupt keeps the unreadable value next to the record before the
// fallback overwrites it.
func preserveCorrupt(store storage.Provider, key string, raw []byte) {
	if !json.Valid(raw) {
		quoted, err := json.Marshal(string(raw))
		if err != nil {
			return
		}
		raw = quoted
	}
	if err := store.Set(key+".corrupt", raw); err != nil {
		logger.Warn("Failed to preserve corrupt record", "key", key, "error", err)
	}
}

func saveHabits(store storage.Provider, list []models.Habit) error {
	raw, err := EncodeHabits(list)
	if err != nil {
		return fmt.Errorf("failed to encode habits: %w", err)
	}
	if err := store.Set(constants.HabitsKey, raw); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}
	return nil
}

func saveGrowth(store storage.Provider, state models.GrowthState) error {
	raw, err := EncodeGrowth(state)
	if err != nil {
		return fmt.Errorf("failed to encode growth state: %w", err)
	}
	if err := store.Set(constants.GrowthKey, raw); err != nil {
		return fmt.Errorf("failed to save growth state: %w", err)
	}
	return nil
}

func normalizeGrowth(state models.GrowthState) (models.GrowthState, []string) {
	fixed, problems := growth.Normalize(state)
	for _, p := range problems {
		logger.Warn("Repaired stored growth state", "key", constants.GrowthKey, "problem", p)
	}
	return fixed, problems
}
