package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/potato/internal/backup"
	"github.com/julianstephens/potato/internal/constants"
	apperrors "github.com/julianstephens/potato/internal/errors"
	"github.com/julianstephens/potato/internal/growth"
	"github.com/julianstephens/potato/internal/storage"
	"github.com/julianstephens/potato/internal/tracker"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	fail := func(name string, err error) {
		ctx.printf("❌ %s: FAIL\n", name)
		ctx.printf("   Error: %v\n", err)
		hasError = true
	}

	// Check 1: storage reachable
	reachable := true
	if err := ctx.Open(); err != nil {
		fail("Storage reachable", err)
		reachable = false
	} else {
		ctx.printf("✓ Storage reachable: OK (%s)\n", ctx.Store.GetConfigPath())
	}

	// Check 2: schema version and migrations
	if reachable {
		if err := checkSchema(ctx.Store); err != nil {
			fail("Schema version", err)
		} else {
			ctx.printf("✓ Schema version: OK\n")
		}
	}

	// Check 3: records decodable
	if reachable {
		if err := checkRecords(ctx.Store); err != nil {
			fail("Stored records", err)
		} else {
			ctx.printf("✓ Stored records: OK\n")
		}
	} else {
		ctx.printf("⊘ Stored records: SKIPPED (storage not reachable)\n")
	}

	// Check 4: backups present (warning only)
	if storage.IsFileBacked(ctx.Store) {
		if err := checkBackupsPresent(ctx.Store); err != nil {
			ctx.printf("⚠ Backups present: WARNING\n")
			ctx.printf("   %v\n", err)
		} else {
			ctx.printf("✓ Backups present: OK\n")
		}
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		ctx.printf("✓ Clock/timezone: OK\n")
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return apperrors.WithExitCode(fmt.Errorf("one or more health checks failed"), 2)
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkSchema(store storage.Provider) error {
	v, ok := store.(storage.Versioned)
	if !ok {
		// Key-value backends without a SQL schema
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkRecords(store storage.Provider) error {
	var problems []error

	raw, err := store.Get(constants.HabitsKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		problems = append(problems, fmt.Errorf("failed to read %s: %w", constants.HabitsKey, err))
	default:
		list, err := tracker.DecodeHabits(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s is corrupt: %w", constants.HabitsKey, err))
		}
		seen := make(map[string]bool, len(list))
		for _, h := range list {
			if seen[h.ID] {
				problems = append(problems, fmt.Errorf("duplicate habit ID found: %s", h.ID))
			}
			seen[h.ID] = true
		}
	}

	raw, err = store.Get(constants.GrowthKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		problems = append(problems, fmt.Errorf("failed to read %s: %w", constants.GrowthKey, err))
	default:
		state, err := tracker.DecodeGrowth(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s is corrupt: %w", constants.GrowthKey, err))
		} else if _, repairs := growth.Normalize(state); len(repairs) > 0 {
			problems = append(problems, fmt.Errorf("%s needs repair: %v", constants.GrowthKey, repairs))
		}
	}

	return errors.Join(problems...)
}

func checkBackupsPresent(store storage.Provider) error {
	mgr := backup.NewManager(store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'potato backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if ctx.Clock != nil {
		now = ctx.Clock()
	}

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	loc := ctx.Location
	if loc == nil {
		loc = time.Local
	}
	ctx.printf("   Timezone: %s, today is %s\n", loc, now.In(loc).Format(constants.DateFormat))
	return nil
}
