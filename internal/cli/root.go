package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/potato/internal/backup"
	"github.com/julianstephens/potato/internal/logger"
	"github.com/julianstephens/potato/internal/motivation"
	"github.com/julianstephens/potato/internal/storage"
	"github.com/julianstephens/potato/internal/tracker"
	"github.com/julianstephens/potato/internal/utils"
)

// Context is shared by every command.
type Context struct {
	Store    storage.Provider
	Location *time.Location
	Model    string

	// Optional overrides, used by tests.
	Clock     utils.Clock
	Motivator *motivation.Service
	Out       io.Writer
	In        io.Reader

	tracker *tracker.Tracker
	report  tracker.LoadReport
}

// Open loads the store and initializes it on first use.
func (c *Context) Open() error {
	err := c.Store.Load()
	if errors.Is(err, storage.ErrNotInitialized) {
		logger.Info("Initializing storage", "path", c.Store.GetConfigPath())
		err = c.Store.Init()
	}
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	return nil
}

// Tracker opens the store and hydrates the tracker once per process.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	if err := c.Open(); err != nil {
		return nil, err
	}

	opts := []tracker.Option{tracker.WithLocation(c.Location)}
	if c.Clock != nil {
		opts = append(opts, tracker.WithClock(c.Clock))
	}
	c.tracker, c.report = tracker.Open(c.Store, opts...)
	return c.tracker, nil
}

// LoadReport describes how the tracker's records were read.
func (c *Context) LoadReport() tracker.LoadReport {
	return c.report
}

// Motivation returns the configured text service.
func (c *Context) Motivation() *motivation.Service {
	if c.Motivator == nil {
		c.Motivator = motivation.FromEnvironment(c.Model)
	}
	return c.Motivator
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !storage.IsFileBacked(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) in() io.Reader {
	if c.In != nil {
		return c.In
	}
	return os.Stdin
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// ShortID is the prefix shown in listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveHabitID accepts a full id or a unique prefix of one.
func resolveHabitID(t *tracker.Tracker, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("habit id cannot be empty")
	}
	if _, ok := t.Habit(ref); ok {
		return ref, nil
	}

	var match string
	for _, h := range t.Habits() {
		if strings.HasPrefix(h.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("habit id %q is ambiguous", ref)
			}
			match = h.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("habit not found: %s", ref)
	}
	return match, nil
}
