package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/potato/internal/cli"
	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/errors"
	"github.com/julianstephens/potato/internal/logger"
	"github.com/julianstephens/potato/internal/storage"
	"github.com/julianstephens/potato/internal/utils"
)

type potatoCLI struct {
	Version  kong.VersionFlag
	Store    string `help:"Storage location: a .db or .json file, a redis:// URL, or a PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use PGPASSWORD or .pgpass instead." env:"POTATO_STORE" default:"${default_store}"`
	Timezone string `help:"IANA timezone that defines today." env:"POTATO_TZ" default:"Local"`
	Model    string `help:"Text generation model." env:"POTATO_MODEL" default:"${default_model}"`
	Debug    bool   `help:"Enable debug logging." env:"POTATO_DEBUG"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize potato storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Day      cli.DayCmd      `cmd:"" help:"Show progress and the date strip for a day."`
	Water    cli.WaterCmd    `cmd:"" help:"Water the potato once today's habits are done."`
	Garden   cli.GardenCmd   `cmd:"" help:"Show the potato and harvest count."`
	Motivate cli.MotivateCmd `cmd:"" help:"Print a motivational line for today's progress."`
	Key      cli.KeyCmd      `cmd:"" help:"Manage the text generation API key."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage backups of file-based storage."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" hidden:"" help:"Debug commands for troubleshooting."`
}

func newParser(c *potatoCLI, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Habit tracker that grows a potato"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":          constants.Version,
			"default_store":    constants.DefaultConfigPath,
			"default_model":    constants.DefaultModel,
			"default_category": constants.DefaultCategory,
		},
	}
	return kong.New(c, append(base, opts...)...)
}

// newContext resolves the timezone and opens the configured store.
func newContext(c *potatoCLI) (*cli.Context, error) {
	if !utils.ValidateTimezone(c.Timezone) {
		return nil, fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return nil, err
	}
	store, err := storage.New(c.Store)
	if err != nil {
		return nil, err
	}
	return &cli.Context{
		Store:    store,
		Location: loc,
		Model:    c.Model,
	}, nil
}

func main() {
	var c potatoCLI
	parser, err := newParser(&c)
	if err != nil {
		errors.Fatal(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	appCtx, err := newContext(&c)
	if err != nil {
		errors.Fatal(err)
	}
	store := appCtx.Store
	defer store.Close()

	// Logs live next to file stores, under the default config dir otherwise
	configDir := filepath.Dir(store.GetConfigPath())
	if !storage.IsFileBacked(store) {
		if configDir, err = utils.ExpandPath(filepath.Dir(constants.DefaultConfigPath)); err != nil {
			errors.Fatal(err)
		}
	}
	if err := logger.Init(logger.Config{Debug: c.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	logger.Debug("Starting", "command", ctx.Command(), "store", store.GetConfigPath(), "timezone", appCtx.Location.String())

	start := time.Now()
	err = ctx.Run(appCtx)
	logger.Debug("Finished", "command", ctx.Command(), "elapsed", time.Since(start))
	if err != nil {
		_ = store.Close()
		errors.Fatal(err)
	}
}
