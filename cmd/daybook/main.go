package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/daybook-app/daybook/internal/achievements"
	"github.com/daybook-app/daybook/internal/cache"
	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/constants"
	"github.com/daybook-app/daybook/internal/errors"
	"github.com/daybook-app/daybook/internal/keyring"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/notifier"
	"github.com/daybook-app/daybook/internal/recordstore"
	"github.com/daybook-app/daybook/internal/remote"
	"github.com/daybook-app/daybook/internal/stats"
	"github.com/daybook-app/daybook/internal/streak"
	"github.com/daybook-app/daybook/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Local cache path (.json for a plain file, anything else opens SQLite)." type:"string" default:"~/.config/daybook/daybook.db"`
	User    string `help:"Remote user id. Empty runs in anonymous (local-only) mode." default:""`
	DB      string `help:"PostgreSQL connection string for the remote store. Credentials must NOT be embedded; use the OS keyring or ${env} instead." default:""`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init         cli.InitCmd         `cmd:"" help:"Initialize daybook storage."`
	Entry        cli.EntryCmd        `cmd:"" help:"Write and browse journal entries."`
	Health       cli.HealthCmd       `cmd:"" help:"Track daily wellness counters."`
	Habit        cli.HabitCmd        `cmd:"" help:"Manage habits and daily check-ins."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show streaks, wellness score and level."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Browse achievements and progress."`
	Settings     cli.SettingsCmd     `cmd:"" help:"Manage the remote connection."`
	Debugcmd     cli.DebugCmd        `cmd:"" name:"debug" hidden:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Journaling and habit companion with streaks, wellness scoring and achievements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version, "env": constants.EnvRemoteConnection},
	)

	configPath := expandHome(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store cache.Store
	if strings.HasSuffix(configPath, ".json") {
		store = cache.NewJSONStore(configPath)
	} else {
		store = cache.NewSQLiteStore(configPath)
	}

	connStr, err := resolveConnString(CLI.DB)
	if err != nil {
		errors.Fatal(err)
	}

	var client *remote.Client
	entriesRemote := recordstore.Remote[models.Entry](recordstore.Offline[models.Entry]{})
	healthRemote := recordstore.Remote[models.HealthSample](recordstore.Offline[models.HealthSample]{})
	habitsRemote := recordstore.Remote[models.Habit](recordstore.Offline[models.Habit]{})
	completionsRemote := recordstore.Remote[models.HabitCompletion](recordstore.Offline[models.HabitCompletion]{})

	if connStr != "" && CLI.User != "" {
		client = remote.New(connStr)
		entriesRemote = client.Entries()
		healthRemote = client.Health()
		habitsRemote = client.Habits()
		completionsRemote = client.Completions()
		defer client.Close()
	}

	entries := recordstore.NewEntryStore(entriesRemote, store)
	health := recordstore.NewHealthStore(healthRemote, store)
	habits := recordstore.NewHabitStore(habitsRemote, store)
	completions := recordstore.NewCompletionStore(completionsRemote, store)

	engine := achievements.NewEngine(store, notifier.New(), progressSources(entries, health, completions, CLI.User))
	collector := stats.NewCollector(entries, health, habits, completions, engine, store)

	appCtx := &cli.Context{
		Cache:       store,
		Remote:      client,
		Entries:     entries,
		Health:      health,
		Habits:      habits,
		Completions: completions,
		Engine:      engine,
		Collector:   collector,
		User:        CLI.User,
		Debug:       CLI.Debug,
	}

	// The init command creates storage itself; everything else expects it.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
		if client != nil {
			if err := client.Open(); err != nil {
				// An unreachable remote is an offline session, not a crash.
				logger.Warn("Remote store unavailable, continuing offline", "error", err)
			}
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

// resolveConnString resolves the remote DSN: flag, then environment, then OS
// keyring. Embedded passwords are rejected at every source.
func resolveConnString(flag string) (string, error) {
	connStr := flag
	if connStr == "" {
		connStr = os.Getenv(constants.EnvRemoteConnection)
	}
	if connStr == "" {
		if fromKeyring, err := keyring.GetConnectionString(); err == nil {
			connStr = fromKeyring
		}
	}
	if connStr == "" {
		return "", nil
	}
	if remote.HasEmbeddedCredentials(connStr) {
		return "", fmt.Errorf("connection strings with embedded credentials are not allowed; use the OS keyring ('%s settings set-connection'), the %s environment variable, or a .pgpass file",
			constants.AppName, constants.EnvRemoteConnection)
	}
	return connStr, nil
}

// progressSources recounts each progress counter from the raw collections on
// demand, so 'achievements progress' never depends on a stale stats snapshot.
func progressSources(
	entries *recordstore.Store[models.Entry],
	health *recordstore.Store[models.HealthSample],
	completions *recordstore.Store[models.HabitCompletion],
	user string,
) achievements.Sources {
	return achievements.Sources{
		Entries: func() (int, error) {
			recs, err := entries.Load(context.Background(), user)
			return len(recs), err
		},
		Streak: func() (int, error) {
			recs, err := entries.Load(context.Background(), user)
			if err != nil {
				return 0, err
			}
			days := make([]string, 0, len(recs))
			for _, e := range recs {
				days = append(days, e.Date)
			}
			return streak.Current(days, utils.Today()), nil
		},
		Completions: func() (int, error) {
			recs, err := completions.Load(context.Background(), user)
			if err != nil {
				return 0, err
			}
			n := 0
			for _, rec := range recs {
				if rec.Completed {
					n++
				}
			}
			return n, nil
		},
		HealthDays: func() (int, error) {
			recs, err := health.Load(context.Background(), user)
			if err != nil {
				return 0, err
			}
			seen := map[string]bool{}
			for _, s := range recs {
				if s.WaterGlasses > 0 || s.ExerciseMinutes > 0 || s.SleepHours > 0 || s.MeditationMinutes > 0 {
					seen[s.Date] = true
				}
			}
			return len(seen), nil
		},
		UsageDays: func() (int, error) {
			recs, err := entries.Load(context.Background(), user)
			if err != nil {
				return 0, err
			}
			seen := map[string]bool{}
			for _, e := range recs {
				seen[e.Date] = true
			}
			samples, err := health.Load(context.Background(), user)
			if err != nil {
				return 0, err
			}
			for _, s := range samples {
				seen[s.Date] = true
			}
			checks, err := completions.Load(context.Background(), user)
			if err != nil {
				return 0, err
			}
			for _, rec := range checks {
				seen[rec.Day] = true
			}
			return len(seen), nil
		},
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
