package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/game"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path (.db or .json)." type:"path" default:"~/.config/dayquest/dayquest.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init      cli.InitCmd `cmd:"" help:"Initialize dayquest storage."`
	Tui       cli.TuiCmd  `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Character struct {
		Create cli.CharacterCreateCmd `cmd:"" help:"Create your character."`
		Show   cli.CharacterShowCmd   `cmd:"" help:"Show character stats."`
		Reset  cli.CharacterResetCmd  `cmd:"" help:"Delete the character and all progress."`
	} `cmd:"" help:"Manage your character."`
	Day struct {
		Start cli.DayStartCmd `cmd:"" help:"Start a day session."`
		Show  cli.DayShowCmd  `cmd:"" help:"Show a day's missions and totals."`
		Close cli.DayCloseCmd `cmd:"" help:"Close a day session."`
	} `cmd:"" help:"Manage day sessions."`
	Mission struct {
		Add      cli.MissionAddCmd      `cmd:"" help:"Add a mission to a day."`
		List     cli.MissionListCmd     `cmd:"" help:"List a day's missions."`
		Complete cli.MissionCompleteCmd `cmd:"" help:"Complete a pending mission."`
		Fail     cli.MissionFailCmd     `cmd:"" help:"Mark a pending mission failed."`
	} `cmd:"" help:"Manage missions."`
	Habit struct {
		Add     cli.HabitAddCmd     `cmd:"" help:"Define a habit."`
		List    cli.HabitListCmd    `cmd:"" help:"List habit definitions."`
		Delete  cli.HabitDeleteCmd  `cmd:"" help:"Delete a habit definition."`
		Trigger cli.HabitTriggerCmd `cmd:"" help:"Record a habit trigger."`
	} `cmd:"" help:"Manage habits."`
	Store struct {
		List    cli.StoreListCmd    `cmd:"" help:"List the reward catalog."`
		Add     cli.StoreAddCmd     `cmd:"" help:"Add a reward to the catalog."`
		Delete  cli.StoreDeleteCmd  `cmd:"" help:"Remove a reward from the catalog."`
		Toggle  cli.StoreToggleCmd  `cmd:"" help:"Mark a reward available or unavailable."`
		Redeem  cli.StoreRedeemCmd  `cmd:"" help:"Redeem a reward with coins."`
		History cli.StoreHistoryCmd `cmd:"" help:"Show redemption history."`
	} `cmd:"" help:"The coin reward store."`
	Slots  cli.SlotsCmd  `cmd:"" help:"Show mission slot capacity."`
	Unlock cli.UnlockCmd `cmd:"" help:"Spend an earned slot unlock."`
	Loot   struct {
		List cli.LootListCmd `cmd:"" help:"List loot boxes."`
		Open cli.LootOpenCmd `cmd:"" help:"Open a loot box."`
	} `cmd:"" help:"Loot boxes earned on level-up."`
	Log      cli.LogCmd      `cmd:"" help:"Show the activity log."`
	Chart    cli.ChartCmd    `cmd:"" help:"Chart net XP per day."`
	Settings cli.SettingsCmd `cmd:"" help:"View or update settings."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dayquest"),
		kong.Description("Habit RPG for your terminal: daily missions, XP, coins, and a reward store"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Storage backend follows the file extension.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:  store,
		Engine: game.NewEngine(store),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
