package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thesavant42/launchdeck/internal/api"
	"github.com/thesavant42/launchdeck/internal/app"
	"github.com/thesavant42/launchdeck/internal/config"
	"github.com/thesavant42/launchdeck/internal/db"
	"github.com/thesavant42/launchdeck/internal/favorites"
	"github.com/thesavant42/launchdeck/internal/fetch"
	"github.com/thesavant42/launchdeck/internal/filter"
	"github.com/thesavant42/launchdeck/internal/logging"
	"github.com/thesavant42/launchdeck/internal/models"
	"github.com/thesavant42/launchdeck/internal/ui"
)

func main() {
	if err := run(); err != nil {
		ui.PrintError(err.Error())
		for _, hint := range failureHints(err) {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

// run does all the work so deferred closes happen before main exits
func run() (err error) {
	// Load .env and the environment; flags below override both
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Parse command line flags
	flag.StringVar(&cfg.APIURL, "api", cfg.APIURL, "SpaceX API base URL")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database for favorites (empty keeps them in memory)")
	flag.StringVar(&cfg.LogPath, "log", cfg.LogPath, "Log file path (default: next to the database)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	listFlag := flag.Bool("list", false, "Print the filtered launch list and exit")
	exportFlag := flag.String("export", "", "Write the filtered launch list to a markdown file and exit")
	askFlag := flag.Bool("ask", false, "Prompt for filters before -list or -export")
	searchFlag := flag.String("search", "", "Filter by mission name (case-insensitive)")
	yearFlag := flag.String("year", "", "Filter by launch year (UTC), or \"any\"")
	successFlag := flag.Bool("success", false, "Only successful launches")
	favoritesFlag := flag.Bool("favorites", false, "Only favorite launches")
	showFlag := flag.String("show", "", "Print the details of one launch by ID and exit")
	favFlag := flag.String("fav", "", "Toggle a launch ID in favorites and exit")
	clearFavsFlag := flag.Bool("clear-favorites", false, "Remove all favorites (asks first) and exit")
	staleGuardFlag := flag.Bool("stale-guard", false, "Drop list responses superseded by a newer refresh")
	flag.Parse()

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Open(cfg.ResolvedLogPath(), cfg.Level())
	defer logger.Close()
	defer func() {
		if err != nil {
			logger.Error("Command failed", "error", err)
			err = &loggedError{err: err, logPath: logger.Path()}
		}
	}()

	// Favorites slot: SQLite when configured, memory otherwise
	var slot favorites.Slot = favorites.NewMemorySlot()
	if cfg.DBPath != "" {
		database, err := db.New(cfg.DBPath)
		if err != nil {
			logger.Warn("Favorites will not persist", "db", cfg.DBPath, "error", err)
		} else {
			defer database.Close()
			slot = database
		}
	}

	client := api.NewClient(cfg.APIURL, cfg.Timeout, logger.Component(logging.PrefixAPI))
	logger.Info("Starting launchdeck", "api", client.BaseURL(), "timeout", cfg.Timeout, "db", cfg.DBPath)
	store := favorites.New(slot, logger.Component(logging.PrefixFavorites))

	fetchLogger := logger.Component(logging.PrefixFetch)
	var opts []fetch.Option
	if *staleGuardFlag {
		opts = append(opts, fetch.WithStaleGuard())
	}
	state := app.New(
		fetch.NewController(client, client, fetchLogger, opts...),
		fetch.NewDetailController(client, fetchLogger),
		store,
	)
	state.Filters = filter.Config{
		Search:        *searchFlag,
		SuccessOnly:   *successFlag,
		FavoritesOnly: *favoritesFlag,
	}
	state.Filters.SetYear(*yearFlag)

	ctx := context.Background()

	switch {
	case *clearFavsFlag:
		return clearFavorites(store)

	case *favFlag != "":
		if store.Toggle(*favFlag) {
			ui.PrintSuccess(fmt.Sprintf("Added %s to favorites", *favFlag))
		} else {
			ui.PrintSuccess(fmt.Sprintf("Removed %s from favorites", *favFlag))
		}
		return nil

	case *showFlag != "":
		var launch *models.Launch
		err := ui.RunWithSpinner(ctx, "Fetching launch details...", func(ctx context.Context) error {
			var err error
			launch, err = state.Details.Fetch(ctx, *showFlag)
			return err
		})
		if err != nil {
			return err
		}
		ui.PrintLaunchDetail(*launch, store.Contains(launch.ID))
		return nil

	case *listFlag || *exportFlag != "" || *askFlag:
		return runReport(ctx, state, *listFlag, *exportFlag, *askFlag)

	default:
		return ui.RunCatalog(state, logger.Logger, ".")
	}
}

// loggedError marks a failure that was also written to the log file
type loggedError struct {
	err     error
	logPath string
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

// failureHints suggests what to try after a failed command
func failureHints(err error) []string {
	var hints []string
	switch {
	case api.IsTimeout(err):
		hints = append(hints, "The SpaceX API did not answer in time. Try a larger -timeout.")
	case api.IsRemoteFetchFailed(err):
		hints = append(hints, "Check the -api URL and your network connection.")
	}
	var le *loggedError
	if errors.As(err, &le) && le.logPath != "" {
		hints = append(hints, "Details in "+le.logPath)
	}
	return hints
}

// runReport fetches the list once, then prints and/or exports it
func runReport(ctx context.Context, state *app.State, list bool, exportPath string, ask bool) error {
	if err := ui.RunWithSpinner(ctx, "Fetching launches...", state.Refresh); err != nil {
		return err
	}

	if ask {
		cfg, err := ui.PromptForFilters(filter.Years(time.Now()), state.Filters)
		if err != nil {
			return err
		}
		state.Filters = cfg
	}

	visible := state.Visible()
	total := len(state.Launches.Launches())

	// -ask on its own prints the result
	if list || exportPath == "" {
		ui.PrintLaunchTable(visible, state.Filters, state.Favorites.IDs())
		savedAt, _ := state.Favorites.SavedAt()
		ui.PrintSummary(len(visible), total, state.Favorites.Len(), savedAt)
	}

	if exportPath != "" {
		if err := ui.WriteMarkdownReport(exportPath, visible, state.Filters, state.Favorites.IDs(), time.Now()); err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Exported %d launches to %s", len(visible), exportPath))
	}
	return nil
}

func clearFavorites(store *favorites.Store) error {
	n := store.Len()
	if n == 0 {
		fmt.Println("No favorites to clear.")
		return nil
	}
	ok, err := ui.ConfirmClearFavorites(n)
	if err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}
	if !ok {
		fmt.Println("Favorites kept.")
		return nil
	}
	store.Clear()
	ui.PrintSuccess(fmt.Sprintf("Cleared %d favorites", n))
	return nil
}
