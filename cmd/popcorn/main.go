package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amaumene/popcorn/internal/config"
	"github.com/amaumene/popcorn/internal/controllers"
	"github.com/amaumene/popcorn/internal/metrics"
	"github.com/amaumene/popcorn/internal/models"
	"github.com/amaumene/popcorn/internal/services/omdb"
	"github.com/amaumene/popcorn/internal/state"
	"github.com/amaumene/popcorn/internal/tui"
	"github.com/amaumene/popcorn/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "popcorn",
		Short:         "Search movies and keep a list of the ones you watched",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}
	root.AddCommand(newSearchCommand(), newShowCommand(), newWatchedCommand())
	return root
}

// environment holds what every command needs
type environment struct {
	cfg     *config.Config
	logger  *logrus.Logger
	metrics *metrics.Metrics
	store   state.Store
	client  *omdb.Client
	closers []io.Closer
}

// setup loads configuration and opens storage. Interactive sessions log to
// a file since the terminal UI owns stdout.
func setup(interactive bool) (*environment, error) {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	env := &environment{cfg: cfg, metrics: metrics.New()}
	if interactive {
		logger, f, err := utils.NewFileLogger(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return nil, err
		}
		env.logger = logger
		env.closers = append(env.closers, f)
	} else {
		env.logger = utils.NewLogger(cfg.LogLevel, os.Stderr)
	}

	// 3. Initialize storage
	switch cfg.StorageBackend {
	case config.StorageFile:
		store, err := state.NewFileStore(cfg.StorageDir)
		if err != nil {
			env.Close()
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		env.store = store
	default:
		db, err := models.NewDatabase(cfg.DatabaseFile)
		if err != nil {
			env.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		env.store = db
		env.closers = append(env.closers, db)
	}
	env.logger.WithField("backend", cfg.StorageBackend).Debug("Storage initialized")

	// 4. Initialize OMDb client
	env.client, err = omdb.NewClient(cfg, env.logger, omdb.WithMetrics(env.metrics))
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to initialize OMDb client: %w", err)
	}

	return env, nil
}

func (e *environment) watched() *state.Persisted[models.WatchedList] {
	return state.NewPersisted(e.store, models.WatchedKey, models.WatchedList{}, e.metrics, e.logger)
}

// Close writes the metrics textfile and releases storage and the log file
func (e *environment) Close() {
	if e.cfg.MetricsFile != "" {
		if err := e.metrics.WriteTextfile(e.cfg.MetricsFile); err != nil && e.logger != nil {
			e.logger.WithError(err).Warn("Failed to write metrics file")
		}
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && e.logger != nil {
			e.logger.WithError(err).Warn("Error during shutdown")
		}
	}
}

func runTUI(ctx context.Context) error {
	env, err := setup(true)
	if err != nil {
		return err
	}
	defer env.Close()
	logger := env.logger
	logger.Info("Starting popcorn")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	titles := &tui.TitleBuffer{}
	ctrl := controllers.NewAppController(
		controllers.NewSearchController(env.client, env.cfg.MinQueryLength, env.metrics, logger),
		controllers.NewDetailController(env.client, env.metrics, logger),
		env.watched(),
		controllers.NewTitleScope(titles.Set),
		logger,
	)

	p := tea.NewProgram(tui.NewApp(ctx, ctrl, titles, logger), tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	ctrl.Close()

	logger.Info("popcorn stopped")
	return nil
}
