package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/config"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/storage"
	"github.com/existflow/ironboard/internal/store"
	"github.com/existflow/ironboard/internal/tui"
)

type rootOptions struct {
	logLevel   string
	logFile    string
	logConsole bool
	storage    string
	ephemeral  bool
}

func newRootCmd(a *app) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ironboard",
		Short: "IronBoard - kanban boards in the terminal",
		Long: `IronBoard keeps boards, columns and tasks in a local store
and shows them as a kanban board.

Run 'ironboard' without arguments to launch the interactive board.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				logger.Info("Launching TUI")
				m := tui.NewModel(st, tui.Options{
					BoardID: currentBoard(),
					NewID:   a.newID,
					Now:     a.now,
					OnBoard: func(id string) {
						if err := setCurrentBoard(id); err != nil {
							logger.Warn("Failed to save current board", logger.F("error", err))
						}
					},
				})
				p := tea.NewProgram(m, tea.WithAltScreen())
				if _, err := p.Run(); err != nil {
					logger.Error("TUI error", logger.F("error", err))
					return fmt.Errorf("failed to run TUI: %w", err)
				}
				logger.Info("TUI exited normally")
				return nil
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Info("IronBoard exiting", logger.F("command", cmd.Name()))
			logger.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Path to log file")
	cmd.PersistentFlags().BoolVar(&opts.logConsole, "log-console", false, "Enable console logging")
	cmd.PersistentFlags().StringVar(&opts.storage, "storage", "", "Storage driver (sqlite, postgres, redis, memory)")
	cmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep data in memory for this run only")

	cmd.AddCommand(newBoardCmd(a))
	cmd.AddCommand(newColumnCmd(a))
	cmd.AddCommand(newTaskCmd(a))
	cmd.AddCommand(newSettingsCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newClearCmd(a))

	return cmd
}

// setup loads config, applies flag overrides and starts the logger
func (a *app) setup(cmd *cobra.Command, opts *rootOptions) error {
	// Load config from file (or defaults if not exists)
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("Failed to load config, using defaults", logger.F("error", err))
		cfg = config.DefaultConfig()
	}

	// Override with CLI flags if provided
	var changes []func(*config.Config)
	if cmd.Flags().Changed("log-level") {
		changes = append(changes, func(c *config.Config) { c.LogLevel = opts.logLevel })
	}
	if cmd.Flags().Changed("log-file") {
		changes = append(changes, func(c *config.Config) { c.LogFile = opts.logFile })
	}
	if cmd.Flags().Changed("log-console") {
		changes = append(changes, func(c *config.Config) { c.LogConsole = opts.logConsole })
	}
	if cmd.Flags().Changed("storage") {
		changes = append(changes, func(c *config.Config) { c.Storage.Driver = opts.storage })
	}
	applyFlags := func(c *config.Config) {
		for _, change := range changes {
			change(c)
		}
	}
	applyFlags(cfg)

	// Save config if changed via CLI flags
	if len(changes) > 0 {
		if err := config.Update(applyFlags); err != nil {
			logger.Warn("Failed to save config", logger.F("error", err))
		}
	}

	// never saved
	if opts.ephemeral {
		cfg.Storage.Driver = storage.DriverMemory
	}
	a.cfg = cfg

	logConfig := logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		FilePath:   cfg.LogFile,
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
		Console:    cfg.LogConsole,
	}
	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("IronBoard started",
		logger.F("command", cmd.Name()),
		logger.F("storage", cfg.Storage.Driver))
	return nil
}

// Execute runs the root command
func Execute() error {
	return newRootCmd(newApp()).Execute()
}
