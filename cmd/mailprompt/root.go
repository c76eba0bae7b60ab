// ABOUTME: Root Cobra command and global flags for the mailprompt CLI.
// ABOUTME: Sets up lifecycle hooks for config, logger, store, and workspace; runs the TUI.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/2389-research/mailprompt/internal/config"
	"github.com/2389-research/mailprompt/internal/kvstore"
	"github.com/2389-research/mailprompt/internal/logging"
	"github.com/2389-research/mailprompt/internal/session"
	"github.com/2389-research/mailprompt/internal/tui"
	"github.com/2389-research/mailprompt/internal/workspace"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var globalConfig *config.Config
var globalLogger *zap.Logger
var globalStore kvstore.Store
var globalWorkspace *workspace.Workspace

// Flags
var (
	devMode   bool
	ephemeral bool
)

var rootCmd = &cobra.Command{
	Use:     "mailprompt",
	Short:   "Assemble email-drafting prompts from context, intent, and tone",
	Version: version,
	Long: `
███╗   ███╗ █████╗ ██╗██╗     ██████╗ ██████╗  ██████╗ ███╗   ███╗██████╗ ████████╗
████╗ ████║██╔══██╗██║██║     ██╔══██╗██╔══██╗██╔═══██╗████╗ ████║██╔══██╗╚══██╔══╝
██╔████╔██║███████║██║██║     ██████╔╝██████╔╝██║   ██║██╔████╔██║██████╔╝   ██║
██║╚██╔╝██║██╔══██║██║██║     ██╔═══╝ ██╔══██╗██║   ██║██║╚██╔╝██║██╔═══╝    ██║
██║ ╚═╝ ██║██║  ██║██║███████╗██║     ██║  ██║╚██████╔╝██║ ╚═╝ ██║██║        ██║
╚═╝     ╚═╝╚═╝  ╚═╝╚═╝╚══════╝╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚═╝        ╚═╝

Paste an email thread, jot down what you want to say, pick a tone,
and get a ready-to-use prompt for your text-generation tool of choice.
Inputs auto-save locally.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		logger, err := logging.New(cfg, devMode)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled (%v).\n", err)
			logger = zap.NewNop()
		}
		globalLogger = logger.With(zap.String("command", cmd.CommandPath()))

		globalStore = openStore(cfg, globalLogger, cmd.ErrOrStderr())
		globalWorkspace = workspace.Open(session.NewStore(globalStore, globalLogger), globalLogger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalStore != nil {
			if err := globalStore.Close(); err != nil {
				globalLogger.Warn("failed to close store", zap.Error(err))
			}
			globalStore = nil
		}
		if globalLogger != nil {
			_ = globalLogger.Sync()
		}
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Development mode: debug-level console logging to the log file")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep everything in memory; nothing is saved")
}

// openStore opens the durable store. If it cannot be opened the session runs
// in memory so the form still works, and a warning goes to warn.
func openStore(cfg *config.Config, logger *zap.Logger, warn io.Writer) kvstore.Store {
	if ephemeral {
		return kvstore.NewMemoryStore()
	}

	path, err := cfg.GetStorePath()
	if err == nil {
		var store *kvstore.SQLiteStore
		store, err = kvstore.OpenSQLite(path)
		if err == nil {
			logger.Debug("store opened", zap.String("path", store.Path()))
			return store
		}
	}

	logger.Error("store unavailable, continuing in memory", zap.Error(err))
	fmt.Fprintf(warn, "Warning: store unavailable (%v); changes will not be saved.\n", err)
	return kvstore.NewMemoryStore()
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(globalWorkspace, globalLogger,
		tui.WithDebounce(globalConfig.GetDebounce()),
		tui.WithCopiedFor(globalConfig.GetCopiedFor()),
	)
}
