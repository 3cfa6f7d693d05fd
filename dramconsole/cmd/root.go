// Package cmd provides the command-line interface of the DRAM console.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootState struct {
	cfg    Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	st := &rootState{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "dramconsole",
		Short: "DRAM bring-up and row-hammer test console.",
		Long: `dramconsole reads commands from standard input and drives a ` +
			`simulated DRAM test block. Use "help" at the prompt to list ` +
			`the console commands.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = st.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, st.cfg, st.logger)
		},
	}

	addConfigFlags(root)
	root.AddCommand(newHistoryCmd())

	return root
}

func (st *rootState) setup(cmd *cobra.Command) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(envFile)
	if err != nil {
		return err
	}

	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	st.cfg = cfg
	st.logger = logger

	return nil
}

func newLogger(cfg Config) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	config.Level = level

	if cfg.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

// Execute runs the root command and exits, running the registered exit
// handlers first.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
