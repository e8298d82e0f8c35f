// Package cli implements the cpusim command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/me/cpusim/internal/config"
	"github.com/me/cpusim/internal/logging"
	"github.com/me/cpusim/internal/server"
	"github.com/me/cpusim/internal/store"
	"github.com/me/cpusim/internal/tracing"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagDB        string
	flagConfig    string
	flagTraceFile string

	logger   *slog.Logger
	client   *Client
	settings *config.File
	shutdown tracing.ShutdownFunc
)

// defaultServer returns the default server URL, checking CPUSIM_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("CPUSIM_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// defaultDB returns the history database path, checking CPUSIM_DB env var first.
func defaultDB() string {
	if s := os.Getenv("CPUSIM_DB"); s != "" {
		return s
	}
	return config.DefaultDBPath()
}

// NewRootCmd creates the root cobra command for the cpusim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cpusim",
		Short: "cpusim - CPU scheduling simulator",
		Long:  "cpusim replays a process workload under FCFS, SJF, Round-Robin or priority scheduling and reports timelines and metrics.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			if _, err := logging.ParseFormat(flagLogFormat); err != nil {
				return err
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)

			settings = config.Default()
			if flagConfig != "" {
				f, err := config.LoadFile(flagConfig)
				if err != nil {
					return err
				}
				settings = f
				if !cmd.Flags().Changed("db") && os.Getenv("CPUSIM_DB") == "" && f.Server.DBPath != "" {
					flagDB = f.Server.DBPath
				}
			}

			sd, err := tracing.SetupFile("cpusim", server.Version, flagTraceFile)
			if err != nil {
				return err
			}
			shutdown = sd

			client = NewClient(flagServer, logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(context.Background())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "cpusim server URL (or CPUSIM_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().StringVar(&flagDB, "db", defaultDB(), "Run history database (or CPUSIM_DB env)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a cpusim.yaml config file")
	root.PersistentFlags().StringVar(&flagTraceFile, "trace-file", "", "Write OpenTelemetry spans to this file (\"-\" for stderr)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newValidateCmd(),
		newGenerateCmd(),
		newHistoryCmd(),
		newSubmitCmd(),
		newShowCmd(),
	)

	return root
}

// openStore opens and migrates the local run history.
func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	if flagDB != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(flagDB), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(flagDB), err)
		}
	}
	st, err := store.NewSQLiteStore(flagDB, logger)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return st, nil
}
