package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/me/cpusim/internal/config"
	"github.com/me/cpusim/internal/logging"
	"github.com/me/cpusim/internal/server"
	"github.com/me/cpusim/internal/store"
	"github.com/me/cpusim/internal/tracing"
)

func main() {
	cfg := config.DefaultServerConfig()

	configFile := flag.String("config", "", "Path to a cpusim.yaml config file (flags override it)")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Database path (default ~/.cpusim/cpusim.db)")
	flag.StringVar(&cfg.TraceFile, "trace-file", cfg.TraceFile, "Write OpenTelemetry spans to this file (\"-\" for stderr)")
	flag.IntVar(&cfg.CompareParallelism, "compare-parallelism", cfg.CompareParallelism, "Concurrent simulations per comparison (0 = unbounded)")
	flag.IntVar(&cfg.MaxTicks, "max-ticks", cfg.MaxTicks, "Reject workloads whose latest arrival plus total burst exceeds this")
	flag.Int64Var(&cfg.MaxBodyBytes, "max-body-bytes", cfg.MaxBodyBytes, "Maximum request body size")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()

	if *configFile != "" {
		f, err := config.LoadFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		// Explicit flags win over the file.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		fileCfg := f.Server
		if set["addr"] {
			fileCfg.Addr = cfg.Addr
		}
		if set["log-level"] {
			fileCfg.LogLevel = cfg.LogLevel
		}
		if set["log-format"] {
			fileCfg.LogFormat = cfg.LogFormat
		}
		if set["db"] {
			fileCfg.DBPath = cfg.DBPath
		}
		if set["trace-file"] {
			fileCfg.TraceFile = cfg.TraceFile
		}
		if set["compare-parallelism"] {
			fileCfg.CompareParallelism = cfg.CompareParallelism
		}
		if set["max-ticks"] {
			fileCfg.MaxTicks = cfg.MaxTicks
		}
		if set["max-body-bytes"] {
			fileCfg.MaxBodyBytes = cfg.MaxBodyBytes
		}
		cfg = fileCfg
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	shutdownTracing, err := tracing.SetupFile("cpusim-server", server.Version, cfg.TraceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup tracing: %v\n", err)
		os.Exit(1)
	}

	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", filepath.Dir(cfg.DBPath), err)
			os.Exit(1)
		}
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", cfg.DBPath)

	srv := server.New(cfg, st, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "version", server.Version)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("trace flush failed", "error", err)
	}
	logger.Info("server stopped")
}
