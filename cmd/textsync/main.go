// Package main is the entry point for the textsync demo editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/textsync/internal/config"
	"github.com/dshills/textsync/internal/editor"
	"github.com/dshills/textsync/internal/session"
	"github.com/dshills/textsync/internal/transport"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	DocumentID string
	LogLevel   string
	LogFile    string
	Mirrors    int
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := buildLogger(cfg.LogLevel, opts.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	widget, err := editor.NewWidget(nil, editor.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	hub := transport.NewHub(transport.WithHubLogger(logger))
	defer hub.Close()

	sessOpts := []session.Option{
		session.WithLogger(logger),
		session.WithDebounce(cfg.Debounce()),
		session.WithLimits(cfg.Limits()),
		session.WithFillerLines(cfg.FillerLines),
	}

	participant, err := transport.Join(hub, opts.DocumentID, widget,
		transport.WithLogger(logger),
		transport.WithSessionOptions(sessOpts...))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to join document: %v\n", err)
		return 1
	}
	defer participant.Close()
	widget.SetKeystrokeFunc(participant.Session().Keystroke)

	// Headless mirrors share the document in-process. They exercise the full
	// patch round trip and make a single terminal a working demo.
	mirrors := make([]*transport.Participant, 0, opts.Mirrors)
	for i := 0; i < opts.Mirrors; i++ {
		mirror, err := transport.Join(hub, opts.DocumentID, editor.NewContent(),
			transport.WithLogger(logger),
			transport.WithSessionOptions(sessOpts...))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start mirror: %v\n", err)
			return 1
		}
		mirrors = append(mirrors, mirror)
	}
	defer func() {
		for _, m := range mirrors {
			m.Close()
		}
	}()

	// Live-reload debounce and diff thresholds while the editor runs.
	if opts.ConfigPath != "" {
		watcher, err := config.Watch(opts.ConfigPath, func(next config.Config) {
			participant.Session().SetDebounce(next.Debounce())
			participant.Session().SetLimits(next.Limits())
			for _, m := range mirrors {
				m.Session().SetDebounce(next.Debounce())
				m.Session().SetLimits(next.Limits())
			}
		}, config.WithWatchLogger(logger))
		if err != nil {
			logger.Warn("config watch unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		widget.Quit()
	}()

	if err := widget.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Reconcile anything typed during the last debounce window before the
	// mirrors shut down.
	participant.Session().Flush()

	return 0
}

func buildLogger(level, path string) (*zap.Logger, error) {
	// The widget owns the terminal, so without a log file the only sensible
	// sink is none at all.
	if path == "" {
		return zap.NewNop(), nil
	}

	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.DocumentID, "doc", "scratch", "Document ID to synchronize")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file (default: logging disabled)")
	flag.IntVar(&opts.Mirrors, "mirrors", 1, "Number of headless mirror participants")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Textsync - differential text synchronization demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: textsync [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  textsync                        Edit with one in-process mirror\n")
		fmt.Fprintf(os.Stderr, "  textsync -doc notes -mirrors 3  Synchronize across three mirrors\n")
		fmt.Fprintf(os.Stderr, "  textsync -c textsync.toml       Use a config file with live reload\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Textsync %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.Mirrors < 0 {
		fmt.Fprintln(os.Stderr, "Error: -mirrors must not be negative")
		os.Exit(1)
	}

	return opts
}
