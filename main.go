package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"txtedit/config"
	"txtedit/console"
	"txtedit/editor"
	"txtedit/store"
)

// Set via ldflags during build.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		logLevel    string
		initConfig  bool
		showRecent  bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file (.json, .yaml or .toml)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&initConfig, "init-config", false, "Write a default config file and exit")
	flag.BoolVar(&showRecent, "recent", false, "List recently used files and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: txtedit [options] [file]\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("txtedit %s\n", version)
		return 0
	}

	if configPath == "" {
		configPath = config.ConfigPath()
	}
	if initConfig {
		if err := config.Default().Save(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote %s\n", configPath)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	log, logCloser, err := editor.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		return 1
	}
	defer logCloser.Close()
	log.Info("txtedit started", "version", version, "config", configPath,
		"interactive", console.IsTerminal(os.Stdin))

	var history *store.Store
	if cfg.HistoryFile != "" {
		history, err = store.Open(cfg.HistoryFile)
		if err != nil {
			// Editing works without history.
			log.Warn("history unavailable", "err", err)
		} else {
			defer history.Close()
		}
	}

	if showRecent {
		if history == nil {
			fmt.Fprintln(os.Stderr, "Error: file history is not available")
			return 1
		}
		entries, err := history.Recent(cfg.HistorySize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for _, e := range entries {
			fmt.Printf("%s  %-4s  %s\n", e.Time.Format("2006-01-02 15:04"), e.Op, e.Path)
		}
		return 0
	}

	args := flag.Args()
	if len(args) > 1 {
		flag.Usage()
		return 2
	}

	opts := []editor.Option{editor.WithLogger(log)}
	if history != nil {
		opts = append(opts, editor.WithHistory(history))
	}
	e := editor.New(cfg, os.Stdin, os.Stdout, opts...)
	defer e.Close()

	if len(args) == 1 {
		_ = e.OpenFile(args[0])
	}

	if err := e.Run(); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Info("txtedit exited")
	return 0
}
