package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brkalloc/heap/alloc"
	"github.com/joshuapare/brkalloc/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	policy  string
	strict  bool
	logDir  string
)

var rootCmd = &cobra.Command{
	Use:   "memstress",
	Short: "Exercise the brkalloc heap with randomized and scripted workloads",
	Long: `memstress drives the brkalloc allocator through allocate, free and resize
sequences and verifies that returned blocks are aligned, never overlap and
keep their contents.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVarP(&policy, "policy", "p", alloc.PolicyLowestFit.String(), "Free-block policy: lowest-fit or first-fit")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Validate pointers on free and realloc")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write a daily log file to this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging routes allocator diagnostics to a log file when --log-dir is
// set, or to stderr at debug level with --verbose.
func setupLogging() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if logDir != "" {
		return logger.Init(logger.Options{Enabled: true, LogDir: logDir, Level: level})
	}
	if verbose && !quiet {
		logger.L = logger.New(os.Stderr, level, false)
	}
	return nil
}

// heapConfig builds the allocator config selected by the global flags.
func heapConfig() (*alloc.Config, error) {
	p, err := alloc.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	cfg := alloc.ConfigLowestFit
	if p == alloc.PolicyFirstFit {
		cfg = alloc.ConfigFirstFit
	}
	cfg.Strict = strict
	return &cfg, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
