package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brkalloc/heap/stress"
)

var (
	runSeed       int64
	runIterations int
	runPivot      string
	runCharset    string
	runLimit      uint64
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().Int64Var(&runSeed, "seed", 0, "Random seed (0 picks one from the clock)")
	cmd.Flags().IntVarP(&runIterations, "iterations", "n", stress.DefaultIterations, "Number of allocation slots")
	cmd.Flags().StringVar(&runPivot, "pivot", stress.DefaultPivot, "Text copied into every block")
	cmd.Flags().StringVar(&runCharset, "charset", "utf-8",
		"Encoding of the pivot text ("+strings.Join(stress.Charsets(), ", ")+")")
	cmd.Flags().Uint64Var(&runLimit, "limit", stress.DefaultLimit, "Break reservation in bytes")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [pivot]",
		Short: "Run the randomized allocate/free/resize workload",
		Long: `The run command fills a fixed number of slots with blocks of random size,
copies the pivot text into each, frees a random earlier slot after every
allocation and resizes one slot in five. Every step is checked for
alignment, overlap and content preservation.

Example:
  memstress run
  memstress run --seed 42 --iterations 500 --policy first-fit
  memstress run "Grüße aus Köln" --charset latin1 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

func runRun(args []string) error {
	cfg, err := heapConfig()
	if err != nil {
		return err
	}
	pivot := runPivot
	if len(args) == 1 {
		pivot = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printVerbose("Running %d iterations with %s policy\n", runIterations, cfg.Policy)

	report, err := stress.RunChecked(ctx, stress.Options{
		Seed:       runSeed,
		Iterations: runIterations,
		Pivot:      pivot,
		Charset:    runCharset,
		Config:     cfg,
		Limit:      runLimit,
	})
	if report != nil {
		report.Version = version
		if jsonOut {
			if perr := printJSON(report); perr != nil && err == nil {
				return perr
			}
		} else {
			printReport(report)
		}
	}
	if err != nil {
		return fmt.Errorf("stress run failed: %w", err)
	}
	return nil
}
