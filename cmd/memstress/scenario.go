package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brkalloc/heap/alloc"
	"github.com/joshuapare/brkalloc/heap/brk"
	"github.com/joshuapare/brkalloc/heap/stress"
)

func init() {
	rootCmd.AddCommand(newScenarioCmd())
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Replay the scripted allocate/free/reuse/relocate sequence",
		Long: `The scenario command allocates 100 and 50 bytes, frees the first block,
allocates 90 bytes and resizes the 50-byte block to 200, checking after each
step that live blocks do not overlap and keep their contents.

Example:
  memstress scenario
  memstress scenario --policy first-fit --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario()
		},
	}
}

func runScenario() error {
	cfg, err := heapConfig()
	if err != nil {
		return err
	}
	b := brk.NewSlice(stress.DefaultLimit)
	defer b.Close()

	report, err := stress.Scenario(alloc.New(b, cfg))
	if err != nil {
		return fmt.Errorf("scenario failed: %w", err)
	}
	report.Version = version

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printInfo("\nScenario (%s)\n", report.Policy)
		for i, s := range report.Steps {
			printInfo("  %d. %-8s", i+1, s.Op)
			if s.Size > 0 {
				printInfo(" size=%-4d", s.Size)
			}
			printInfo(" ptr=%#x", s.Ptr)
			if s.Note != "" {
				printInfo("  (%s)", s.Note)
			}
			printInfo("\n")
		}
		printChecks(report)
	}
	if !report.OK() {
		return fmt.Errorf("%w: %d violation(s)", stress.ErrChecksFailed, len(report.Failures))
	}
	return nil
}
