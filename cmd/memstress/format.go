package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/brkalloc/heap/stress"
)

// printReport prints a run report as text.
func printReport(r *stress.Report) {
	printInfo("\nStress Run: %s\n", r.Policy)
	printInfo("%s\n\n", strings.Repeat("=", 40))

	printInfo("Workload:\n")
	if r.Version != "" {
		printInfo("  memstress: %s\n", r.Version)
	}
	printInfo("  Seed: %d\n", r.Seed)
	printInfo("  Iterations: %d\n", r.Iterations)
	printInfo("  Pivot: %d bytes\n", r.PivotBytes)
	printInfo("  Duration: %s\n\n", r.Duration)

	printInfo("Operations:\n")
	printInfo("  Allocations: %s (%d large)\n", formatNumber(int64(r.Allocs)), r.LargeAllocs)
	printInfo("  Frees: %s\n", formatNumber(int64(r.Frees)))
	printInfo("  Reallocs: %d (%d in place, %d moved)\n", r.Reallocs, r.ReallocInPlace, r.ReallocMoved)
	if r.FreeErrors > 0 {
		printInfo("  Dropped frees: %d\n", r.FreeErrors)
	}
	printInfo("  Peak live: %s\n\n", formatBytes(int64(r.PeakLiveBytes)))

	st := r.Stats
	printInfo("Heap:\n")
	printInfo("  Break grown: %s in %d step(s)\n", formatBytes(int64(st.GrowBytes)), st.GrowCalls)
	printInfo("  Served from registry: %d, carved: %d\n", st.AllocFastPath, st.AllocSlowPath)
	printInfo("  Splits: %d\n", st.SplitCount)
	printInfo("  Free blocks: %d\n", st.FreeBlocks)
	if st.RegistryOverflows > 0 || st.DiscardedBlocks > 0 {
		printInfo("  Registry overflows: %d, discarded: %d\n", st.RegistryOverflows, st.DiscardedBlocks)
	}
	printInfo("\n")

	printChecks(r)
}

// printChecks prints the check tally and any failures.
func printChecks(r *stress.Report) {
	if r.OK() {
		printInfo("Checks: %d passed\n", r.Checks)
		return
	}
	printInfo("Checks: %d failed\n", len(r.Failures))
	for _, f := range r.Failures {
		printInfo("  - %s\n", f)
	}
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Add commas
	var result strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}
