package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/brkalloc/heap/alloc"
	"github.com/joshuapare/brkalloc/heap/stress"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// versionInfo is the --json form of the version command.
type versionInfo struct {
	Version  string   `json:"version"`
	Commit   string   `json:"commit"`
	Built    string   `json:"built"`
	Go       string   `json:"go"`
	Policies []string `json:"policies"`
	Charsets []string `json:"charsets"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:  version,
		Commit:   commit,
		Built:    date,
		Go:       runtime.Version(),
		Policies: []string{alloc.PolicyLowestFit.String(), alloc.PolicyFirstFit.String()},
		Charsets: stress.Charsets(),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, supported policies and charsets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func runVersion() error {
	v := currentVersion()
	if jsonOut {
		return printJSON(v)
	}
	fmt.Printf("memstress %s\n", v.Version)
	fmt.Printf("  commit: %s\n", v.Commit)
	fmt.Printf("  built: %s (%s)\n", v.Built, v.Go)
	fmt.Printf("  policies: %s\n", strings.Join(v.Policies, ", "))
	fmt.Printf("  charsets: %s\n", strings.Join(v.Charsets, ", "))
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
