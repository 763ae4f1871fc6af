package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brkalloc/heap/alloc"
	"github.com/joshuapare/brkalloc/heap/stress"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// resetFlags restores every flag variable to its default.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	policy = alloc.PolicyLowestFit.String()
	strict = false
	logDir = ""

	runSeed = 0
	runIterations = stress.DefaultIterations
	runPivot = stress.DefaultPivot
	runCharset = "utf-8"
	runLimit = stress.DefaultLimit
}

// decodeReport parses JSON command output into a report.
func decodeReport(t *testing.T, output string) stress.Report {
	t.Helper()
	var r stress.Report
	require.NoError(t, json.Unmarshal([]byte(output), &r), "output: %s", output)
	return r
}
