package stress

import (
	"time"

	"github.com/joshuapare/brkalloc/heap/alloc"
)

// Report summarizes a run.
type Report struct {
	// Version of the tool that produced the report, if set by the caller.
	Version string `json:"version,omitempty"`

	Policy     string        `json:"policy"`
	Seed       int64         `json:"seed,omitempty"`
	Iterations int           `json:"iterations"`
	Charset    string        `json:"charset,omitempty"`
	PivotBytes int           `json:"pivot_bytes"`
	Duration   time.Duration `json:"duration_ns"`

	Allocs         int `json:"allocs"`
	LargeAllocs    int `json:"large_allocs"`
	Frees          int `json:"frees"`
	Reallocs       int `json:"reallocs"`
	ReallocInPlace int `json:"realloc_in_place"`
	ReallocMoved   int `json:"realloc_moved"`
	FreeErrors     int `json:"free_errors"`

	PeakLiveBytes uint64 `json:"peak_live_bytes"`
	Checks        int    `json:"checks"`

	// Steps records the scripted operations of a Scenario run.
	Steps []Step `json:"steps,omitempty"`

	Failures []string    `json:"failures,omitempty"`
	Stats    alloc.Stats `json:"stats"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// Step is one operation of a scripted scenario.
type Step struct {
	Op   string `json:"op"`
	Size uint64 `json:"size,omitempty"`
	Ptr  uint64 `json:"ptr,omitempty"`
	Note string `json:"note,omitempty"`
}
