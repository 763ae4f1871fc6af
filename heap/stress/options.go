package stress

import (
	"log/slog"

	"github.com/joshuapare/brkalloc/heap/alloc"
)

// DefaultPivot is the text copied into every payload.
const DefaultPivot = "Now is the time for all good people to come to the aid of their country."

const (
	// DefaultIterations is the number of allocation slots per run.
	DefaultIterations = 30

	// DefaultLimit is the break reservation for a run. Large requests reach
	// 1 MiB and resizes double them, so this leaves ample headroom.
	DefaultLimit = 256 << 20

	// Large requests are drawn uniformly from [largeMin, largeMax].
	largeMin = 1 << 10
	largeMax = 1 << 20
)

// Options configures a randomized run.
type Options struct {
	// Seed for the random source. 0 picks a time-based seed, which is then
	// reported back in Report.Seed.
	Seed int64

	// Iterations is the number of slots to fill (default 30)
	Iterations int

	// Pivot is the text written into each payload (default DefaultPivot)
	Pivot string

	// Charset names the encoding applied to Pivot (default utf-8)
	Charset string

	// Config selects the allocator policy (nil for alloc.DefaultConfig)
	Config *alloc.Config

	// Limit is the break reservation in bytes (default DefaultLimit)
	Limit uint64

	// Logger receives a per-step trace at debug level. nil selects logger.L.
	Logger *slog.Logger
}

// withDefaults fills zero-valued fields.
func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Pivot == "" {
		o.Pivot = DefaultPivot
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Config == nil {
		cfg := alloc.DefaultConfig
		o.Config = &cfg
	}
	return o
}
