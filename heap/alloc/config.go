package alloc

import (
	"log/slog"

	"github.com/joshuapare/brkalloc/internal/format"
)

// DefaultRegistryCapacity bounds the lowest-fit registry in ConfigLowestFit.
const DefaultRegistryCapacity = 4096

// Config defines the allocator policy and its resource bounds.
type Config struct {
	// Name for this configuration (for reports)
	Name string

	// Policy selects the free-block registry
	Policy Policy

	// GrowIncrement is the number of bytes requested per Sbrk call (default 1 MiB)
	GrowIncrement int

	// RegistryCapacity bounds the lowest-fit registry. 0 means unbounded.
	// Ignored by the first-fit list, which is threaded through the headers.
	RegistryCapacity int

	// DiscardRejected drops undersized blocks popped during a lowest-fit
	// search instead of putting them back. They become unreachable.
	DiscardRejected bool

	// ZeroFill clears every carved payload. Always on for first-fit.
	ZeroFill bool

	// Strict tags blocks and validates pointers on Free and Realloc.
	Strict bool

	// Logger receives diagnostics. nil selects logger.L.
	Logger *slog.Logger
}

// Predefined configurations.
var (
	// ConfigLowestFit: bounded min-heap registry with splitting.
	ConfigLowestFit = Config{
		Name:             "LowestFit",
		Policy:           PolicyLowestFit,
		GrowIncrement:    format.GrowIncrement,
		RegistryCapacity: DefaultRegistryCapacity,
	}

	// ConfigFirstFit: LIFO list registry, no splitting, zeroed carves.
	ConfigFirstFit = Config{
		Name:          "FirstFit",
		Policy:        PolicyFirstFit,
		GrowIncrement: format.GrowIncrement,
		ZeroFill:      true,
	}

	// DefaultConfig is used when New is given a nil config.
	DefaultConfig = ConfigLowestFit
)

// withDefaults fills zero-valued fields.
func (c Config) withDefaults() Config {
	if c.GrowIncrement <= 0 {
		c.GrowIncrement = format.GrowIncrement
	}
	c.GrowIncrement = int(format.Align8(uint64(c.GrowIncrement)))
	if c.Name == "" {
		c.Name = c.Policy.String()
	}
	if c.Policy.zeroes() {
		c.ZeroFill = true
	}
	return c
}
