package stress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/joshuapare/brkalloc/heap/alloc"
	"github.com/joshuapare/brkalloc/heap/brk"
	"github.com/joshuapare/brkalloc/internal/logger"
)

// ErrChecksFailed is returned by RunChecked when any guarantee was violated.
var ErrChecksFailed = errors.New("stress: checks failed")

// Run executes a randomized run over a fresh break of opts.Limit bytes.
//
// An allocation or resize failure aborts the run with an error, matching a
// driver that cannot continue without the slot. Check violations do not
// abort; they are collected in Report.Failures.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	b, err := brk.New(opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("reserve break: %w", err)
	}
	if c, ok := b.(io.Closer); ok {
		defer c.Close()
	}
	return RunOn(ctx, alloc.New(b, opts.Config), opts)
}

// RunChecked is Run that turns check violations into ErrChecksFailed.
func RunChecked(ctx context.Context, opts Options) (*Report, error) {
	return checked(Run(ctx, opts))
}

func checked(r *Report, err error) (*Report, error) {
	if err != nil {
		return r, err
	}
	if !r.OK() {
		return r, fmt.Errorf("%w: %d violation(s), first: %s", ErrChecksFailed, len(r.Failures), r.Failures[0])
	}
	return r, nil
}

// RunOn executes a randomized run against an existing heap. The heap is
// left with every slot freed.
func RunOn(ctx context.Context, h *alloc.Heap, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	log := opts.Logger
	if log == nil {
		log = logger.L
	}

	pivot, err := EncodePivot(opts.Pivot, opts.Charset)
	if err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := &driver{
		h:     h,
		rng:   rand.New(rand.NewSource(seed)),
		log:   log.With("policy", h.Config().Name, "seed", seed),
		chk:   checker{h: h},
		pivot: pivot,
		slots: make([]slot, opts.Iterations),
		report: &Report{
			Policy:     h.Config().Policy.String(),
			Seed:       seed,
			Iterations: opts.Iterations,
			Charset:    opts.Charset,
			PivotBytes: len(pivot),
		},
	}

	start := time.Now()
	for ix := range opts.Iterations {
		if err := ctx.Err(); err != nil {
			d.drain()
			return d.finish(start), err
		}
		if err := d.iterate(ix); err != nil {
			d.drain()
			return d.finish(start), err
		}
	}
	d.drain()
	return d.finish(start), nil
}

type driver struct {
	h      *alloc.Heap
	rng    *rand.Rand
	log    *slog.Logger
	chk    checker
	pivot  []byte
	slots  []slot
	report *Report
}

// between returns a uniform integer in [lo, hi].
func (d *driver) between(lo, hi int) int {
	return d.rng.Intn(hi-lo+1) + lo
}

// iterate fills slot ix, frees a random slot in [0, ix] and sometimes
// resizes slot ix.
func (d *driver) iterate(ix int) error {
	var size int
	if d.between(0, 9) == 0 {
		size = d.between(largeMin, largeMax)
		d.report.LargeAllocs++
	} else {
		size = d.between(1, len(d.pivot)+1)
	}
	d.log.Debug("alloc", "slot", ix, "size", size)

	p, err := d.h.Alloc(uint64(size))
	if err != nil {
		return fmt.Errorf("slot %d: alloc %d bytes: %w", ix, size, err)
	}
	d.report.Allocs++

	// Copy as much of the pivot as fits and terminate it.
	n := min(len(d.pivot), size-1)
	payload := d.h.Bytes(p)
	copy(payload, d.pivot[:n])
	payload[n] = 0
	d.slots[ix] = slot{ptr: p, want: append([]byte(nil), payload[:n+1]...)}
	d.log.Debug("wrote", "slot", ix, "ptr", uint64(p), "text", string(d.pivot[:n]))
	d.verify(fmt.Sprintf("[%d] alloc", ix))

	victim := d.between(0, ix)
	if s := d.slots[victim]; s.ptr != alloc.Nil {
		d.log.Debug("free", "slot", victim, "ptr", uint64(s.ptr))
		d.free(victim)
		d.verify(fmt.Sprintf("[%d] free slot %d", ix, victim))
	}

	if d.between(0, 4) == 0 {
		newSize := d.between(1, 2*size)
		old := d.slots[ix].ptr
		q, err := d.h.Realloc(old, uint64(newSize))
		if err != nil {
			return fmt.Errorf("slot %d: realloc to %d bytes: %w", ix, newSize, err)
		}
		d.report.Reallocs++
		switch {
		case old == alloc.Nil:
			// Slot was freed above; the resize acted as an allocation.
			d.slots[ix] = slot{ptr: q}
		case q == old:
			d.report.ReallocInPlace++
		default:
			d.report.ReallocMoved++
			d.slots[ix].ptr = q
		}
		d.log.Debug("realloc", "slot", ix, "from", uint64(old), "to", uint64(q), "size", newSize)
		d.verify(fmt.Sprintf("[%d] realloc to %d", ix, newSize))
	}
	return nil
}

// free releases slot i. A dropped block is counted, not fatal.
func (d *driver) free(i int) {
	if err := d.h.Free(d.slots[i].ptr); err != nil {
		d.report.FreeErrors++
		d.log.Warn("free failed", "slot", i, "err", err)
	} else {
		d.report.Frees++
	}
	d.slots[i] = slot{}
}

func (d *driver) verify(step string) {
	d.report.Checks++
	d.report.Failures = append(d.report.Failures, d.chk.check(step, d.slots)...)
	if live := d.h.Stats().LiveBytes; live > d.report.PeakLiveBytes {
		d.report.PeakLiveBytes = live
	}
}

// drain frees every remaining slot.
func (d *driver) drain() {
	for i, s := range d.slots {
		if s.ptr != alloc.Nil {
			d.log.Debug("final free", "slot", i, "ptr", uint64(s.ptr))
			d.free(i)
		}
	}
}

func (d *driver) finish(start time.Time) *Report {
	d.report.Duration = time.Since(start)
	d.report.Stats = d.h.Stats()
	return d.report
}
