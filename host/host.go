// Package host drives a widget provider the way a home-screen host would:
// placeholder first, then timelines, rendering each entry at its instant.
package host

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/drake/clockwidget/clock"
	"github.com/drake/clockwidget/render"
	"github.com/drake/clockwidget/timer"
	"github.com/drake/clockwidget/widget"
)

// Display receives rendered views.
type Display interface {
	Show(v render.View)
}

// Scheduler issues wake-ups at absolute instants.
type Scheduler interface {
	At(t time.Time) int
	Close()
	Pending() int
}

// Options configures a Host.
type Options struct {
	Provider   widget.Provider
	Descriptor widget.Descriptor
	Family     widget.Family
	Config     widget.Configuration
	Clock      clock.Clock // nil uses the system clock
	Logger     *log.Logger // nil discards
}

// Stats is a point-in-time view of host counters.
type Stats struct {
	Timelines int64
	Rendered  int64
	Pending   int
}

// wake is what a scheduled wake-up stands for.
type wake struct {
	entry  widget.Entry
	reload bool
}

// Host owns the schedule for one widget instance.
// Run is the only goroutine that touches the schedule map.
type Host struct {
	provider widget.Provider
	family   widget.Family
	config   widget.Configuration
	clock    clock.Clock
	logger   *log.Logger
	display  Display

	wakeups chan timer.Event
	sched   Scheduler
	pending map[int]wake

	timelines atomic.Int64
	rendered  atomic.Int64
}

// New validates opts and creates a host that shows views on d.
func New(opts Options, d Display) (*Host, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("host: no provider")
	}
	if d == nil {
		return nil, fmt.Errorf("host: no display")
	}
	if !opts.Descriptor.Supports(opts.Family) {
		return nil, fmt.Errorf("host: widget %q does not support family %v", opts.Descriptor.Kind, opts.Family)
	}

	c := opts.Clock
	if c == nil {
		c = clock.Real{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	h := &Host{
		provider: opts.Provider,
		family:   opts.Family,
		config:   opts.Config,
		clock:    c,
		logger:   logger,
		display:  d,
		wakeups:  make(chan timer.Event, 16),
		pending:  make(map[int]wake),
	}
	h.sched = timer.NewService(h.wakeups, c)
	return h, nil
}

// Preview renders the provider's snapshot entry.
func (h *Host) Preview(ctx context.Context) render.View {
	return render.Render(h.provider.Snapshot(ctx, h.config), h.family)
}

// Run shows the placeholder, then follows timelines until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	defer func() {
		h.sched.Close()
		clear(h.pending)
	}()

	h.show(h.provider.Placeholder())
	h.reload(ctx)

	for {
		select {
		case <-ctx.Done():
			h.logger.Println("[DEBUG] Host stopped")
			return nil
		case ev := <-h.wakeups:
			w, ok := h.pending[ev.ID]
			if !ok {
				continue
			}
			delete(h.pending, ev.ID)

			if w.reload {
				h.reload(ctx)
			} else {
				h.show(w.entry)
			}
		}
	}
}

// Stats is safe to call from any goroutine.
func (h *Host) Stats() Stats {
	return Stats{
		Timelines: h.timelines.Load(),
		Rendered:  h.rendered.Load(),
		Pending:   h.sched.Pending(),
	}
}

func (h *Host) show(e widget.Entry) {
	h.display.Show(render.Render(e, h.family))
	h.rendered.Add(1)
}

func (h *Host) reload(ctx context.Context) {
	tl := h.provider.Timeline(ctx, h.config)
	h.timelines.Add(1)

	if err := tl.Validate(); err != nil {
		h.logger.Printf("[WARN] %v", err)
	}

	for _, e := range tl.Entries {
		h.pending[h.sched.At(e.Date)] = wake{entry: e}
	}

	at, ok := tl.ReloadAt()
	if !ok {
		h.logger.Printf("[DEBUG] Timeline policy %v, refresh stopped", tl.Policy)
		return
	}
	// Never reload in the past; that would request timelines back to back.
	if now := h.clock.Now(); at.IsZero() || !at.After(now) {
		at = now.Add(widget.EntrySpacing)
	}
	h.pending[h.sched.At(at)] = wake{reload: true}
	h.logger.Printf("[DEBUG] Timeline of %d entries, next reload %s", len(tl.Entries), at.Format(time.RFC3339))
}
