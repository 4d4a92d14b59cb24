package host

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/drake/clockwidget/clock"
	"github.com/drake/clockwidget/render"
	"github.com/drake/clockwidget/timer"
	"github.com/drake/clockwidget/widget"
)

var noon = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// recordingDisplay captures every view shown.
type recordingDisplay struct {
	mu    sync.Mutex
	views []render.View
}

func (d *recordingDisplay) Show(v render.View) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.views = append(d.views, v)
}

func (d *recordingDisplay) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.views)
}

func (d *recordingDisplay) last() render.View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.views[len(d.views)-1]
}

// manualScheduler records wake-ups; tests fire them by hand.
type manualScheduler struct {
	mu     sync.Mutex
	nextID int
	order  []int
	at     map[int]time.Time
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{at: make(map[int]time.Time)}
}

func (s *manualScheduler) At(t time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.at[s.nextID] = t
	s.order = append(s.order, s.nextID)
	return s.nextID
}

func (s *manualScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.at = make(map[int]time.Time)
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.at)
}

func (s *manualScheduler) scheduled() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.order...)
}

func (s *manualScheduler) fire(h *Host, id int) {
	s.mu.Lock()
	at := s.at[id]
	delete(s.at, id)
	s.mu.Unlock()
	h.wakeups <- timer.Event{ID: id, At: at}
}

func (s *manualScheduler) when(id int) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.at[id]
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func newTestHost(t *testing.T, p widget.Provider, d Display) (*Host, *manualScheduler) {
	t.Helper()
	h, err := New(Options{
		Provider:   p,
		Descriptor: widget.DefaultDescriptor(),
		Family:     widget.Small,
		Config:     widget.Configuration{City: "Oslo"},
		Clock:      clock.Fixed(noon),
	}, d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := newManualScheduler()
	h.sched = s
	return h, s
}

func TestRunFollowsTimeline(t *testing.T) {
	display := &recordingDisplay{}
	h, sched := newTestHost(t, widget.NewConfigurableProvider(clock.Fixed(noon)), display)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	// Placeholder plus five entries and one reload wake-up.
	waitFor(t, "first timeline", func() bool { return len(sched.scheduled()) == widget.TimelineLength+1 })
	if display.count() != 1 {
		t.Fatalf("placeholder not shown, got %d views", display.count())
	}

	ids := sched.scheduled()
	if got := sched.when(ids[len(ids)-1]); !got.Equal(noon.Add(5 * time.Minute)) {
		t.Errorf("reload scheduled at %v, want 12:05", got)
	}

	for i, id := range ids[:widget.TimelineLength] {
		sched.fire(h, id)
		want := i + 2
		waitFor(t, "entry render", func() bool { return display.count() == want })
	}
	if v := display.last(); v.Lines[1] != "12:04 PM" {
		t.Errorf("last entry rendered %q, want 12:04 PM", v.Lines[1])
	}

	sched.fire(h, ids[len(ids)-1])
	waitFor(t, "second timeline", func() bool { return len(sched.scheduled()) == 2*(widget.TimelineLength+1) })

	stats := h.Stats()
	if stats.Timelines != 2 || stats.Rendered != int64(widget.TimelineLength+1) {
		t.Errorf("Stats() = %+v", stats)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := sched.Pending(); n != 0 {
		t.Errorf("pending wake-ups after stop = %d, want 0", n)
	}
}

// neverProvider returns a one-entry timeline that is never refreshed.
type neverProvider struct{ *widget.StaticProvider }

func (neverProvider) Timeline(context.Context, widget.Configuration) widget.Timeline {
	return widget.Timeline{Entries: []widget.Entry{{Date: noon}}, Policy: widget.Never}
}

func TestRunNeverPolicySchedulesNoReload(t *testing.T) {
	display := &recordingDisplay{}
	h, sched := newTestHost(t, neverProvider{widget.NewStaticProvider(clock.Fixed(noon))}, display)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	waitFor(t, "timeline", func() bool { return len(sched.scheduled()) > 0 })
	time.Sleep(10 * time.Millisecond)
	if n := len(sched.scheduled()); n != 1 {
		t.Fatalf("scheduled %d wake-ups, want 1", n)
	}
}

// singleEntryProvider returns a one-entry atEnd timeline stamped now.
type singleEntryProvider struct{ *widget.StaticProvider }

func (singleEntryProvider) Timeline(context.Context, widget.Configuration) widget.Timeline {
	return widget.Timeline{Entries: []widget.Entry{{Date: time.Now()}}, Policy: widget.AtEnd}
}

func TestRunSingleEntryTimelineWaitsBeforeReload(t *testing.T) {
	display := &recordingDisplay{}
	h, err := New(Options{
		Provider:   singleEntryProvider{widget.NewStaticProvider(nil)},
		Descriptor: widget.DefaultDescriptor(),
		Family:     widget.Small,
	}, display)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	waitFor(t, "entry render", func() bool { return display.count() >= 2 })
	time.Sleep(100 * time.Millisecond)

	stats := h.Stats()
	if stats.Timelines != 1 || stats.Rendered != 2 {
		t.Errorf("Stats() = %+v, want one timeline and two renders", stats)
	}
	if stats.Pending != 1 {
		t.Errorf("pending wake-ups = %d, want only the reload", stats.Pending)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.pending) != 0 {
		t.Errorf("pending map has %d entries after stop", len(h.pending))
	}
}

func TestRunReloadInThePastIsDeferred(t *testing.T) {
	display := &recordingDisplay{}
	h, sched := newTestHost(t, pastReloadProvider{widget.NewStaticProvider(clock.Fixed(noon))}, display)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	waitFor(t, "timeline", func() bool { return len(sched.scheduled()) == 2 })
	ids := sched.scheduled()
	if got := sched.when(ids[1]); !got.Equal(noon.Add(widget.EntrySpacing)) {
		t.Errorf("reload scheduled at %v, want %v", got, noon.Add(widget.EntrySpacing))
	}
}

// pastReloadProvider asks to be reloaded an hour ago.
type pastReloadProvider struct{ *widget.StaticProvider }

func (pastReloadProvider) Timeline(context.Context, widget.Configuration) widget.Timeline {
	return widget.Timeline{
		Entries: []widget.Entry{{Date: noon}},
		Policy:  widget.After(noon.Add(-time.Hour)),
	}
}

func TestNewRejectsUnsupportedFamily(t *testing.T) {
	d := widget.DefaultDescriptor()
	d.Families = []widget.Family{widget.Small}

	_, err := New(Options{
		Provider:   widget.NewStaticProvider(nil),
		Descriptor: d,
		Family:     widget.Large,
	}, &recordingDisplay{})
	if err == nil {
		t.Fatal("expected error for unsupported family")
	}

	_, err = New(Options{Descriptor: d, Family: widget.Small}, &recordingDisplay{})
	if err == nil {
		t.Fatal("expected error for missing provider")
	}
}

func TestPreviewRendersSnapshot(t *testing.T) {
	at := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	h, _ := newTestHost(t, widget.NewStaticProvider(clock.Fixed(at)), &recordingDisplay{})

	v := h.Preview(context.Background())
	if v.Text() != "Current Time\n9:30 AM" {
		t.Errorf("Preview() = %q", v.Text())
	}
}

func TestRunWithRealScheduler(t *testing.T) {
	display := &recordingDisplay{}
	h, err := New(Options{
		Provider:   widget.NewStaticProvider(nil),
		Descriptor: widget.DefaultDescriptor(),
		Family:     widget.Medium,
	}, display)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	// Placeholder and the first entry, which is due immediately.
	waitFor(t, "first entry", func() bool { return display.count() >= 2 })
	if !display.last().Empty() {
		t.Errorf("medium view should be empty, got %q", display.last().Lines)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
