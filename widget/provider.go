// Package widget holds the current-time widget's timeline provider and
// the values it exchanges with a host.
package widget

import (
	"context"
	"time"

	"github.com/drake/clockwidget/clock"
)

const (
	// TimelineLength is the number of entries in each timeline.
	TimelineLength = 5
	// EntrySpacing separates consecutive timeline entries.
	EntrySpacing = time.Minute
)

// Provider produces entries for a host.
type Provider interface {
	// Placeholder returns immediately with an entry for instant display.
	Placeholder() Entry
	// Snapshot returns a single entry for transient previews.
	Snapshot(ctx context.Context, cfg Configuration) Entry
	// Timeline returns the entries to show next and when to ask again.
	Timeline(ctx context.Context, cfg Configuration) Timeline
}

// Compile-time checks
var (
	_ Provider = (*StaticProvider)(nil)
	_ Provider = (*ConfigurableProvider)(nil)
)

// StaticProvider is the variant without user configuration.
// Hosts pass the zero Configuration.
type StaticProvider struct {
	clock clock.Clock
}

// NewStaticProvider creates a provider reading time from c.
// A nil clock uses the system clock.
func NewStaticProvider(c clock.Clock) *StaticProvider {
	return &StaticProvider{clock: orReal(c)}
}

// Placeholder implements Provider.
func (p *StaticProvider) Placeholder() Entry {
	return Entry{Date: p.clock.Now()}
}

// Snapshot implements Provider.
func (p *StaticProvider) Snapshot(_ context.Context, _ Configuration) Entry {
	return Entry{Date: p.clock.Now()}
}

// Timeline implements Provider.
func (p *StaticProvider) Timeline(_ context.Context, _ Configuration) Timeline {
	return minuteTimeline(p.clock.Now())
}

// ConfigurableProvider is the variant whose configuration is picked by the user.
// The configuration does not change the entries.
type ConfigurableProvider struct {
	clock clock.Clock
}

// NewConfigurableProvider creates a provider reading time from c.
// A nil clock uses the system clock.
func NewConfigurableProvider(c clock.Clock) *ConfigurableProvider {
	return &ConfigurableProvider{clock: orReal(c)}
}

// Placeholder implements Provider.
func (p *ConfigurableProvider) Placeholder() Entry {
	return Entry{Date: p.clock.Now()}
}

// Snapshot implements Provider.
func (p *ConfigurableProvider) Snapshot(_ context.Context, _ Configuration) Entry {
	return Entry{Date: p.clock.Now()}
}

// Timeline implements Provider.
func (p *ConfigurableProvider) Timeline(_ context.Context, _ Configuration) Timeline {
	return minuteTimeline(p.clock.Now())
}

// minuteTimeline builds TimelineLength entries EntrySpacing apart from now.
func minuteTimeline(now time.Time) Timeline {
	entries := make([]Entry, TimelineLength)
	for i := range entries {
		entries[i] = Entry{Date: now.Add(time.Duration(i) * EntrySpacing)}
	}
	return Timeline{Entries: entries, Policy: AtEnd}
}

func orReal(c clock.Clock) clock.Clock {
	if c == nil {
		return clock.Real{}
	}
	return c
}
