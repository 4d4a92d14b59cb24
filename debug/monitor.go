// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"log"
	"runtime"
	"time"

	"github.com/drake/clockwidget/host"
)

// StatsSource is anything that can report host counters.
type StatsSource interface {
	Stats() host.Stats
}

// Monitor periodically logs host statistics.
type Monitor struct {
	source   StatsSource
	interval time.Duration
	logger   *log.Logger
}

// NewMonitor creates a monitor for src. If enabled is false, returns nil;
// a nil Monitor's methods are no-ops.
func NewMonitor(src StatsSource, logger *log.Logger, enabled bool) *Monitor {
	if !enabled {
		return nil
	}

	return &Monitor{
		source:   src,
		interval: 5 * time.Second,
		logger:   logger,
	}
}

// Start begins the monitoring loop in a goroutine; it ends with ctx.
func (m *Monitor) Start(ctx context.Context) {
	if m == nil {
		return
	}
	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Println("[DEBUG] Monitor started")

	for {
		select {
		case <-ctx.Done():
			m.logger.Println("[DEBUG] Monitor stopped")
			return
		case <-ticker.C:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	s := m.source.Stats()
	m.logger.Printf("[DEBUG] timelines=%d rendered=%d pending=%d goroutines=%d",
		s.Timelines, s.Rendered, s.Pending, runtime.NumGoroutine())
}
