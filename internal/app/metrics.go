package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts executed commands and their latency.
type Metrics struct {
	moves    atomic.Uint64
	edits    atomic.Uint64
	other    atomic.Uint64
	failures atomic.Uint64

	totalNs atomic.Int64
	minNs   atomic.Int64
	maxNs   atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.minNs.Store(1<<63 - 1)
	return m
}

// RecordCommand records one executed command.
func (m *Metrics) RecordCommand(kind CommandKind, duration time.Duration, err error) {
	switch kind {
	case KindMove:
		m.moves.Add(1)
	case KindEdit:
		m.edits.Add(1)
	default:
		m.other.Add(1)
	}
	if err != nil {
		m.failures.Add(1)
	}

	ns := duration.Nanoseconds()
	m.totalNs.Add(ns)
	for {
		old := m.minNs.Load()
		if ns >= old || m.minNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.maxNs.Load()
		if ns <= old || m.maxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime   time.Duration
	Moves    uint64
	Edits    uint64
	Other    uint64
	Failures uint64
	AvgNs    int64
	MinNs    int64
	MaxNs    int64
}

// Commands returns the total number of recorded commands.
func (s MetricsSnapshot) Commands() uint64 {
	return s.Moves + s.Edits + s.Other
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:   time.Since(m.startTime),
		Moves:    m.moves.Load(),
		Edits:    m.edits.Load(),
		Other:    m.other.Load(),
		Failures: m.failures.Load(),
		MinNs:    m.minNs.Load(),
		MaxNs:    m.maxNs.Load(),
	}
	if n := s.Commands(); n > 0 {
		s.AvgNs = m.totalNs.Load() / int64(n)
	}
	if s.MinNs == 1<<63-1 {
		s.MinNs = 0
	}
	return s
}
