package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of conversion latency samples.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// ConvertStats tracks recent conversion durations within a rolling window.
type ConvertStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewConvertStats(maxAge time.Duration) *ConvertStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ConvertStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *ConvertStats) Record(durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

func (s *ConvertStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	durations := make([]int64, len(s.samples))
	var sum int64
	min := s.samples[0].durationMs
	max := s.samples[0].durationMs
	for i, smp := range s.samples {
		durations[i] = smp.durationMs
		sum += smp.durationMs
		if smp.durationMs < min {
			min = smp.durationMs
		}
		if smp.durationMs > max {
			max = smp.durationMs
		}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	return StatsSnapshot{
		Count: len(durations),
		MinMs: min,
		MaxMs: max,
		AvgMs: float64(sum) / float64(len(durations)),
		P50Ms: percentile(durations, 0.50),
		P95Ms: percentile(durations, 0.95),
		P99Ms: percentile(durations, 0.99),
	}
}

// pruneLocked drops samples older than the window. Caller holds the lock.
func (s *ConvertStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	keep := s.samples[:0]
	for _, smp := range s.samples {
		if smp.timestamp.After(cutoff) {
			keep = append(keep, smp)
		}
	}
	s.samples = keep
}

// percentile computes the p-th percentile by linear interpolation over a
// sorted slice.
func percentile(sorted []int64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo])*(1-frac) + float64(sorted[hi])*frac
}
