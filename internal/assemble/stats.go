package assemble

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
	tokens     int
}

// StatsSnapshot is a point-in-time aggregate of recent assemblies.
type StatsSnapshot struct {
	Count       int     `json:"count"`
	MinMs       int64   `json:"min_ms"`
	MaxMs       int64   `json:"max_ms"`
	AvgMs       float64 `json:"avg_ms"`
	P50Ms       float64 `json:"p50_ms"`
	P95Ms       float64 `json:"p95_ms"`
	AvgTokens   float64 `json:"avg_tokens"`
	MaxTokens   int     `json:"max_tokens"`
	TotalTokens int64   `json:"total_tokens"`
}

// Stats tracks assembly durations and output sizes within a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one assembly observation.
func (s *Stats) Record(duration time.Duration, tokens int) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationMs: max(duration.Milliseconds(), 0),
		tokens:     tokens,
	})
}

// Snapshot aggregates the current window.
func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	durations := make([]int64, 0, len(s.samples))
	var sumMs int64
	var sumTokens int64
	maxTokens := 0
	for _, sm := range s.samples {
		durations = append(durations, sm.durationMs)
		sumMs += sm.durationMs
		sumTokens += int64(sm.tokens)
		if sm.tokens > maxTokens {
			maxTokens = sm.tokens
		}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	n := len(durations)
	return StatsSnapshot{
		Count:       n,
		MinMs:       durations[0],
		MaxMs:       durations[n-1],
		AvgMs:       float64(sumMs) / float64(n),
		P50Ms:       percentile(durations, 50),
		P95Ms:       percentile(durations, 95),
		AvgTokens:   float64(sumTokens) / float64(n),
		MaxTokens:   maxTokens,
		TotalTokens: sumTokens,
	}
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if len(sortedValues) == 1 {
		return float64(sortedValues[0])
	}
	rank := pct / 100 * float64(len(sortedValues)-1)
	lower := int(rank)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[len(sortedValues)-1])
	}
	frac := rank - float64(lower)
	return float64(sortedValues[lower]) + frac*float64(sortedValues[upper]-sortedValues[lower])
}
