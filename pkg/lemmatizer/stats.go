package lemmatizer

import "sync/atomic"

// Stats counts what a resolver did during a run. Counters are atomic so a
// resolver shared between goroutines still reports exact totals. They are
// for reporting only and never influence resolution.
type Stats struct {
	tokens         atomic.Int64
	analyzerCalls  atomic.Int64
	analyzerErrors atomic.Int64
	listLookups    atomic.Int64
	listMisses     atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Tokens         int64 `json:"tokens"`
	AnalyzerCalls  int64 `json:"analyzer_calls"`
	AnalyzerErrors int64 `json:"analyzer_errors"`
	ListLookups    int64 `json:"list_lookups"`
	ListMisses     int64 `json:"list_misses"`
}

// Snapshot copies the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Tokens:         s.tokens.Load(),
		AnalyzerCalls:  s.analyzerCalls.Load(),
		AnalyzerErrors: s.analyzerErrors.Load(),
		ListLookups:    s.listLookups.Load(),
		ListMisses:     s.listMisses.Load(),
	}
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	s.tokens.Store(0)
	s.analyzerCalls.Store(0)
	s.analyzerErrors.Store(0)
	s.listLookups.Store(0)
	s.listMisses.Store(0)
}

// Add returns the sum of two snapshots, for merging per-worker totals.
func (s StatsSnapshot) Add(o StatsSnapshot) StatsSnapshot {
	return StatsSnapshot{
		Tokens:         s.Tokens + o.Tokens,
		AnalyzerCalls:  s.AnalyzerCalls + o.AnalyzerCalls,
		AnalyzerErrors: s.AnalyzerErrors + o.AnalyzerErrors,
		ListLookups:    s.ListLookups + o.ListLookups,
		ListMisses:     s.ListMisses + o.ListMisses,
	}
}
