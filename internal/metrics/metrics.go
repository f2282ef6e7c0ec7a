package metrics

import (
	"sync"
	"time"
)

type callStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about table loads and
// aggregations, forwarding to OpenTelemetry instruments when configured.
type Recorder struct {
	mu           sync.Mutex
	tableLoads   map[string]*callStats
	aggregations map[string]*callStats
	otel         *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		tableLoads:   make(map[string]*callStats),
		aggregations: make(map[string]*callStats),
		otel:         otel,
	}
}

// Snapshot is a copy of the counters recorded under one key.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

// RecordTableLoad counts a storage read for a source and table kind
// ("season" or "league").
func (r *Recorder) RecordTableLoad(source, table string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.record(r.tableLoads, source, duration, err)
	if r.otel != nil {
		r.otel.recordTableLoad(source, table, duration, err)
	}
}

// RecordAggregation counts one aggregation call of the given kind.
func (r *Recorder) RecordAggregation(kind string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.record(r.aggregations, kind, duration, err)
	if r.otel != nil {
		r.otel.recordAggregation(kind, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// TableLoads returns a copy of the table load stats for a source.
func (r *Recorder) TableLoads(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.tableLoads, source)
}

// Aggregations returns a copy of the aggregation stats for a kind.
func (r *Recorder) Aggregations(kind string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.aggregations, kind)
}

func (r *Recorder) record(bucket map[string]*callStats, key string, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := bucket[key]
	if !ok {
		stats = &callStats{}
		bucket[key] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
}

func (r *Recorder) snapshot(bucket map[string]*callStats, key string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := bucket[key]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}
