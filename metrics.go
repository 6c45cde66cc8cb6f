package quadgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	// duration is the total time taken, err is nil if successful.
	RecordInsert(duration time.Duration, err error)

	// RecordRange is called after each range query.
	// results is the number of points returned.
	RecordRange(results int, duration time.Duration, err error)

	// RecordNearest is called after each nearest lookup.
	RecordNearest(duration time.Duration, err error)

	// RecordUpdate is called after each update operation.
	RecordUpdate(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)     {}
func (NoopMetricsCollector) RecordRange(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordNearest(time.Duration, error)    {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	RangeCount       atomic.Int64
	RangeErrors      atomic.Int64
	RangeResults     atomic.Int64
	RangeTotalNanos  atomic.Int64
	NearestCount     atomic.Int64
	NearestErrors    atomic.Int64
	UpdateCount      atomic.Int64
	UpdateErrors     atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordRange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRange(results int, duration time.Duration, err error) {
	b.RangeCount.Add(1)
	b.RangeResults.Add(int64(results))
	b.RangeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RangeErrors.Add(1)
	}
}

// RecordNearest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNearest(duration time.Duration, err error) {
	b.NearestCount.Add(1)
	if err != nil {
		b.NearestErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:    b.InsertCount.Load(),
		InsertErrors:   b.InsertErrors.Load(),
		InsertAvgNanos: b.avgInsertNanos(),
		RangeCount:     b.RangeCount.Load(),
		RangeErrors:    b.RangeErrors.Load(),
		RangeResults:   b.RangeResults.Load(),
		RangeAvgNanos:  b.avgRangeNanos(),
		NearestCount:   b.NearestCount.Load(),
		NearestErrors:  b.NearestErrors.Load(),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateErrors:   b.UpdateErrors.Load(),
	}
}

func (b *BasicMetricsCollector) avgInsertNanos() int64 {
	count := b.InsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) avgRangeNanos() int64 {
	count := b.RangeCount.Load()
	if count == 0 {
		return 0
	}
	return b.RangeTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount    int64
	InsertErrors   int64
	InsertAvgNanos int64
	RangeCount     int64
	RangeErrors    int64
	RangeResults   int64
	RangeAvgNanos  int64
	NearestCount   int64
	NearestErrors  int64
	UpdateCount    int64
	UpdateErrors   int64
}
