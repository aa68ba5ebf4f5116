package monitoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.IncrementScoringOperation()
	m.IncrementScorecard()
	m.IncrementRateLimitBlock()

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["total_requests"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.InDelta(t, 50.0, stats["error_rate_percent"], 0.001)
	assert.InDelta(t, 50.0, stats["cache_hit_rate_percent"], 0.001)
	assert.Equal(t, int64(1), stats["scoring_operations"])
	assert.Equal(t, int64(1), stats["scorecards_generated"])
	assert.Equal(t, int64(1), stats["rate_limit_blocks"])
}

func TestMetricsConcurrentIncrements(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementRequest()
			m.RecordResponseTime(time.Millisecond)
			m.RecordRequestByStatus(200)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.RequestCount)
	assert.Equal(t, int64(50), m.GetStatusCodeDistribution()[200])
}

func TestPercentileResponseTime(t *testing.T) {
	m := NewMetrics()

	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(95))

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}

	p50 := m.GetPercentileResponseTime(50)
	p99 := m.GetPercentileResponseTime(99)
	assert.LessOrEqual(t, p50, p99)
	assert.GreaterOrEqual(t, p99, 95*time.Millisecond)
}

func TestResponseTimeWindowIsBounded(t *testing.T) {
	m := NewMetrics()

	for i := 0; i < 1500; i++ {
		m.RecordResponseTime(time.Millisecond)
	}

	m.ResponseTimesMutex.RLock()
	defer m.ResponseTimesMutex.RUnlock()
	assert.LessOrEqual(t, len(m.ResponseTimes), 1000)
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.IncrementRequest()
	m.RecordResponseTime(time.Millisecond)
	m.RecordRequestByStatus(500)

	m.Reset()

	stats := m.GetStats()
	require.Equal(t, int64(0), stats["total_requests"])
	assert.Empty(t, m.GetStatusCodeDistribution())
}
