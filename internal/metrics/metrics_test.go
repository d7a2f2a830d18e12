package metrics

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

func getTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("Failed to write counter metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := gauge.Write(metric); err != nil {
		t.Fatalf("Failed to write gauge metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestCategorizeStatus(t *testing.T) {
	tests := map[int]string{200: "2xx", 201: "2xx", 304: "3xx", 404: "4xx", 405: "4xx", 500: "5xx", 100: "unknown"}
	for code, want := range tests {
		assert.Equal(t, want, categorizeStatus(code), code)
	}
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/ready"))
	assert.False(t, ShouldSkipEndpoint("/tasks"))
}

func TestRecordHTTPRequest(t *testing.T) {
	m := getTestMetrics()

	m.RecordHTTPRequest("GET", "/tasks", 200, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/tasks", 200, 10*time.Millisecond)

	assert.Equal(t, 2.0, getCounterValue(t, m.HTTPRequestsTotal.WithLabelValues("GET", "/tasks", "2xx")))
}

func TestRecordDBQuery_CountsErrors(t *testing.T) {
	m := getTestMetrics()

	m.RecordDBQuery("SELECT", "tasks", time.Millisecond, nil)
	m.RecordDBQuery("select", "tasks", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, getCounterValue(t, m.DBQueryErrors.WithLabelValues("select", "tasks")))
}

func TestUpdateDBStats(t *testing.T) {
	m := getTestMetrics()

	m.UpdateDBStats(sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3, MaxOpenConnections: 25})

	assert.Equal(t, 4.0, getGaugeValue(t, m.DBConnectionsOpen))
	assert.Equal(t, 1.0, getGaugeValue(t, m.DBConnectionsInUse))
	assert.Equal(t, 3.0, getGaugeValue(t, m.DBConnectionsIdle))
	assert.Equal(t, 25.0, getGaugeValue(t, m.DBConnectionsMax))
}

func TestBusinessCounters(t *testing.T) {
	m := getTestMetrics()

	m.IncrementTaskCreated()
	m.IncrementTodoCreated()
	m.IncrementPostCreated()
	m.IncrementDiarySaved()
	m.RecordLikeToggle(true)
	m.RecordLikeToggle(true)
	m.RecordLikeToggle(false)

	assert.Equal(t, 1.0, getCounterValue(t, m.TasksCreatedTotal))
	assert.Equal(t, 1.0, getCounterValue(t, m.TodosCreatedTotal))
	assert.Equal(t, 1.0, getCounterValue(t, m.PostsCreatedTotal))
	assert.Equal(t, 1.0, getCounterValue(t, m.DiarySavesTotal))
	assert.Equal(t, 2.0, getCounterValue(t, m.LikeTogglesTotal.WithLabelValues("like")))
	assert.Equal(t, 1.0, getCounterValue(t, m.LikeTogglesTotal.WithLabelValues("unlike")))
}

type fakeTaskStats struct {
	stats *model.TaskStats
	err   error
}

func (f fakeTaskStats) Stats(context.Context) (*model.TaskStats, error) { return f.stats, f.err }

type fakePostCount struct {
	count int64
	err   error
}

func (f fakePostCount) Count(context.Context) (int64, error) { return f.count, f.err }

func TestBusinessMetricsCollector_Collect(t *testing.T) {
	m := getTestMetrics()
	c := NewBusinessMetricsCollector(
		fakeTaskStats{stats: &model.TaskStats{Total: 10, Completed: 4, Pending: 6, Urgent: 2}},
		fakePostCount{count: 7},
		m, zap.NewNop(),
	)

	c.Collect()

	assert.Equal(t, 6.0, getGaugeValue(t, m.OpenTasks))
	assert.Equal(t, 2.0, getGaugeValue(t, m.UrgentTasks))
	assert.Equal(t, 7.0, getGaugeValue(t, m.PostsTotal))
}

func TestBusinessMetricsCollector_SourceErrorsKeepGauges(t *testing.T) {
	m := getTestMetrics()
	m.SetPostsTotal(3)
	c := NewBusinessMetricsCollector(
		fakeTaskStats{err: errors.New("db down")},
		fakePostCount{err: errors.New("db down")},
		m, zap.NewNop(),
	)

	assert.NotPanics(t, c.Collect)
	assert.Equal(t, 3.0, getGaugeValue(t, m.PostsTotal))
}

func TestBusinessMetricsCollector_BadSchedule(t *testing.T) {
	c := NewBusinessMetricsCollector(fakeTaskStats{}, fakePostCount{}, getTestMetrics(), zap.NewNop())

	assert.Error(t, c.Start("not a schedule"))
}
