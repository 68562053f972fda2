package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Notion API 호출 지연 (밀리초)
	NotionCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notion_call_latency_ms",
			Help:    "Notion API call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"endpoint", "status"},
	)

	// 데이터베이스 쿼리 지연 (초)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	// HTTP 요청 지연 (초)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 동기화 결과 카운트
	SyncedProjectsCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synced_projects_count",
			Help: "Total number of projects reconciled against the remote set",
		},
		[]string{"action"}, // action: created, updated, deleted
	)

	// 자동 생성된 작업 로그 카운트
	EnsuredWorkLogsCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ensured_work_logs_count",
			Help: "Total number of zero-valued work logs auto-created for the current date",
		},
	)

	// 느린 쿼리 카운트
	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slow_query_count",
			Help: "Total number of queries slower than the configured threshold",
		},
	)
)

// RecordNotionCallLatency 기록: Notion API 호출 지연
func RecordNotionCallLatency(endpoint, status string, duration time.Duration) {
	NotionCallLatency.WithLabelValues(endpoint, status).Observe(float64(duration.Milliseconds()))
}

// RecordDBQueryDuration 기록: 데이터베이스 쿼리 지연
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordHTTPRequestDuration 기록: HTTP 요청 지연
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// AddSyncedProjects 기록: 동기화 결과
func AddSyncedProjects(action string, n int) {
	SyncedProjectsCount.WithLabelValues(action).Add(float64(n))
}

// AddEnsuredWorkLogs 기록: 자동 생성된 작업 로그
func AddEnsuredWorkLogs(n int) {
	EnsuredWorkLogsCount.Add(float64(n))
}

// IncrementSlowQuery 기록: 느린 쿼리
func IncrementSlowQuery() {
	SlowQueryCount.Inc()
}
