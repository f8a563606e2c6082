// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// Notion API呼び出し、結果キャッシュ、HTTPレスポンスの各メトリクスを持つ。
type Collector struct {
	notionCalls   *prometheus.CounterVec
	notionLatency *prometheus.HistogramVec
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	httpStatus    *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		notionCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kusa_notion_calls_total",
			Help: "Notion API呼び出しの操作・結果別の合計数",
		}, []string{"operation", "outcome"}),
		notionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kusa_notion_latency_seconds",
			Help:    "Notion API呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kusa_cache_hits_total",
			Help: "結果キャッシュのヒット数",
		}, []string{"operation"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kusa_cache_misses_total",
			Help: "結果キャッシュのミス数",
		}, []string{"operation"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kusa_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.notionCalls,
		c.notionLatency,
		c.cacheHits,
		c.cacheMisses,
		c.httpStatus,
	)

	return c
}

// RecordNotionCall はNotion API呼び出しの結果を記録する。
func (c *Collector) RecordNotionCall(operation, outcome string) {
	c.notionCalls.WithLabelValues(operation, outcome).Inc()
}

// RecordNotionLatency はNotion API呼び出しのレイテンシを記録する。
func (c *Collector) RecordNotionLatency(operation string, duration time.Duration) {
	c.notionLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheHit は結果キャッシュのヒットを記録する。
func (c *Collector) RecordCacheHit(operation string) {
	c.cacheHits.WithLabelValues(operation).Inc()
}

// RecordCacheMiss は結果キャッシュのミスを記録する。
func (c *Collector) RecordCacheMiss(operation string) {
	c.cacheMisses.WithLabelValues(operation).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
