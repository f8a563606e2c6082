// Package cache は(操作, 引数)をキーとする短命の結果キャッシュを提供する。
// トランスポート層の再検証ウィンドウ（デフォルト60秒）に合わせたTTLを持ち、
// 同一リクエストの繰り返しに対する上流API呼び出しを抑制する。
// 正確性に関わるキャッシュではなく、鮮度ポリシーとして扱う。
package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// defaultSize はキャッシュの最大エントリ数。
// 投稿数は高々数百のため小さくてよい。
const defaultSize = 256

// MetricsRecorder はキャッシュヒット率メトリクスの記録インターフェース。
type MetricsRecorder interface {
	RecordCacheHit(operation string)
	RecordCacheMiss(operation string)
}

// ResultCache は操作名と引数をキーとするTTL付き結果キャッシュ。
// 並行アクセスに対して安全。
type ResultCache struct {
	lru     *expirable.LRU[string, any]
	metrics MetricsRecorder
}

// New は指定TTLのResultCacheを生成する。
func New(ttl time.Duration) *ResultCache {
	return &ResultCache{
		lru: expirable.NewLRU[string, any](defaultSize, nil, ttl),
	}
}

// SetMetricsRecorder はキャッシュメトリクスの記録先を設定する。
func (c *ResultCache) SetMetricsRecorder(m MetricsRecorder) {
	c.metrics = m
}

// Get は(操作, 引数)に対応するキャッシュ済みの値を返す。
// TTL切れまたは未登録の場合はokがfalseになる。
func (c *ResultCache) Get(operation string, args ...string) (any, bool) {
	value, ok := c.lru.Get(buildKey(operation, args))
	if c.metrics != nil {
		if ok {
			c.metrics.RecordCacheHit(operation)
		} else {
			c.metrics.RecordCacheMiss(operation)
		}
	}
	return value, ok
}

// Set は(操作, 引数)に対する値を登録する。
func (c *ResultCache) Set(operation string, value any, args ...string) {
	c.lru.Add(buildKey(operation, args), value)
}

// Purge は全エントリを破棄する。テスト用。
func (c *ResultCache) Purge() {
	c.lru.Purge()
}

// buildKey は操作名と引数からキャッシュキーを構築する。
func buildKey(operation string, args []string) string {
	if len(args) == 0 {
		return operation
	}
	return operation + ":" + strings.Join(args, ":")
}
