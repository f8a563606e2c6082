// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/hitoshi/kusa/internal/logger"
)

// dateLayout はGRAPH_START_DATEのパース形式。
const dateLayout = "2006-01-02"

// Config はアプリケーション全体の設定を保持する。
// 起動時に.envと環境変数から1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Notion
	NotionToken             string
	NotionDatabaseID        string
	NotionWritingDatabaseID string // 未設定でも起動は継続する（グラフは空になる）
	NotionTimeout           time.Duration

	// Cache
	CacheTTL time.Duration

	// Graph
	GraphStartDate string // yyyy-MM-dd
	GraphMonths    int

	// Rate Limit
	RateLimitGeneral int // req/min/クライアントIP

	// Server
	ServerPort string
	BaseURL    string

	// CORS
	CORSAllowedOrigin string

	// Site
	SiteTitle       string // グラフページとフィードの表題
	SiteDescription string // フィードのdescription

	// Logging
	LogLevel slog.Level
}

// Load は.envファイルと環境変数からConfigを読み込む。
// .envが存在しない場合は環境変数のみを使用する。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	// .envは存在すれば読み込む。本番では環境変数を直接設定する想定。
	_ = godotenv.Load()

	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.NotionToken = os.Getenv("NOTION_TOKEN")
	if cfg.NotionToken == "" {
		missing = append(missing, "NOTION_TOKEN")
	}

	cfg.NotionDatabaseID = os.Getenv("NOTION_DATABASE_ID")
	if cfg.NotionDatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	// 執筆データベースIDの欠落はエントリ一覧側で処理する（起動は止めない）
	cfg.NotionWritingDatabaseID = os.Getenv("NOTION_WRITING_DATABASE_ID")
	cfg.NotionTimeout = getEnvDuration("NOTION_TIMEOUT", 10*time.Second)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", 60*time.Second)
	cfg.GraphStartDate = getEnvString("GRAPH_START_DATE", "2024-12-18")
	cfg.GraphMonths = getEnvInt("GRAPH_MONTHS", 12)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.SiteTitle = getEnvString("SITE_TITLE", "hitoshi")
	cfg.SiteDescription = getEnvString("SITE_DESCRIPTION", "hitoshi's blog")
	cfg.LogLevel = logger.ParseLevel(getEnvString("LOG_LEVEL", "info"))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate は設定値の妥当性を検証する。
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.GraphStartDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&c.GraphMonths, validation.Required, validation.Min(1), validation.Max(24)),
		validation.Field(&c.CacheTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.NotionTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.RateLimitGeneral, validation.Required, validation.Min(1)),
	)
}

// GraphRange はグラフの描画対象期間を返す。
// 開始日はGRAPH_START_DATE、終了日はそのGRAPH_MONTHSヶ月後。
func (c *Config) GraphRange() (time.Time, time.Time) {
	start, err := time.Parse(dateLayout, c.GraphStartDate)
	if err != nil {
		// Validateが通っていればここには到達しない
		start = time.Date(2024, 12, 18, 0, 0, 0, 0, time.UTC)
	}
	return start, start.AddDate(0, c.GraphMonths, 0)
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
