// Package app はアプリケーションの初期化と起動を提供する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/kusa/internal/cache"
	"github.com/hitoshi/kusa/internal/config"
	"github.com/hitoshi/kusa/internal/entry"
	"github.com/hitoshi/kusa/internal/feedgen"
	"github.com/hitoshi/kusa/internal/handler"
	"github.com/hitoshi/kusa/internal/logger"
	"github.com/hitoshi/kusa/internal/metrics"
	"github.com/hitoshi/kusa/internal/middleware"
	"github.com/hitoshi/kusa/internal/notion"
	"github.com/hitoshi/kusa/internal/post"
	"github.com/hitoshi/kusa/internal/security"
	"github.com/hitoshi/kusa/internal/view"
)

// notionAPIHost はNotion APIのホスト名。外向きHTTPの許可リストに使う。
const notionAPIHost = "api.notion.com"

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 設定読み込み前からログを使えるよう、まずデフォルトレベルで初期化する
	logger.SetupDefault(w, slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 設定されたログレベルで再初期化
	logger.SetupDefault(w, cfg.LogLevel)

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	return runServe(cfg)
}

// runServe はサーバーモードで起動する。
// 全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	server, cleanup, err := buildServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// buildServer は全依存関係をワイヤリングしてHTTPサーバーを構築する。
// 返されるcleanupはシャットダウン時に呼び出すこと。
func buildServer(cfg *config.Config) (*http.Server, func(), error) {
	log := slog.Default()

	// 1. メトリクス
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 2. Notionクライアント（プロセス全体で1つを共有する）
	// 外向きHTTPはNotion APIホストのみ許可する
	outbound := security.NewOutboundClient(cfg.NotionTimeout, notionAPIHost)
	notionClient := notion.NewClient(outbound, log, cfg.NotionToken)
	notionClient.SetMetricsRecorder(collector)

	// 認証情報の検証は起動を止めない。失敗はログに残し、
	// 実リクエスト時のエラーハンドリングに委ねる。
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.NotionTimeout)
		defer cancel()
		if err := notionClient.VerifyCredentials(ctx, cfg.NotionDatabaseID); err != nil {
			log.Warn("Notion認証情報の検証に失敗",
				slog.String("error", err.Error()),
			)
		}
	}()

	// 3. 結果キャッシュ
	resultCache := cache.New(cfg.CacheTTL)
	resultCache.SetMetricsRecorder(collector)

	// 4. ドメインサービス
	entryService := entry.NewService(notionClient, cfg.NotionWritingDatabaseID, resultCache, log)
	postService := post.NewService(notionClient, resultCache, log)

	// 5. ビューとフィード生成
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build renderer: %w", err)
	}

	feedGenerator := feedgen.NewGenerator(cfg.SiteTitle, cfg.SiteDescription, cfg.BaseURL, security.NewFeedSanitizer())

	// 6. ルーター
	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig(cfg.RateLimitGeneral))

	graphStart, graphEnd := cfg.GraphRange()

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            log,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		StatusRecorder:    collector,

		PostHandler:   handler.NewPostHandler(postService, log),
		GraphHandler:  handler.NewGraphHandler(entryService, renderer, log, cfg.SiteTitle, graphStart, graphEnd),
		FeedHandler:   handler.NewFeedHandler(entryService, feedGenerator, log),
		HealthHandler: handler.NewHealthHandler(),

		MetricsHandler: metrics.Handler(registry),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	cleanup := func() {
		rateLimiter.Stop()
	}

	return server, cleanup, nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /healthz エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/healthz", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
