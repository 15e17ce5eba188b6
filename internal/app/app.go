// Package app assembles the bot from configuration: it loads the reference
// tables, builds the rewrite pipeline and registers health checks.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"

	"github.com/seanankenbruck/ti-bot/internal/config"
	"github.com/seanankenbruck/ti-bot/internal/llm"
	"github.com/seanankenbruck/ti-bot/internal/observability"
	"github.com/seanankenbruck/ti-bot/internal/processor"
	"github.com/seanankenbruck/ti-bot/internal/resolver"
	"github.com/seanankenbruck/ti-bot/internal/tables"
)

// Version is stamped at build time with -ldflags "-X .../internal/app.Version=..."
var Version = "dev"

// App is a fully wired bot
type App struct {
	Config *config.Config
	Tables *tables.Tables
	Router *processor.Router
	Health *observability.HealthChecker

	logger  *observability.Logger
	closers []func() error
}

// New loads the tables and wires every component described by cfg.
// Optional backends (Redis, the LLM provider) degrade instead of failing.
func New(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Health: observability.NewHealthChecker("ti-bot", Version),
		logger: logger,
	}

	t, err := a.loadTables(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Tables = t
	a.Health.Register("tables", observability.TablesHealthCheck(t.Counts()))

	res := resolver.New(t,
		resolver.WithPublicBaseURL(cfg.Server.PublicBaseURL),
		resolver.WithLogger(logger.Named("resolver")),
	)
	a.Router = processor.NewRouter(res, a.buildRewriter(ctx), logger.Named("router"))

	return a, nil
}

// Server returns the HTTP layer over the router
func (a *App) Server() *processor.Server {
	return processor.NewServer(a.Router, a.Tables, a.Health, processor.StaticConfig{
		Dir:       a.Config.Server.StaticDir,
		PhotosDir: a.Config.Server.PhotosDir,
		IndexFile: a.Config.Server.IndexFile,
	}, a.logger.Named("http"))
}

// Close releases database and cache connections
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// NewSource builds the table source selected by cfg. The returned database
// handle is nil for the xlsx source.
func NewSource(cfg *config.Config) (tables.Source, *sql.DB, error) {
	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		db, err := tables.OpenPostgres(PostgresConfig(cfg.Database))
		if err != nil {
			return nil, nil, err
		}
		return tables.NewPostgresSource(db), db, nil
	case config.DataSourceXLSX:
		return tables.NewXLSXSource(XLSXConfig(cfg.Data)), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

// PostgresConfig maps the database section onto the table source config
func PostgresConfig(db config.DatabaseConfig) tables.PostgresConfig {
	return tables.PostgresConfig{
		Host:     db.Host,
		Port:     db.Port,
		Database: db.Database,
		Username: db.Username,
		Password: db.Password,
		SSLMode:  db.SSLMode,
	}
}

// XLSXConfig maps the data section onto the workbook source config
func XLSXConfig(data config.DataConfig) tables.XLSXConfig {
	return tables.XLSXConfig{
		Dir:             data.Dir,
		RoomsFile:       data.RoomsFile,
		DepartmentsFile: data.DepartmentsFile,
		GeneralFile:     data.GeneralFile,
	}
}

func (a *App) loadTables(ctx context.Context) (*tables.Tables, error) {
	source, db, err := NewSource(a.Config)
	if err != nil {
		return nil, err
	}
	if db != nil {
		a.closers = append(a.closers, db.Close)
		a.Health.Register("database", observability.DatabaseHealthCheck(db.PingContext))
	}

	var t *tables.Tables
	start := time.Now()
	err = a.logger.WithOperation(ctx, "load reference tables", func(ctx context.Context) error {
		var loadErr error
		t, loadErr = source.Load(ctx)
		return loadErr
	})

	var counts map[string]int
	if t != nil {
		counts = t.Counts()
	}
	observability.RecordTableLoad(source.Name(), time.Since(start), counts, err)
	if err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "Reference tables loaded", map[string]interface{}{
		"source":      source.Name(),
		"rooms":       counts["rooms"],
		"departments": counts["departments"],
		"general":     counts["general"],
	})
	return t, nil
}

// NewCompleter builds the completer for the configured provider
func NewCompleter(cfg config.LLMConfig) (llm.Completer, error) {
	clientConfig := llm.Config{
		APIKey:    cfg.APIKey(),
		Model:     cfg.Model,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient(clientConfig)
	case config.ProviderClaude:
		return llm.NewClaudeClient(clientConfig)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// buildRewriter returns the identity rewriter when no provider is usable
func (a *App) buildRewriter(ctx context.Context) processor.Rewriter {
	cfg := a.Config

	if !cfg.LLM.Enabled() {
		a.logger.Warn(ctx, "No LLM API key configured, answers are served without rewriting", map[string]interface{}{
			"provider": cfg.LLM.Provider,
		})
		return llm.Identity{}
	}

	completer, err := NewCompleter(cfg.LLM)
	if err != nil {
		a.logger.Error(ctx, "Failed to create LLM client, answers are served without rewriting", err, nil)
		return llm.Identity{}
	}

	if cfg.LLM.BreakerEnabled {
		breaker := llm.NewCircuitBreakerCompleter(completer, llm.DefaultCircuitBreakerConfig, a.logger.Named("llm"))
		a.Health.Register("llm_service", observability.LLMHealthCheck(func(context.Context) error {
			if breaker.State() == gobreaker.StateOpen {
				return fmt.Errorf("circuit breaker open after %d consecutive failures", breaker.Counts().ConsecutiveFailures)
			}
			return nil
		}))
		completer = breaker
	}

	var cache llm.Cache
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, rdb.Close)

		redisCache := llm.NewRedisCache(rdb, cfg.Redis.TTL)
		a.Health.Register("redis", observability.RedisHealthCheck(redisCache.Ping))
		cache = redisCache
	}

	a.logger.Info(ctx, "Tone rewriter enabled", map[string]interface{}{
		"provider": completer.Name(),
		"cache":    cache != nil,
		"breaker":  cfg.LLM.BreakerEnabled,
	})

	return llm.NewRewriter(completer, cache, llm.RewriterConfig{
		Timeout:           cfg.LLM.Timeout,
		Temperature:       float32(cfg.LLM.Temperature),
		MaxTokens:         cfg.LLM.MaxTokens,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
		Burst:             cfg.LLM.Burst,
	}, a.logger.Named("rewriter"))
}
