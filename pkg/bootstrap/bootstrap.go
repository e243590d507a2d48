// Package bootstrap 各服务 main 共用的启动步骤：日志、数据库、Redis、事件发布、HTTP 路由与优雅关闭
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/mq"
	"github.com/wyfcoding/storefront/pkg/ratelimit"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// InitLogger 按配置初始化全局日志
func InitLogger(cfg *config.Config) error {
	return logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	})
}

// OpenDB 连接数据库，配置了 auto_migrate 时迁移给定模型
func OpenDB(ctx context.Context, cfg *config.Config, models ...any) (*db.DB, error) {
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate && len(models) > 0 {
		if err := database.AutoMigrate(models...); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Database migrated", "models", len(models))
	}
	return database, nil
}

// OpenRedis 连接 Redis
func OpenRedis(cfg *config.Config) (*cache.RedisCache, error) {
	return cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
}

// NewPublisher 配置了 Kafka broker 时发布到 Kafka，否则只写日志。
// 返回的 closer 在退出时调用
func NewPublisher(cfg *config.Config) (mq.Publisher, func() error) {
	if !cfg.Kafka.Enabled() {
		return mq.NewLogPublisher(), func() error { return nil }
	}
	producer := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
		BatchTimeout: cfg.Kafka.BatchTimeout,
	})
	return mq.NewTopicPublisher(producer, cfg.Kafka.TopicPrefix, cfg.ServiceName), producer.Close
}

// NewRouter 创建带公共中间件的 gin 引擎；redisCache 非空且启用限流时挂载限流中间件
func NewRouter(cfg *config.Config, m *metrics.Metrics, redisCache *cache.RedisCache) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinCORSMiddleware(),
		middleware.GinMetricsMiddleware(m),
	)
	if cfg.RateLimit.Enabled && redisCache != nil {
		limiter := ratelimit.NewRedisRateLimiter(redisCache.GetClient())
		r.Use(middleware.RateLimitMiddleware(limiter, ratelimit.PerSecond(cfg.RateLimit.QPS, cfg.RateLimit.Burst)))
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})
	return r
}

// Serve 启动 HTTP 与指标服务，收到 SIGINT/SIGTERM 后优雅关闭
func Serve(cfg *config.Config, handler http.Handler, m *metrics.Metrics) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	servers := []*http.Server{{
		Addr:         cfg.HTTP.Addr(),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}}
	if cfg.Metrics.Enabled {
		servers = append(servers, m.NewServer(cfg.Metrics.Port, cfg.Metrics.Path))
	}

	for _, srv := range servers {
		g.Go(func() error {
			logger.Info(ctx, "HTTP server starting", "service", cfg.ServiceName, "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info(context.Background(), "Shutting down servers...", "service", cfg.ServiceName)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// Exit 记录错误并退出
func Exit(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	logger.Error(context.Background(), msg, "error", err)
	os.Exit(1)
}
