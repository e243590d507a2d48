package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	httpserver "github.com/wyfcoding/storefront/internal/catalog/interfaces/http"
	"github.com/wyfcoding/storefront/pkg/bootstrap"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

var configPath = flag.String("config", "configs/catalog/config.toml", "config file path")

func main() {
	flag.Parse()
	ctx := context.Background()

	// 1. 初始化配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 初始化日志
	if err := bootstrap.InitLogger(cfg); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 3. 初始化指标
	m := metrics.New("catalog")

	// 4. 初始化基础设施
	database, err := bootstrap.OpenDB(ctx, cfg, &mysql.ProductPO{})
	if err != nil {
		bootstrap.Exit("failed to connect database", err)
	}
	defer database.Close()

	redisCache, err := bootstrap.OpenRedis(cfg)
	if err != nil {
		// 只用于限流，不可用时继续启动
		logger.Warn(ctx, "redis unavailable, rate limiting disabled", "error", err)
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	publisher, closePublisher := bootstrap.NewPublisher(cfg)
	defer closePublisher()

	// 5. 初始化仓储与应用服务
	productRepo := mysql.NewProductRepository(database.DB)
	appService := application.NewCatalogApplicationService(
		application.NewCatalogCommandService(productRepo, publisher),
		application.NewCatalogQueryService(productRepo),
	)

	// 6. 初始化接口层
	r := bootstrap.NewRouter(cfg, m, redisCache)
	httpserver.NewCatalogHandler(appService).RegisterRoutes(r)

	// 7. 启动服务
	if err := bootstrap.Serve(cfg, r, m); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
