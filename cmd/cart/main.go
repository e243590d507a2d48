package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	cartcatalog "github.com/wyfcoding/storefront/internal/cart/infrastructure/catalog"
	"github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence"
	"github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/redis"
	httpserver "github.com/wyfcoding/storefront/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/pkg/bootstrap"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

var configPath = flag.String("config", "configs/cart/config.toml", "config file path")

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
	m := metrics.New("cart")

	// 4. 初始化基础设施
	database, err := bootstrap.OpenDB(ctx, cfg, &mysql.CartPO{}, &mysql.CartItemPO{})
	if err != nil {
		bootstrap.Exit("failed to connect database", err)
	}
	defer database.Close()

	redisCache, err := bootstrap.OpenRedis(cfg)
	if err != nil {
		bootstrap.Exit("failed to init redis", err)
	}
	defer redisCache.Close()

	publisher, closePublisher := bootstrap.NewPublisher(cfg)
	defer closePublisher()

	// 5. 初始化仓储：数据库为准，Redis 只缓存行状态
	cartRepo := persistence.NewCompositeCartRepository(
		mysql.NewCartRepository(database.DB),
		redis.NewCartRedisRepository(redisCache, time.Duration(cfg.Redis.CartTTL)*time.Second),
	)

	// 商品快照直接读共享库中的商品表
	catalogQuery := catalogapp.NewCatalogQueryService(catalogmysql.NewProductRepository(database.DB))
	provider := cartcatalog.NewProvider(catalogQuery)

	// 6. 初始化应用服务
	opts := application.Options{
		LowStockThreshold: cfg.Cart.LowStockThreshold,
		Currency:          cfg.Cart.Currency,
		Shipping: domain.ShippingPolicy{
			FlatFee:         cfg.Shipping.Fee(),
			FrancoThreshold: cfg.Shipping.Franco(),
		},
	}
	appService := application.NewCartApplicationService(
		application.NewCartCommandService(cartRepo, provider, publisher, m, opts),
		application.NewCartQueryService(cartRepo, provider, m, opts),
	)

	// 7. 初始化接口层
	r := bootstrap.NewRouter(cfg, m, redisCache)
	httpserver.NewCartHandler(appService).RegisterRoutes(r)

	// 8. 启动服务
	if err := bootstrap.Serve(cfg, r, m); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
