package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
	cartcatalog "github.com/wyfcoding/storefront/internal/cart/infrastructure/catalog"
	cartmysql "github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/mysql"
	cartredis "github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/redis"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/order/application"
	"github.com/wyfcoding/storefront/internal/order/infrastructure/persistence/mysql"
	httpserver "github.com/wyfcoding/storefront/internal/order/interfaces/http"
	"github.com/wyfcoding/storefront/pkg/bootstrap"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

var configPath = flag.String("config", "configs/order/config.toml", "config file path")

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
	m := metrics.New("order")

	// 4. 初始化基础设施
	database, err := bootstrap.OpenDB(ctx, cfg, &mysql.OrderPO{}, &mysql.OrderLinePO{})
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

	// 5. 初始化仓储：下单事务直接操作购物车和商品表，提交后再让购物车缓存失效
	productRepo := catalogmysql.NewProductRepository(database.DB)
	provider := cartcatalog.NewProvider(catalogapp.NewCatalogQueryService(productRepo))
	cartRepo := cartmysql.NewCartRepository(database.DB)
	cartCache := cartredis.NewCartRedisRepository(redisCache, time.Duration(cfg.Redis.CartTTL)*time.Second)
	orderRepo := mysql.NewOrderRepository(database.DB)

	// 6. 初始化应用服务
	opts := application.CheckoutOptions{
		Policy: cartdomain.Policy{
			LowStockThreshold: cfg.Cart.LowStockThreshold,
			Shipping: cartdomain.ShippingPolicy{
				FlatFee:         cfg.Shipping.Fee(),
				FrancoThreshold: cfg.Shipping.Franco(),
			},
		},
		Currency: cfg.Cart.Currency,
	}
	appService := application.NewOrderApplicationService(
		application.NewOrderCommandService(orderRepo, cartRepo, cartCache, provider, productRepo, database, publisher, m, opts),
		application.NewOrderQueryService(orderRepo),
	)

	// 7. 初始化接口层
	r := bootstrap.NewRouter(cfg, m, redisCache)
	httpserver.NewOrderHandler(appService).RegisterRoutes(r)

	// 8. 启动服务
	if err := bootstrap.Serve(cfg, r, m); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
