package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"salesdash/internal/config"
	"salesdash/internal/domains"
	"salesdash/internal/payment"
	"salesdash/internal/pricing"
	"salesdash/internal/scheduler"
	"salesdash/internal/server"
	"salesdash/internal/service"
	"salesdash/internal/storage"
	"salesdash/internal/storage/memory"
	"salesdash/internal/storage/providers"
	"salesdash/internal/storage/redisstore"
	httptransport "salesdash/internal/transport/http"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.MustLoad()
	setupLogger(cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stores, importer, closeStores := openStores(ctx, cfg)
	defer closeStores()

	if cfg.SeedDemo {
		if err := service.SeedDemo(ctx, stores, importer, time.Now().UTC()); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	addOnPrice, err := decimal.NewFromString(cfg.Checkout.AddOnPrice)
	if err != nil || addOnPrice.IsNegative() {
		log.Fatalf("invalid checkout.add_on_price %q", cfg.Checkout.AddOnPrice)
	}

	scheduler.NewKeySweeper(stores.Idempotency, cfg.Scheduler.SweepInterval).Start(ctx)

	router := httptransport.Router(httptransport.Services{
		Auth: service.NewAuthService(service.MerchantCredentials{
			Merchant:     domains.Merchant{FullName: cfg.Merchant.FullName, Email: cfg.Merchant.Email},
			PasswordHash: cfg.Merchant.PasswordHash,
		}, cfg.JWT.Secret),
		Pages:     service.NewPageService(stores.Pages, stores.Products, cfg.Server.PublicOrigin),
		Products:  service.NewProductService(stores.Products),
		Orders:    service.NewOrderService(stores.Orders),
		Analytics: service.NewAnalyticsService(stores),
		Checkout: service.NewCheckoutService(stores, payment.NewSimulated(cfg.Checkout.PaymentDelay), pricing.NewEngine(addOnPrice), service.CheckoutConfig{
			PaymentTimeout: cfg.Checkout.PaymentTimeout,
			IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
		}),
	})

	addr := cfg.Server.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	if err := server.Start(ctx, addr, cfg.Server.AllowedOrigins, router); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStores picks postgres when database_url is set and memory otherwise.
// Redis, when configured, takes over idempotency keys from either backend.
func openStores(ctx context.Context, cfg *config.Config) (service.Stores, service.OrderImporter, func()) {
	var (
		stores   service.Stores
		importer service.OrderImporter
		closers  []func()
	)

	if cfg.DatabaseUrl != "" {
		db, err := storage.InitDB(cfg.DatabaseUrl, cfg.MaxConns)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		closers = append(closers, db.Close)
		allProviders := providers.New(db)
		stores = service.Stores{
			Pages:       allProviders.PageProvider,
			Products:    allProviders.ProductProvider,
			Orders:      allProviders.OrderProvider,
			Idempotency: allProviders.IdempotencyProvider,
		}
		importer = allProviders.OrderProvider
	} else {
		slog.Warn("database_url is empty, data lives in memory only")
		mem := memory.New()
		stores = service.Stores{
			Pages:       mem.Pages,
			Products:    mem.Products,
			Orders:      mem.Orders,
			Idempotency: mem.Idempotency,
		}
		importer = mem.Orders
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		stores.Idempotency = redisstore.NewIdempotencyStore(rdb)
	}

	return stores, importer, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

func setupLogger(env string) {
	var handler slog.Handler
	switch env {
	case "local":
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
