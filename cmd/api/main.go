package main

import (
	"context"
	"log"

	"stockdesk/internal/core/apiclient"
	"stockdesk/internal/core/cache"
	"stockdesk/internal/core/config"
	"stockdesk/internal/core/logger"
	"stockdesk/internal/core/metrics"
	"stockdesk/internal/core/querycache"
	"stockdesk/internal/core/server"
	catalogadapter "stockdesk/internal/features/catalog/adapters"
	cataloghandler "stockdesk/internal/features/catalog/handler"
	catalogservice "stockdesk/internal/features/catalog/service"
	customeradapter "stockdesk/internal/features/customers/adapters"
	customerhandler "stockdesk/internal/features/customers/handler"
	customerservice "stockdesk/internal/features/customers/service"
	installationadapter "stockdesk/internal/features/installations/adapters"
	installationhandler "stockdesk/internal/features/installations/handler"
	installationservice "stockdesk/internal/features/installations/service"
	inventoryadapter "stockdesk/internal/features/inventory/adapters"
	inventoryhandler "stockdesk/internal/features/inventory/handler"
	inventoryservice "stockdesk/internal/features/inventory/service"
	orderadapter "stockdesk/internal/features/orders/adapters"
	orderhandler "stockdesk/internal/features/orders/handler"
	orderservice "stockdesk/internal/features/orders/service"
	purchaseadapter "stockdesk/internal/features/purchases/adapters"
	purchasehandler "stockdesk/internal/features/purchases/handler"
	purchaseservice "stockdesk/internal/features/purchases/service"
	useradapter "stockdesk/internal/features/users/adapters"
	userhandler "stockdesk/internal/features/users/handler"
	userservice "stockdesk/internal/features/users/service"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title Stockdesk API
// @version 1.0
// @description Admin gateway for the inventory, order and purchasing backend.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)

	store, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer store.Close()
	if err := store.Ping(context.Background()); err != nil {
		l.Fatal("Redis ping failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	qc := querycache.New(store, recorder)

	backend, err := apiclient.New(apiclient.Config{
		BaseURL:  cfg.Backend.BaseURL,
		APIToken: cfg.Backend.APIToken,
		Timeout:  cfg.BackendTimeout(),
		Metrics:  recorder,
	})
	if err != nil {
		l.Fatal("Failed to create backend client", zap.Error(err))
	}

	listTTL, detailTTL := cfg.ListTTL(), cfg.DetailTTL()

	orderSvc := orderservice.NewOrderService(orderadapter.NewBackendAdapter(backend), qc, listTTL, detailTTL)
	customerSvc := customerservice.NewCustomerService(customeradapter.NewBackendAdapter(backend), qc, listTTL, detailTTL)
	catalogSvc := catalogservice.NewCatalogService(catalogadapter.NewBackendAdapter(backend), qc, listTTL, detailTTL)
	transferSvc := inventoryservice.NewTransferService(inventoryadapter.NewBackendAdapter(backend), qc, listTTL, detailTTL)
	installationSvc := installationservice.NewInstallationService(installationadapter.NewBackendAdapter(backend), qc, listTTL, detailTTL)
	purchaseAdapter := purchaseadapter.NewBackendAdapter(backend)
	purchaseSvc := purchaseservice.NewPurchaseService(purchaseAdapter, purchaseAdapter, qc, listTTL, detailTTL)
	userSvc := userservice.NewUserService(useradapter.NewBackendAdapter(backend), qc, listTTL)

	srv := server.New(cfg)
	api := srv.App.Group("/api")

	orderhandler.NewOrderHandler(orderSvc).Register(api)
	customerhandler.NewCustomerHandler(customerSvc).Register(api)
	cataloghandler.NewCatalogHandler(catalogSvc).Register(api)
	inventoryhandler.NewTransferHandler(transferSvc).Register(api)
	installationhandler.NewInstallationHandler(installationSvc).Register(api)
	purchasehandler.NewPurchaseHandler(purchaseSvc).Register(api)
	userhandler.NewUserHandler(userSvc).Register(api)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
