package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/billingfox/ozonator/internal/api"
	"github.com/billingfox/ozonator/internal/archive"
	"github.com/billingfox/ozonator/internal/cache"
	"github.com/billingfox/ozonator/internal/config"
	"github.com/billingfox/ozonator/internal/demand"
	"github.com/billingfox/ozonator/internal/repository/postgres"
	"github.com/billingfox/ozonator/internal/sales"
	"github.com/billingfox/ozonator/internal/seller"
	"github.com/billingfox/ozonator/internal/service"
	"github.com/billingfox/ozonator/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureSchema(ctx); err != nil {
		cancel()
		logger.Log.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	cancel()

	sellerClient, err := seller.NewClient(cfg.Seller)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to build seller client")
	}

	productRepo := postgres.NewProductRepository(db)
	stockRepo := postgres.NewStockRepository(db)
	transitRepo := postgres.NewTransitRepository(db)
	salesRepo := postgres.NewSalesRepository(db)
	updateRepo := postgres.NewUpdateInfoRepository(db)

	demandCache, err := cache.NewDemandCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to cache")
	}

	archiveStore, err := archive.NewStore(cfg.Archive)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to build report archive")
	}

	locker := service.NewNoopLocker()
	if cfg.Update.LockEnabled {
		rdb, err := cache.NewRedisClient(cfg.Cache)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to redis for update lock")
		}
		locker = service.NewRedisLocker(rdb, time.Duration(cfg.Update.LockTTLSeconds)*time.Second)
	}

	fetcher := sales.NewFetcher(sellerClient, cfg.Update.EnrichWorkers)
	updateService := service.NewUpdateService(
		sellerClient,
		fetcher,
		productRepo,
		stockRepo,
		transitRepo,
		salesRepo,
		updateRepo,
		archiveStore,
		demandCache,
		locker,
		service.UpdateConfig{
			Cooldown: time.Duration(cfg.Update.CooldownSeconds) * time.Second,
			WaitOpts: seller.ReportWaitOptions{
				Interval:    time.Duration(cfg.Update.PollIntervalSeconds) * time.Second,
				MaxAttempts: cfg.Update.PollMaxAttempts,
			},
			SalesPeriod: time.Duration(cfg.Update.SalesPeriodDays) * 24 * time.Hour,
		},
	)

	demandService := service.NewDemandService(
		stockRepo, salesRepo, transitRepo, productRepo,
		demand.NewReconciler(demand.IdentityLabels),
		demandCache,
	)
	catalogService := service.NewCatalogService(productRepo, stockRepo, transitRepo, salesRepo, updateRepo)

	router := api.NewRouter(&api.Services{
		CatalogService: catalogService,
		DemandService:  demandService,
		UpdateService:  updateService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
