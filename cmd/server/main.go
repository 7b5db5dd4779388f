package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/nvoss/storefront/internal/cache"
	"github.com/nvoss/storefront/internal/config"
	h "github.com/nvoss/storefront/internal/http"
	"github.com/nvoss/storefront/internal/outbox"
	"github.com/nvoss/storefront/internal/repository"
	"github.com/nvoss/storefront/internal/service"
	"github.com/nvoss/storefront/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(context.Background())
	log.Info("connected to MongoDB", "uri", cfg.MongoURI)

	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis", "addr", cfg.RedisAddr)

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	orderRepo := repository.NewMongoOrderRepository(mongoDB)
	productRepo := repository.NewMongoProductRepository(mongoDB)
	categoryRepo := repository.NewMongoCategoryRepository(mongoDB)
	userRepo := repository.NewMongoUserRepository(mongoDB)
	providerRepo := repository.NewMongoProviderRepository(mongoDB)

	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartRepo, catalogService, cache.NewRedisCache(redisClient))
	orderService := service.NewOrderService(orderRepo, catalogService)
	categoryService := service.NewCategoryService(categoryRepo)
	userService := service.NewUserService(userRepo, cfg.JWTSecret)

	if len(cfg.KafkaBrokers) > 0 {
		publisher := outbox.NewPublisher(orderRepo, cfg.KafkaBrokers...)
		defer publisher.Close()
		go publisher.Run(ctx)
		log.Info("order event publisher started", "brokers", cfg.KafkaBrokers)
	}

	router := h.NewRouter(
		h.RouterConfig{
			JWTSecret:      cfg.JWTSecret,
			RequestTimeout: cfg.RequestTimeout,
		},
		h.Handlers{
			Cart:       h.NewCartHandler(cartService, cfg.RequestTimeout),
			Orders:     h.NewOrdersHandler(orderService, cfg.RequestTimeout),
			Exports:    h.NewExportHandler(orderService, cfg.RequestTimeout),
			Products:   h.NewProductsHandler(catalogService, cfg.RequestTimeout),
			Categories: h.NewCategoriesHandler(categoryService, cfg.RequestTimeout),
			Users:      h.NewUsersHandler(userService, cfg.RequestTimeout),
			Providers:  h.NewProvidersHandler(providerRepo, cfg.RequestTimeout),
		},
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
