package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/amazoniatrade/marketplace/internal/config"
	"github.com/amazoniatrade/marketplace/internal/es"
	"github.com/amazoniatrade/marketplace/internal/handlers"
	"github.com/amazoniatrade/marketplace/internal/logging"
	authmw "github.com/amazoniatrade/marketplace/internal/middleware/auth"
	loggingmw "github.com/amazoniatrade/marketplace/internal/middleware/logging"
	"github.com/amazoniatrade/marketplace/internal/mykafka"
	"github.com/amazoniatrade/marketplace/internal/order"
	"github.com/amazoniatrade/marketplace/internal/store"
	"github.com/amazoniatrade/marketplace/internal/store/cache"
	"github.com/amazoniatrade/marketplace/internal/token"
	httpserver "github.com/amazoniatrade/marketplace/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	tokens := &token.Service{Secret: []byte(configuration.JWT_SECRET)}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	rdb, err := cache.NewRedisClient(context.Background(), configuration.REDIS_ADDR, configuration.REDIS_PASSWORD)
	if err != nil {
		logger.Warn("redis unavailable, product cache disabled", "error", err)
	}

	productStore := &store.ProductStore{DB: db}
	productCache := cache.NewProductCache(rdb, 5*time.Minute, productStore)

	var searchHandler *handlers.SearchHandler
	productHandler := &handlers.ProductHandler{
		Store:     productStore,
		Cache:     productCache,
		Producer:  prod,
		ESIndex:   "products",
		UploadDir: configuration.UPLOAD_DIR,
		BaseURL:   configuration.BASE_URL,
	}
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			productHandler.ES = esClient
			searchHandler = &handlers.SearchHandler{ES: esClient, Index: "products"}
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Users: &store.UserStore{DB: db}, Tokens: tokens, Producer: prod},
		ProductHandler: productHandler,
		OrderHandler:   &handlers.OrderHandler{Svc: &order.Service{DB: db}, Producer: prod},
		SearchHandler:  searchHandler,
		Auth:           &authmw.Middleware{Tokens: tokens},
		UploadDir:      configuration.UPLOAD_DIR,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
