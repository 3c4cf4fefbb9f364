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

	"github.com/patitas-shop/backend/internal/config"
	"github.com/patitas-shop/backend/internal/es"
	"github.com/patitas-shop/backend/internal/events"
	"github.com/patitas-shop/backend/internal/handlers"
	"github.com/patitas-shop/backend/internal/logging"
	authmw "github.com/patitas-shop/backend/internal/middleware/auth"
	loggingmw "github.com/patitas-shop/backend/internal/middleware/logging"
	"github.com/patitas-shop/backend/internal/repo"
	cartsvc "github.com/patitas-shop/backend/internal/service/cart"
	catalogsvc "github.com/patitas-shop/backend/internal/service/catalog"
	ordersvc "github.com/patitas-shop/backend/internal/service/order"
	httpserver "github.com/patitas-shop/backend/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer([]string{cfg.KAFKA_ADDRESS})
	defer producer.Close()

	esClient, err := es.NewClient(cfg)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	jwtSecret := []byte(cfg.JWT_SECRET)
	refreshSecret := []byte(cfg.REFRESH_SECRET)

	r := &repo.GormRepo{DB: db}
	guard := &authmw.Guard{JWTSecret: jwtSecret}
	catalog := &catalogsvc.Service{Repo: r}

	deps := &httpserver.Deps{
		Guard: guard,
		AuthHandler: &handlers.AuthHandler{
			DB:            db,
			JWTSecret:     jwtSecret,
			RefreshSecret: refreshSecret,
			Producer:      producer,
		},
		ProductHandler: &handlers.ProductHandler{
			Svc:      catalog,
			Producer: producer,
			ES:       esClient,
			Index:    es.ProductIndex,
		},
		CategoryHandler: &handlers.CategoryHandler{Svc: catalog},
		CartHandler: &handlers.CartHandler{
			Svc:      &cartsvc.Service{Repo: r},
			Producer: producer,
		},
		OrderHandler: &handlers.OrderHandler{
			Svc:      &ordersvc.Service{Repo: r},
			Producer: producer,
		},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: es.ProductIndex},
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	port := cfg.SERVER_PORT
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
