package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivery-service/internal/config"
	"delivery-service/internal/lib/logger"
	"delivery-service/internal/repository/cache"
	"delivery-service/internal/repository/mongodb"
	"delivery-service/internal/service"
	httptransport "delivery-service/internal/transport/http"
	"delivery-service/internal/transport/kafka"
)

func main() {
	// 1. Инициализация конфигурации
	cfg := config.MustLoad("config/config.yaml")

	// 2. Инициализация логгера
	log := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	log.Info("starting delivery-service", slog.String("log_level", cfg.Logger.Level))

	// 3. Инициализация хранилища
	initCtx := context.Background()
	db, err := mongodb.New(initCtx, cfg.Mongo)
	if err != nil {
		log.Error("failed to connect to mongodb", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Client().Disconnect(context.Background())
	log.Info("successfully connected to mongodb", slog.String("database", cfg.Mongo.Database))

	dishRepo := mongodb.NewDishRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	// 4. Инициализация кэша блюд
	dishCache := cache.NewDishCache()
	log.Info("dish cache initialized")

	// 5. Инициализация продюсера событий
	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)

	// 6. Инициализация сервисного слоя
	dishSvc := service.NewDishService(dishRepo, userRepo, dishCache, producer, log)
	orderSvc := service.NewOrderService(orderRepo, userRepo, producer, log)

	// 7. Восстановление кэша из хранилища при старте
	if err := dishSvc.RestoreCache(context.Background()); err != nil {
		// не фатальная ошибка, сервис может работать и с пустым кэшем
		log.Error("failed to restore cache", slog.String("error", err.Error()))
	}

	// 8. Инициализация и запуск HTTP-сервера
	handler := httptransport.NewHandler(dishSvc, orderSvc, log)
	httpServer := httptransport.NewServer(cfg.HTTPServer.Port, handler, cfg.HTTPServer.Timeout)
	log.Info("starting http server", slog.String("port", cfg.HTTPServer.Port))

	go func() {
		if err := httpServer.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed to start", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// 9. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down application")

	// создаем контекст с таймаутом для шатдауна сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", slog.String("error", err.Error()))
	}

	if err := producer.Close(); err != nil {
		log.Error("error closing kafka producer", slog.String("error", err.Error()))
	}

	log.Info("application stopped")
}
