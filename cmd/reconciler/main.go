package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/arhamf/food-delivery-api/internal/carts"
	"github.com/arhamf/food-delivery-api/internal/config"
	kafkax "github.com/arhamf/food-delivery-api/internal/kafka"
	"github.com/arhamf/food-delivery-api/internal/mongodb"
	"github.com/arhamf/food-delivery-api/internal/orders"
	"github.com/arhamf/food-delivery-api/internal/reconcile"
	"github.com/arhamf/food-delivery-api/internal/redisx"
	"github.com/arhamf/food-delivery-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mongo
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := mongodb.Connect(connectCtx, cfg.MongoURI)
	connectCancel()
	if err != nil {
		log.Error("mongo connect", "error", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Service
	svc := &reconcile.Service{
		Carts: &carts.Reconciler{
			Carts:  &carts.Repo{DB: db},
			Orders: &orders.Repo{DB: db},
		},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-reconciler",
		Log:         log,
	}

	// Consumer
	group := getenv("RECONCILER_GROUP", "cart-reconciler")
	workers := mustAtoi(os.Getenv("RECONCILER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderRemoved, workers)

	go func() {
		log.Info("reconciler consumer started",
			"group", group, "topic", orders.TopicOrderRemoved, "workers", workers)
		if err := cons.Start(ctx, svc.HandleOrderRemoved); err != nil {
			log.Error("consumer exit", "error", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
