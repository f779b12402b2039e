package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arhamf/food-delivery-api/internal/accounts"
	"github.com/arhamf/food-delivery-api/internal/carts"
	"github.com/arhamf/food-delivery-api/internal/catalog"
	"github.com/arhamf/food-delivery-api/internal/config"
	"github.com/arhamf/food-delivery-api/internal/httpx"
	kafkax "github.com/arhamf/food-delivery-api/internal/kafka"
	"github.com/arhamf/food-delivery-api/internal/mongodb"
	"github.com/arhamf/food-delivery-api/internal/orders"
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

	// Kafka producers, one per topic
	pAdded := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderAdded, 1024)
	pAdded.Start(ctx)
	pRemoved := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderRemoved, 1024)
	pRemoved.Start(ctx)
	pQty := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicQuantityUpdated, 1024)
	pQty.Start(ctx)

	// Repos & services
	catalogRepo := &catalog.Repo{DB: db}
	cartsRepo := &carts.Repo{DB: db}
	ordersRepo := &orders.Repo{DB: db}
	usersRepo := &accounts.Repo{DB: db}

	catalogSvc := &catalog.Service{Store: catalogRepo}
	cartManager := &carts.Manager{Carts: cartsRepo, Users: usersRepo}
	ledger := &orders.Ledger{Orders: ordersRepo, Carts: cartsRepo}
	accountsSvc := &accounts.Service{Users: usersRepo, Carts: cartsRepo}

	// Router & handlers
	router := httpx.NewRouter()
	ch := &httpx.CatalogHandler{Service: catalogSvc, Redis: rdb, Log: log}
	ch.Register(router)
	oh := &httpx.OrdersHandler{
		Ledger:  ledger,
		Added:   pAdded,
		Removed: pRemoved,
		Qty:     pQty,
		Redis:   rdb,
		Service: cfg.ServiceName,
		Log:     log,
	}
	oh.Register(router)
	crh := &httpx.CartsHandler{Manager: cartManager, Reader: cartsRepo, Redis: rdb, Log: log}
	crh.Register(router)
	ah := &httpx.AccountsHandler{Service: accountsSvc, Log: log}
	ah.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	// close inboxes -> flush & close writers
	pAdded.Close()
	pRemoved.Close()
	pQty.Close()
	cancel()
	pAdded.WaitClosed()
	pRemoved.WaitClosed()
	pQty.WaitClosed()
}
