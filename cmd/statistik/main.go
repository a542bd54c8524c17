package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/djikoe/internal/auth"
	"github.com/ariefcatur/djikoe/internal/catalog"
	"github.com/ariefcatur/djikoe/internal/config"
	kafkax "github.com/ariefcatur/djikoe/internal/kafka"
	"github.com/ariefcatur/djikoe/internal/logging"
	"github.com/ariefcatur/djikoe/internal/pesanan"
	"github.com/ariefcatur/djikoe/internal/redisx"
	"github.com/ariefcatur/djikoe/internal/statistik"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// Consumer yang membuang cache statistik dashboard setiap ada perubahan
// pesanan, produk, atau akun.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.ServiceName+"-statistik", cfg.LogLevel, cfg.LogFormat)
	log := logging.For("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis
	rdb := redisx.New(cfg.RedisAddr, cfg.RedisPass)
	defer rdb.Close()
	if err := redisx.Ping(ctx, rdb); err != nil {
		log.Error("redis", "error", err)
		os.Exit(1)
	}

	inv := &statistik.Invalidator{
		Redis: rdb,
		Cache: &statistik.RedisCache{RDB: rdb},
		Name:  cfg.StatistikGroup,
		Log:   logging.For("statistik"),
	}

	topics := []string{pesanan.TopicPesanan, catalog.TopicProduk, auth.TopicAkun}
	g, gctx := errgroup.WithContext(ctx)
	for _, topic := range topics {
		topic := topic
		cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.StatistikGroup, topic, cfg.StatistikWorkers, logging.For("kafka"))
		g.Go(func() error {
			log.Info("consumer started", "group", cfg.StatistikGroup, "topic", topic, "workers", cfg.StatistikWorkers)
			return cons.Start(gctx, inv.Handle)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("consumer exit", "error", err)
		os.Exit(1)
	}
	log.Info("shutting down consumer...")
}
