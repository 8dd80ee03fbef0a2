package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmarchuk/flightroster/config"
	"github.com/dmarchuk/flightroster/internal/bootstrap"
	"github.com/dmarchuk/flightroster/internal/cache"
	"github.com/dmarchuk/flightroster/internal/kafka"
	"github.com/dmarchuk/flightroster/internal/logging"
	"github.com/dmarchuk/flightroster/internal/metrics"
	"github.com/dmarchuk/flightroster/internal/repository"
	"github.com/dmarchuk/flightroster/internal/service/flights"
	"github.com/dmarchuk/flightroster/internal/service/passengers"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logging.L().Fatalw("connect postgres", "error", err)
	}
	defer pool.Close()

	cacheTTL := time.Duration(cfg.Cache.FlightsTTLSeconds) * time.Second
	var flightCache flights.Cache
	if cfg.Redis.Addr != "" {
		flightCache = cache.NewRedisCache(cfg.Redis, cacheTTL)
	} else {
		flightCache = cache.NewMemoryCache(cacheTTL)
	}

	var producer flights.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewProducer(cfg.Kafka.Brokers)
		defer p.Close()
		producer = p
	}

	reg := metrics.NewRegistry()

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	flightService := flights.NewFlightService(
		flightRepo,
		passengerRepo,
		flightCache,
		producer,
		cfg.Kafka.RosterTopic,
		flights.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		flights.WithMetrics(reg),
	)
	passengerService := passengers.NewPassengerService(passengerRepo)

	if err := bootstrap.Run(ctx, cfg, flightService, passengerService, reg); err != nil {
		logging.L().Fatalw("server error", "error", err)
	}
}
