package app

import (
	"context"
	"os"
	"strings"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	kafkarelay "github.com/SekiryuuteiDxD/keyra1-sub001/internal/messaging/kafka"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp wires infrastructure and registers all routes. The bus is
// constructed exactly once here and handed to every component that
// publishes or subscribes; nothing reaches for it through a global.
func BuildApp(ctx context.Context, router *gin.Engine, logger *zap.Logger) error {
	bus := eventbus.New(logger).
		WithMetrics(eventbus.NewMetrics(prometheus.DefaultRegisterer))

	var gormDB *gorm.DB
	if os.Getenv("DB_HOST") != "" {
		db, err := connection.ConnectGORMWithRetry(
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_SSLMODE"),
			5,
		)
		if err != nil {
			return err
		}
		gormDB = db
	} else {
		logger.Warn("DB_HOST not set, running with in-memory payment queue only")
	}

	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		redisClient = rdb
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		writer := kafkarelay.NewWriter(strings.Split(brokers, ","))
		relay := kafkarelay.NewRelay(bus, writer, logger)
		relay.Start(ctx)
	}

	return registerModules(ctx, router, bus, gormDB, redisClient, logger)
}
