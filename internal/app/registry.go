package app

import (
	"context"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/employee"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/notification"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/payment"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/shared/counter"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/stream"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	bus *eventbus.Bus,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Payment queue ---
	queue := payment.NewQueue()
	var paymentService payment.Service
	if gormDB != nil {
		paymentService = payment.NewServiceWithRepo(queue, payment.NewRepository(gormDB), bus, logger)
		if err := paymentService.LoadPending(ctx); err != nil {
			return err
		}
	} else {
		paymentService = payment.NewService(queue, bus, logger)
	}
	paymentHandler := payment.NewHandler(paymentService, logger)

	// --- Notifications & dashboard stream ---
	notificationService := notification.NewService(bus, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	hub := stream.NewHub(bus, logger)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		payment.RegisterRoutes(api, paymentHandler)
		notification.RegisterRoutes(api, notificationHandler)
		stream.RegisterRoutes(api, hub)

		// Employee CRUD needs the store.
		if gormDB != nil {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			employeeService := employee.NewService(
				sqlDB,
				employee.NewRepository(gormDB),
				counter.NewRepository(gormDB),
				employee.NewLifecycleNotifier(bus),
				rdb,
				logger,
			)
			employee.RegisterRoutes(api, employee.NewHandler(employeeService, logger), logger)
		}
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return nil
}
