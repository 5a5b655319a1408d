package main

import (
	"context"
	"fmt"
	"time"

	"royalty-core/internal/event"
	"royalty-core/internal/handler"
	"royalty-core/internal/model"
	"royalty-core/internal/server"
	"royalty-core/internal/service"
	"royalty-core/internal/service/mq"

	"royalty-core/pkg/config"
	"royalty-core/pkg/database"
	"royalty-core/pkg/logger"

	"go.uber.org/zap"
)

// @title Royalty Core API
// @version 1.0
// @description Music distribution back-office: earnings ingestion, royalty reconciliation and payment workflow

// @host localhost:8080
// @BasePath /api/v1
func main() {
	config.Init()

	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		config.Global.DB.Host,
		config.Global.DB.User,
		config.Global.DB.Password,
		config.Global.DB.Name,
		config.Global.DB.Port,
	)

	db, err := database.ConnectPostgres(dsn)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	rdb, err := database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}

	if config.Global.App.Env == "development" {
		logger.Info("development env: running GORM AutoMigrate...")
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("auto migrate failed", zap.Error(err))
		}
	} else {
		logger.Info("production env: skipping AutoMigrate, use the migrate tool")
	}

	// Message queue: Kafka or Redis Streams, per config. One consumer per
	// topic; the Kafka reader is bound to a single topic.
	var producer mq.Producer
	var batchConsumer, paymentConsumer mq.Consumer
	if config.Global.Redis.MQType == "kafka" {
		logger.Info("using Kafka as message queue")
		brokers := config.Global.Kafka.Brokers
		producer = mq.NewKafkaProducer(brokers)
		batchConsumer = mq.NewKafkaConsumer(brokers, "royalty_audit_group")
		paymentConsumer = mq.NewKafkaConsumer(brokers, "royalty_audit_group")
	} else {
		logger.Info("using Redis Streams as message queue")
		producer = mq.NewRedisProducer(rdb)
		batchConsumer = mq.NewRedisConsumer(rdb, "royalty_audit", "audit-0")
		paymentConsumer = mq.NewRedisConsumer(rdb, "royalty_audit", "audit-1")
	}

	// Outbox relay: drains PENDING messages to the broker.
	relay := service.NewRelayService(db, producer)
	go relay.Start(context.Background())

	// Audit tailers: log every published business event.
	for _, audit := range []*service.AuditService{
		service.NewAuditService(batchConsumer, event.TopicBatchProcessed),
		service.NewAuditService(paymentConsumer, event.TopicPaymentStatusChanged),
	} {
		go func(a *service.AuditService) {
			if err := a.Start(context.Background()); err != nil {
				logger.Error("audit tailer failed", zap.Error(err))
			}
		}(audit)
	}

	// Services.
	splits := service.NewSplitService()
	reconcile := service.NewReconcileService(splits)
	earnings := service.NewEarningsService(db, reconcile, config.Global.Upload.MaxRows)
	analytics := service.NewAnalyticsService(db)
	payments := service.NewPaymentService(db)
	royalties := service.NewRoyaltyService(db, payments)

	sessionTTL := time.Duration(config.Global.Session.TTLHours) * time.Hour
	admins := service.NewAdminService(db, rdb, sessionTTL)

	// HTTP surface.
	h := server.Handlers{
		Admin:    handler.NewAdminHandler(admins, int(sessionTTL.Seconds()), config.Global.App.Env != "development"),
		Earnings: handler.NewEarningsHandler(earnings, analytics, config.Global.Upload.MaxSizeMB),
		Payments: handler.NewPaymentHandler(payments),
		Royalty:  handler.NewRoyaltyHandler(royalties),
	}
	r := server.NewHTTPRouter(h, admins)

	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r)
	app.Run()

	logger.Info("closing database connections...")
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	rdb.Close()
	logger.Info("system exited")
}
