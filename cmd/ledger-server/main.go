package main

import (
	"context"
	"fmt"

	"ledger-core/internal/model"
	"ledger-core/internal/server"
	"ledger-core/internal/service"
	"ledger-core/internal/service/mq"
	"ledger-core/internal/worker"

	"ledger-core/internal/handler"
	"ledger-core/pkg/cache"
	"ledger-core/pkg/config"
	"ledger-core/pkg/database"
	"ledger-core/pkg/logger"

	"go.uber.org/zap"
)

// @title Vault Ledger API
// @version 1.0
// @description Custodial ledger backend: deposits, wallets, KYC, support, bookkeeping

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 2. 构造 DSN 并连接数据库
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		config.Global.DB.Host,
		config.Global.DB.User,
		config.Global.DB.Password,
		config.Global.DB.Name,
		config.Global.DB.Port,
	)
	db, err := database.ConnectPostgres(dsn)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3. 连接 Redis
	rdb, err := database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	if err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}

	// 4. 执行数据库迁移 (Auto Migrate)
	if config.Global.App.Env == "development" {
		logger.Info("开发环境: 尝试自动迁移 Schema (GORM AutoMigrate)...")
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("数据库自动迁移失败", zap.Error(err))
		}
		logger.Info("数据库自动迁移完成 (Dev Mode)")
	} else {
		logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
	}

	// 5. Asynq Client (邮件任务入队)
	asynqClient := worker.NewClient(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	defer asynqClient.Close()
	dispatcher := worker.NewDispatcher(asynqClient)

	// 6. 组装 Service 层
	notifCache := cache.NewRedisCache(rdb)
	addresses := make(map[model.CoinType]string, len(config.Global.Deposit.Addresses))
	for coin, addr := range config.Global.Deposit.Addresses {
		addresses[model.CoinType(coin)] = addr
	}

	notifService := service.NewNotificationService(db, notifCache)
	walletService := service.NewWalletService(db)
	depositService := service.NewDepositService(db, walletService, notifService, dispatcher, addresses)
	supportService := service.NewSupportService(db, notifService)
	kycService := service.NewKYCService(db, notifService, config.Global.KYC.UploadDir)
	userService := service.NewUserService(db, notifService, dispatcher)
	ledgerService := service.NewLedgerService(db)
	trackingService := service.NewTrackingService(db, dispatcher)

	// 7. 初始化消息队列并启动 Outbox 中继
	var producer mq.Producer
	if config.Global.Redis.MQType == "kafka" {
		logger.Info("使用 Kafka 作为消息队列...")
		producer = mq.NewKafkaProducer(config.Global.Kafka.Brokers, "ledger_events_deposit")
	} else {
		logger.Info("使用 Redis Streams 作为消息队列...")
		producer = mq.NewRedisProducer(rdb)
	}
	relayService := service.NewRelayService(db, producer)
	go relayService.Start(context.Background())

	// 8. HTTP Router
	r := server.NewHTTPRouter(server.Handlers{
		Auth:          handler.NewAuthHandler(userService),
		KYC:           handler.NewKYCHandler(kycService),
		Support:       handler.NewSupportHandler(supportService),
		Notifications: handler.NewNotificationHandler(notifService),
		Deposits:      handler.NewDepositHandler(depositService),
		Wallets:       handler.NewWalletHandler(walletService, depositService, trackingService),
		Ledger:        handler.NewLedgerHandler(ledgerService),
	})

	// 9. 启动应用 (阻塞直到收到退出信号)
	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r)
	app.Run()

	// 10. 退出后资源清理
	logger.Info("正在关闭数据库连接...")
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	rdb.Close()
	logger.Info("系统已退出")
}
