package main

import (
	"fmt"

	"ledger-core/internal/service"
	"ledger-core/internal/worker"
	"ledger-core/internal/worker/tasks"
	"ledger-core/pkg/config"
	"ledger-core/pkg/database"
	"ledger-core/pkg/logger"
	"ledger-core/pkg/mailer"
	"ledger-core/pkg/monitor"

	"go.uber.org/zap"
)

// 邮件 Worker 进程: 消费 Asynq 队列里的投递任务。
// 与 API 进程分离部署，SMTP 慢或挂掉不影响请求路径。
func main() {
	config.Init()
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	monitor.InitBusinessMetrics()

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

	smtp := config.Global.SMTP
	sender := mailer.NewSMTPSender(smtp.Host, smtp.Port, smtp.Username, smtp.Password, smtp.From)
	emailService := service.NewEmailService(db, sender, config.Global.App.FrontendURL)

	handlers := tasks.NewEmailHandlers(emailService, sender, smtp.AdminEmail)
	srv := worker.NewServer(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB, 10, handlers)

	if err := srv.Run(); err != nil {
		logger.Fatal("Worker Server failed", zap.Error(err))
	}
}
