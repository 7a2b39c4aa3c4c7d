package worker

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"ledger-core/internal/worker/tasks"
	"ledger-core/pkg/logger"
)

// Server 封装 Asynq Server (Worker)
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewServer 初始化 Worker Server
func NewServer(addr string, password string, db int, concurrency int, handlers *tasks.EmailHandlers) *Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     addr,
			Password: password,
			DB:       db,
		},
		asynq.Config{
			// 并发数：同时处理多少个任务
			Concurrency: concurrency,
			// 队列优先级
			Queues: map[string]int{
				"critical": 6, // 确认邮件、重置密码
				"default":  3,
				"low":      1, // 管理员告警
			},
			Logger: logger.NewAsynqLogger(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDepositConfirmEmail, handlers.HandleDepositConfirm)
	mux.HandleFunc(tasks.TypePasswordResetEmail, handlers.HandlePasswordReset)
	mux.HandleFunc(tasks.TypeAdminAlertEmail, handlers.HandleAdminAlert)

	return &Server{
		server: srv,
		mux:    mux,
	}
}

// Run 启动 Worker (阻塞)
func (s *Server) Run() error {
	logger.Info("Worker Server starting...")
	return s.server.Run(s.mux)
}

// Start 非阻塞启动 (用于集成到 main.go)
func (s *Server) Start() {
	go func() {
		if err := s.server.Run(s.mux); err != nil {
			logger.Fatal("Worker Server failed", zap.Error(err))
		}
	}()
}

// Stop 停止 Worker
func (s *Server) Stop() {
	s.server.Stop()
	s.server.Shutdown()
}
