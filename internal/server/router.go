package server

import (
	"ledger-core/internal/handler"
	"ledger-core/internal/middleware"
	"ledger-core/internal/server/routes"
	"ledger-core/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers 汇总所有 HTTP Handler，由 main 组装后注入
type Handlers struct {
	Auth          *handler.AuthHandler
	KYC           *handler.KYCHandler
	Support       *handler.SupportHandler
	Notifications *handler.NotificationHandler
	Deposits      *handler.DepositHandler
	Wallets       *handler.WalletHandler
	Ledger        *handler.LedgerHandler
}

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(h Handlers) *gin.Engine {
	// 0. 初始化监控指标
	monitor.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(middleware.RequestID())
	r.Use(monitor.PrometheusMiddleware())

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 注册 API 路由组
	api := r.Group("/api/v1")
	routes.RegisterAuthRoutes(api, h.Auth)

	authed := api.Group("")
	authed.Use(middleware.Auth())
	{
		routes.RegisterKYCRoutes(authed, h.KYC)
		routes.RegisterSupportRoutes(authed, h.Support)
		routes.RegisterNotificationRoutes(authed, h.Notifications)
		routes.RegisterDepositRoutes(authed, h.Deposits)
		routes.RegisterWalletRoutes(authed, h.Wallets)
		routes.RegisterLedgerRoutes(authed, h.Ledger)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(), middleware.AdminOnly())
	{
		routes.RegisterAdminRoutes(admin, h.Deposits, h.KYC, h.Support, h.Ledger)
	}

	return r
}
