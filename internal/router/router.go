package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"kaamtrack/config"
	"kaamtrack/internal/handler"
	"kaamtrack/internal/middleware"
	"kaamtrack/internal/model"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())
	if config.Cfg.CSRFEnabled {
		// 网页端控制台走 cookie 会话时才需要
		h.Use(middleware.CSRFMiddleware())
	}

	h.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口限流
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/refresh", handler.Refresh)
		auth.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}

	// 工人档案路由，仅老板可操作
	workers := v1.Group("/workers")
	workers.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(model.RoleOwner)), middleware.GeneralRateLimitMiddleware())
	{
		workers.POST("", handler.CreateWorker)
		workers.GET("", handler.ListWorkers)
		workers.GET("/by-qr/:token", handler.GetWorkerByQrToken)
		workers.GET("/:worker_id", handler.GetWorker)
		workers.PATCH("/:worker_id", handler.UpdateWorker)
		workers.DELETE("/:worker_id", handler.DeactivateWorker)
		workers.GET("/:worker_id/stats", handler.GetWorkerStats)
	}

	// 工人自助端路由，只读
	me := v1.Group("/me")
	me.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(model.RoleWorker)))
	{
		me.GET("/stats", handler.GetSelfStats)
		me.GET("/attendance", handler.GetSelfAttendance)
		me.GET("/payments", handler.GetSelfPayments)
	}

	// 考勤路由：点名和查询归老板，扫码打卡归工人
	attendance := v1.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("", middleware.RequireRole(string(model.RoleOwner)), handler.MarkAttendance)
		attendance.GET("", middleware.RequireRole(string(model.RoleOwner)), handler.ListAttendance)
		attendance.POST("/check-in", middleware.RequireRole(string(model.RoleWorker)), middleware.CheckInRateLimitMiddleware(), handler.CheckIn)
	}

	// 当日动态码路由
	qrCodes := v1.Group("/qr-codes")
	qrCodes.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(model.RoleOwner)))
	{
		qrCodes.POST("/generate", handler.GenerateDailyCode)
		qrCodes.GET("/current", handler.GetCurrentDailyCode)
	}

	// 收支流水路由
	payments := v1.Group("/payments")
	payments.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(model.RoleOwner)), middleware.GeneralRateLimitMiddleware())
	{
		payments.POST("", handler.CreatePayment)
		payments.GET("", handler.ListPayments)
	}

	// 报表路由
	reports := v1.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(model.RoleOwner)))
	{
		reports.GET("/dashboard", handler.GetDashboard)
		reports.GET("/summary", handler.GetSummary)
	}
}
