package router

import (
	"time"

	"expensetracker/api"
	"expensetracker/config"
	_ "expensetracker/docs"
	"expensetracker/events"
	"expensetracker/middleware"
	"expensetracker/repository"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies 路由用到的仓储与服务，由 main 组装
type Dependencies struct {
	Transactions *repository.TransactionRepository
	Users        *repository.UserRepository
	Accounts     *service.AccountService
	Ledger       *service.LedgerService
	Stats        *service.StatsService
	Reminders    *service.ReminderService
	Bus          *events.Bus
}

// NewDependencies 基于数据库连接组装仓储与服务；notifier 可为 nil（不发送提醒邮件）
func NewDependencies(db *gorm.DB, bus *events.Bus, notifier service.ReminderDispatcher) Dependencies {
	transactions := repository.NewTransactionRepository(db)
	users := repository.NewUserRepository(db)
	return Dependencies{
		Transactions: transactions,
		Users:        users,
		Accounts:     service.NewAccountService(users),
		Ledger:       service.NewLedgerService(transactions, bus),
		Stats:        service.NewStatsService(transactions),
		Reminders:    service.NewReminderService(repository.NewReminderRepository(db), notifier, bus),
		Bus:          bus,
	}
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg, deps.Accounts)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		}

		// 支出类别（无需登录）
		categoryHandler := api.NewCategoryHandler(deps.Transactions)
		v1.GET("/categories", categoryHandler.List)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			expenseHandler := api.NewExpenseHandler(deps.Ledger)
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.GET("/:id", expenseHandler.Get)
			}

			incomeHandler := api.NewIncomeHandler(deps.Ledger)
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.GET("/:id", incomeHandler.Get)
			}

			// 仪表盘
			dashboardHandler := api.NewDashboardHandler(deps.Stats, deps.Bus)
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/stats", dashboardHandler.Stats)
				dashboard.GET("/recent", dashboardHandler.Recent)
				dashboard.GET("/categories", dashboardHandler.Categories)
				dashboard.GET("/trend", dashboardHandler.Trend)
				dashboard.GET("/insights", dashboardHandler.Insights)
				dashboard.GET("/stream", dashboardHandler.Stream)
			}

			// 账单提醒
			reminderHandler := api.NewReminderHandler(deps.Reminders, deps.Users)
			reminders := authorized.Group("/reminders")
			{
				reminders.GET("", reminderHandler.List)
				reminders.POST("", reminderHandler.Create)
				reminders.PUT("/:id/paid", reminderHandler.MarkAsPaid)
				reminders.DELETE("/:id", reminderHandler.Delete)
				reminders.POST("/:id/test-email",
					middleware.RateLimit(middleware.ByUser, 5, 10*time.Minute, "测试邮件发送过于频繁，请稍后再试"),
					reminderHandler.SendTestEmail)
			}

			// 导出相关
			exportHandler := api.NewExportHandler(deps.Transactions)
			authorized.GET("/export/csv", exportHandler.ExportCSV)

			// 后台管理
			adminHandler := api.NewAdminHandler()
			admin := authorized.Group("/admin")
			admin.Use(middleware.AdminOnly(deps.Users))
			{
				admin.GET("/overview", adminHandler.Overview)
				admin.GET("/users", adminHandler.Users)
				admin.GET("/export/excel", adminHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
