package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/events"
	"expensetracker/middleware"
	"expensetracker/router"
	"expensetracker/service"

	"github.com/joho/godotenv"
)

// @title 个人记账 API
// @version 1.0
// @description 收支记录、仪表盘统计、账单提醒与邮件通知
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("ExpenseTracker v1.0.0")
		return
	}

	// .env 可选，用于本地开发注入 EXPENSETRACKER_* 环境变量
	if err := godotenv.Load(); err == nil {
		log.Println("已加载 .env")
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	middleware.InitJWT(cfg)

	// 邮件通道
	transport, err := service.NewTransport(&cfg.Email)
	if err != nil {
		log.Fatalf("邮件通道初始化失败: %v", err)
	}
	if closer, ok := transport.(io.Closer); ok {
		defer closer.Close()
	}
	notifier := service.NewNotifier(transport, service.SenderAddress(&cfg.Email))

	bus := events.NewBus()
	r := router.SetupRouter(cfg, router.NewDependencies(database.DB, bus, notifier))

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("==========================================")
	log.Printf("  💰 ExpenseTracker 已启动")
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Printf("==========================================")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("收到信号 %s，正在关闭服务...", sig)

	// SSE 长连接不会自行结束，超时后强制关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("服务关闭超时: %v", err)
	}
}
