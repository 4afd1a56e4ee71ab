package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/user/filmfolio/internal/config"
	"github.com/user/filmfolio/internal/handler"
	"github.com/user/filmfolio/internal/middleware"
	"github.com/user/filmfolio/internal/model"
	"github.com/user/filmfolio/internal/repository"
	"github.com/user/filmfolio/internal/router"
	"github.com/user/filmfolio/internal/service"
	"github.com/user/filmfolio/internal/settings"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置（ADMIN_PASSWORD 缺失直接拒绝启动）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 初始化数据库，句柄由这里显式持有并注入，生命周期与进程一致
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	defer db.Close()

	// 初始化仓库
	repos := repository.NewRepositories(db)

	// 初始化对象存储（可选，未配置时上传接口不可用）
	var uploader *service.Uploader
	if cfg.StorageConfigured() {
		uploader, err = service.NewUploader(cfg)
		if err != nil {
			log.Fatalf("对象存储初始化失败: %v", err)
		}
	} else {
		log.Println("未配置对象存储，上传功能不可用")
	}

	// 初始化设置存储
	settingsStore := settings.NewStore(cfg.DataDir)

	// 注册业务校验规则
	model.RegisterValidators()

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 设置 Session 中间件
	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   middleware.SessionMaxAge, // 24 小时
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("filmfolio", store))

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.Security())
	r.Use(middleware.CORS())

	// 初始化 Handler
	h, err := handler.NewHandler(repos, cfg, uploader, settingsStore)
	if err != nil {
		log.Fatalf("处理器初始化失败: %v", err)
	}

	// 注册路由
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
		// 视频上传可能持续很久，只限制头部读取时间
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Printf("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}
