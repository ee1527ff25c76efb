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
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/user/nextflix/internal/config"
	"github.com/user/nextflix/internal/handler"
	"github.com/user/nextflix/internal/middleware"
	"github.com/user/nextflix/internal/model"
	"github.com/user/nextflix/internal/repository"
	"github.com/user/nextflix/internal/router"
	"github.com/user/nextflix/internal/utils"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()

	// 注册枚举校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("genre", model.GenreValidator)
		v.RegisterValidation("maturity", model.MaturityValidator)
	}

	// 初始化存储：配置了数据库走 Postgres，否则使用内存存储
	var repos *repository.Repositories
	if cfg.DatabaseURL != "" {
		db, err := repository.InitDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("数据库连接失败: %v", err)
		}
		sqlDB, _ := db.DB()
		defer sqlDB.Close()

		repos = repository.NewRepositories(db)
		log.Println("使用 Postgres 存储")
	} else {
		repos = repository.NewMemoryRepositories()
		repository.SeedAdmin(repos.User, cfg.AdminEmail, cfg.AdminPass)
		log.Println("未配置数据库，使用内存存储")
	}

	// 初始化缓存
	utils.InitCache()

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// 初始化 Handler 并注册路由
	h := handler.NewHandler(repos, cfg)
	router.RegisterRoutes(r, h)

	// 配置 HTTP 服务器
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Printf("%s API 启动于 http://localhost:%s", cfg.SiteName, cfg.Port)
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
