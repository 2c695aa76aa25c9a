package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"org_chart_go/internal/config"
	"org_chart_go/internal/handler"
	"org_chart_go/internal/middleware"
	"org_chart_go/internal/orgtree"
	"org_chart_go/internal/repository"
	"org_chart_go/internal/service"
	"org_chart_go/pkg/database"
	"org_chart_go/pkg/log"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv("ORGCHART_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	config.Init(configPath)
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	orgService, err := newOrgService(cfg)
	if err != nil {
		log.Fatal("Failed to build organization tree", err)
		return
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(cfg.Log.LogBodies), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	orgHandler := handler.NewOrgHandler(orgService)
	orgHandler.RegisterRoutes(r.Group("/api/v1/org"))

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}

// newOrgService 按 org.seed 选择初始组织树的来源。
func newOrgService(cfg config.Config) (service.OrgService, error) {
	switch cfg.Org.Seed {
	case config.SeedMySQL:
		mysqlCfg := cfg.Database.MySQL
		if err := database.InitMySQL(mysqlCfg.DSN, database.Options{
			MaxIdleConns:  mysqlCfg.MaxIdleConns,
			MaxOpenConns:  mysqlCfg.MaxOpenConns,
			SlowThreshold: time.Duration(mysqlCfg.SlowThresholdMs) * time.Millisecond,
		}); err != nil {
			return nil, err
		}
		if mysqlCfg.AutoMigrate {
			if err := database.RunMigrate(); err != nil {
				return nil, err
			}
		}
		return service.NewOrgServiceFromRepository(repository.NewEmployeeRepository(database.DB))
	default:
		editor, err := orgtree.New(orgtree.DemoTree(orgtree.NewIDGenerator()))
		if err != nil {
			return nil, err
		}
		log.Info("Using built-in demo organization tree")
		return service.NewOrgService(editor), nil
	}
}
