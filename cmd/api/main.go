package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
	"github.com/xiebiao/bookstore-api/pkg/tracing"
)

// @title                      Bookstore API
// @version                    1.0
// @description                图书目录、版本、作者、出版社与订单管理接口
// @host                       localhost:8080
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Bearer <access_token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.InitMetrics()

	app, cleanup, err := InitializeApp(ctx, cfg)
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer cleanup()
	logger := app.Logger

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			logger.Warn("追踪初始化失败，继续运行", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("关闭TracerProvider失败", zap.Error(err))
				}
			}()
		}
	}

	if cfg.Server.GRPCPort > 0 {
		go func() {
			if err := app.GRPC.Serve(ctx, cfg.Server.GRPCPort); err != nil {
				logger.Error("gRPC服务异常退出", zap.Error(err))
			}
		}()
	}

	if err := app.HTTP.Run(ctx); err != nil {
		logger.Error("HTTP服务异常退出", zap.Error(err))
		return
	}
	logger.Info("服务已关闭")
}
