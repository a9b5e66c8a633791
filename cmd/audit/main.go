// audit 订阅订单事件并写入审计日志
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
	"github.com/xiebiao/bookstore-api/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	zl, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if !cfg.MQ.Enabled {
		zl.Warn("mq.enabled=false，审计消费者不启动")
		return
	}
	metrics.InitMetrics()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.AuditQueue, messaging.AuditRoutingKeys, zl)
	if err != nil {
		zl.Fatal("创建消费者失败", zap.Error(err))
	}
	defer func() { _ = consumer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zl.Info("审计消费者启动", zap.String("queue", consumer.Queue()))
	if err := consumer.Consume(ctx, messaging.NewOrderAuditHandler(consumer.Queue(), zl)); err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("消费异常退出", zap.Error(err))
	}
	zl.Info("审计消费者已停止")
}
