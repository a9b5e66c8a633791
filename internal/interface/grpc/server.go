// Package grpc 编排探针用的gRPC服务：标准健康检查协议与反射
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName 健康检查中登记的服务名
const ServiceName = "bookstore.api"

// Pinger 依赖检查，*sql.DB实现
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer 根据数据库连通性更新服务状态
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	db       Pinger
	interval time.Duration
	logger   *zap.Logger
}

// NewHealthServer 创建gRPC服务并注册health与reflection
func NewHealthServer(db Pinger, interval time.Duration, logger *zap.Logger) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	s := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	return &HealthServer{server: s, health: hs, db: db, interval: interval, logger: logger}
}

// Check 立即检查一次数据库并更新状态
func (s *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("数据库不可用", zap.Error(err))
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// Serve 监听端口并阻塞，ctx取消时优雅停止
func (s *HealthServer) Serve(ctx context.Context, port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("监听gRPC端口失败: %w", err)
	}

	s.Check(ctx)
	go s.watch(ctx)
	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.server.GracefulStop()
	}()

	s.logger.Info("gRPC健康检查服务启动", zap.Int("port", port))
	return s.server.Serve(lis)
}

func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}
