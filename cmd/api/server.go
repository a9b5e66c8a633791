package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
)

// Server HTTP服务，支持优雅关闭
type Server struct {
	srv    *http.Server
	cfg    config.ServerConfig
	logger *zap.Logger
}

// NewServer 包装Gin引擎
func NewServer(cfg *config.Config, engine *gin.Engine, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		cfg:    cfg.Server,
		logger: logger,
	}
}

// Run 阻塞直到ctx取消，然后在shutdown_timeout内等待进行中的请求结束
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP服务启动", zap.String("addr", s.srv.Addr), zap.String("mode", s.cfg.Mode))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("正在关闭HTTP服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
