package main

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/application"
	appuser "github.com/xiebiao/bookstore-api/internal/application/user"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/redis"
	grpcserver "github.com/xiebiao/bookstore-api/internal/interface/grpc"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
	"github.com/xiebiao/bookstore-api/pkg/logger"
	"github.com/xiebiao/bookstore-api/pkg/mq"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *Server
	GRPC   *grpcserver.HealthServer
}

// =========================================
// 自定义Provider：需要从Config提取参数或返回cleanup
// =========================================

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := mysql.Close(db); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}, nil
}

func provideSQLDB(db *gorm.DB) (*sql.DB, error) {
	return db.DB()
}

func provideRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(svc user.Service, tokens *jwt.Manager, sessions *redis.SessionStore, cfg *config.Config, log *zap.Logger) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(svc, tokens, sessions, cfg.JWT.RefreshTokenExpire, log)
}

func provideLogoutUseCase(sessions *redis.SessionStore) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(sessions)
}

func provideBookExister(books book.Repository) application.Exister {
	return books
}

func provideAuthMiddleware(tokens *jwt.Manager, sessions *redis.SessionStore, users user.Repository) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(tokens, sessions, users)
}

// provideEventPublisher mq.enabled=false时事件只写日志
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (order.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return messaging.NewNoopEventPublisher(log), func() {}, nil
	}
	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	return messaging.NewOrderEventPublisher(pub, log), func() {
		if err := pub.Close(); err != nil {
			log.Warn("关闭MQ连接失败", zap.Error(err))
		}
	}, nil
}

func provideHealthServer(db *sql.DB, log *zap.Logger) *grpcserver.HealthServer {
	return grpcserver.NewHealthServer(db, 0, log)
}
