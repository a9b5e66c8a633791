package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
)

const pingTimeout = 3 * time.Second

// Options 黑名单只用到单键读写，连接池按配置，零值交给go-redis默认
func Options(rc config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         rc.Addr(),
		Password:     rc.Password,
		DB:           rc.DB,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
	}
}

// NewClient 创建客户端，启动时Ping不通直接失败
func NewClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg.Redis))

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败(%s): %w", cfg.Redis.Addr(), err)
	}

	log.Info("Redis连接成功", zap.String("addr", cfg.Redis.Addr()), zap.Int("db", cfg.Redis.DB))
	return client, nil
}
