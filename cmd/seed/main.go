// seed 创建初始管理员和普通用户，已存在的用户名跳过
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	appuser "github.com/xiebiao/bookstore-api/internal/application/user"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/pkg/logger"
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

	db, err := mysql.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer func() { _ = mysql.Close(db) }()

	repo := mysql.NewUserRepository(db)
	seed := appuser.NewSeedUseCase(repo, user.NewService(repo), zl)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := seed.Execute(ctx, []appuser.SeedAccount{
		{Username: cfg.Seed.AdminUsername, Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword, Role: user.RoleAdmin},
		{Username: cfg.Seed.UserUsername, Email: cfg.Seed.UserEmail, Password: cfg.Seed.UserPassword, Role: user.RoleUser},
	})
	if err != nil {
		zl.Fatal("创建初始用户失败", zap.Error(err))
	}
	zl.Info("初始用户创建完成", zap.Int("created", created))
}
