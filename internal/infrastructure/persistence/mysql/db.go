package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，SQL日志输出到zap
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境打印全部SQL，其余模式只记录慢查询和错误
// 4. database.auto_migrate为true时才自动迁移，正式环境使用cmd/migrate
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:  newGormLogger(log, cfg.Server.Mode, cfg.Database.SlowThreshold),
		NowFunc: time.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
		log.Warn("已执行AutoMigrate，正式环境请改用cmd/migrate")
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(allModels()...)
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newGormLogger GORM日志适配到zap
func newGormLogger(log *zap.Logger, mode string, slow time.Duration) logger.Interface {
	level := logger.Warn
	if mode == "debug" {
		level = logger.Info
	}
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
