package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置（与配置文件log段对应）
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// New 根据配置创建zap Logger，并替换全局Logger（zap.L()）
// 设计说明：
// 1. json格式使用生产环境编码器，console格式使用开发环境编码器（彩色级别）
// 2. 时间统一使用ISO8601，便于日志平台解析
// 3. 返回的Logger需要在程序退出前调用Sync()
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	var cfg zap.Config
	if opts.Format == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = !opts.EnableCaller

	output := opts.Output
	if output == "" {
		output = "stdout"
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	zap.ReplaceGlobals(l)
	return l, nil
}
