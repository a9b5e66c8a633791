package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadFrom(t *testing.T) {
	t.Run("读取YAML并补齐默认值", func(t *testing.T) {
		dir := writeConfig(t, `
server:
  port: 9000
  mode: test
database:
  dbname: bookstore_test
jwt:
  secret: unit-test-secret
`)
		cfg, err := LoadFrom(dir)
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "test", cfg.Server.Mode)
		assert.Equal(t, "bookstore_test", cfg.Database.DBName)
		assert.Equal(t, 3306, cfg.Database.Port)
		assert.Equal(t, time.Hour, cfg.JWT.AccessTokenExpire)
		assert.Equal(t, "admin", cfg.Seed.AdminUsername)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		dir := writeConfig(t, "server:\n  port: 9000\n")
		t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "from-env")
		t.Setenv("BOOKSTORE_SERVER_PORT", "9100")

		cfg, err := LoadFrom(dir)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Database.Password)
		assert.Equal(t, 9100, cfg.Server.Port)
	})

	t.Run("没有配置文件时使用默认值", func(t *testing.T) {
		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "bookstore.orders", cfg.MQ.Exchange)
	})

	t.Run("release模式禁止默认密钥", func(t *testing.T) {
		dir := writeConfig(t, "server:\n  mode: release\n")
		_, err := LoadFrom(dir)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080, Mode: "debug", RateLimit: 10, RateBurst: 20},
			JWT:     JWTConfig{Secret: "s", AccessTokenExpire: time.Minute},
			Tracing: TracingConfig{SampleRatio: 1},
		}
	}
	require.NoError(t, validate(valid()))

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"端口非法", func(c *Config) { c.Server.Port = 0 }},
		{"gRPC端口冲突", func(c *Config) { c.Server.GRPCPort = 8080 }},
		{"未知模式", func(c *Config) { c.Server.Mode = "prod" }},
		{"空密钥", func(c *Config) { c.JWT.Secret = "" }},
		{"过期时间非法", func(c *Config) { c.JWT.AccessTokenExpire = 0 }},
		{"限流burst非法", func(c *Config) { c.Server.RateBurst = 0 }},
		{"采样率越界", func(c *Config) { c.Tracing.SampleRatio = 1.5 }},
		{"mq缺少url", func(c *Config) { c.MQ.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, validate(c))
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 3306, User: "root", Password: "pw", DBName: "bookstore",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "root:pw@tcp(db:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
	assert.Equal(t, ":8080", ServerConfig{Port: 8080}.Addr())
}
