package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())

	out := filepath.Join(t.TempDir(), "app.log")
	l, err := New(Options{Level: "warn", Format: "json", Output: out})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.Same(t, l, zap.L())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "verbose", Format: "console"})
	assert.Error(t, err)
}
