package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/itohio/gogurdy/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		want    zapcore.Level
		wantErr bool
	}{
		{name: "empty level", cfg: config.LogConfig{}, want: zapcore.InfoLevel},
		{name: "debug", cfg: config.LogConfig{Level: "debug"}, want: zapcore.DebugLevel},
		{name: "warn development", cfg: config.LogConfig{Level: "warn", Development: true}, want: zapcore.WarnLevel},
		{name: "bogus", cfg: config.LogConfig{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.want))
			assert.False(t, l.Core().Enabled(tt.want-1))
		})
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gurdy.log")

	l, err := New(config.LogConfig{Level: "info", File: path})
	require.NoError(t, err)

	l.Info("hello")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.FatalLevel))
}
