package logging_test

import (
	"testing"

	"github.com/dom/hero-draft-assistant/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{name: "default level", env: "production", enabled: zapcore.InfoLevel},
		{name: "debug in development", env: "development", level: "debug", enabled: zapcore.DebugLevel},
		{name: "warn", env: "production", level: "warn", enabled: zapcore.WarnLevel},
		{name: "garbage", env: "production", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logging.New(tt.env, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.enabled-1))
		})
	}
}
