package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		level   string
		wantErr bool
	}{
		{"json", "info", false},
		{"text", "debug", false},
		{"", "warn", false},
		{"json", "none", false},
		{"json", "verbose", true},
		{"xml", "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.level, func(t *testing.T) {
			l, err := New(tt.format, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, l)
		})
	}
}

func TestNew_Level(t *testing.T) {
	l, err := New("json", "warn")
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_None(t *testing.T) {
	l, err := New("json", "none")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.FatalLevel))
}

func TestMust_Panics(t *testing.T) {
	assert.Panics(t, func() { Must("json", "loud") })
}
