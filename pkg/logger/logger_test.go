package logger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		wantErr bool
	}{
		{name: "json info", cfg: config.LogConfig{Level: "info", Format: "json"}},
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}},
		{name: "bad level", cfg: config.LogConfig{Level: "loud", Format: "json"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(&tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			_ = l.Sync()
		})
	}
}
