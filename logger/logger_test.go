// SPDX-License-Identifier: EPL-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_ConsoleJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	log, err := New(Config{Level: DebugLevel, Console: &out})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug("cut", zap.String("track", "drums"))
	_ = log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(out.Bytes(), &entry); err != nil {
		t.Fatalf("console output is not JSON: %q", out.String())
	}
	if entry["msg"] != "cut" || entry["level"] != "debug" || entry["track"] != "drums" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		want  zapcore.Level
	}{
		{level: DebugLevel, want: zapcore.DebugLevel},
		{level: InfoLevel, want: zapcore.InfoLevel},
		{level: WarnLevel, want: zapcore.WarnLevel},
		{level: ErrorLevel, want: zapcore.ErrorLevel},
		{level: "verbose", want: zapcore.InfoLevel},
		{level: "", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		log, err := New(Config{Level: tt.level, Console: &bytes.Buffer{}})
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.level, err)
		}
		if !log.Core().Enabled(tt.want) || (tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1)) {
			t.Errorf("level %q does not enable exactly %s and above", tt.level, tt.want)
		}
	}
}

func TestNew_RotatedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "wavedit.log")
	log, err := New(Config{Level: InfoLevel, Console: &bytes.Buffer{}, OutputPath: path, MaxSize: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Info("rendered", zap.Int("frames", 44100))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"rendered"`) {
		t.Errorf("log file = %q", data)
	}
}
