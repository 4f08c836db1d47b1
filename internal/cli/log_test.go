package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("compiled") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("container created") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("container created") }, true},
		{"warn at error level", log.ErrorLevel, func(l *log.Logger) { l.Warn("skipped constraint") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestDefaultLogLevel(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Setenv(envLogLevel, tt.env)
		if got := DefaultLogLevel(); got != tt.want {
			t.Errorf("DefaultLogLevel() with %q = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("compiled", "document", "form.json", "elements", 4)

	out := buf.String()
	for _, want := range []string{"compiled", "document=form.json", "elements=4", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output missing %q: %s", want, out)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	got.Info("attached")
	if !strings.Contains(buf.String(), "attached") {
		t.Error("attached logger should write to its buffer")
	}
}
