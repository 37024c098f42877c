package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kariua-parish/parish-site/internal/common/constants"
	"github.com/kariua-parish/parish-site/internal/common/logger"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "parish", "warn")

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %s", out)
	}
	if !strings.Contains(out, "[WARN") || !strings.Contains(out, "[parish]") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output: %s", out)
	}
	if log.ShouldLog(logger.DEBUG) {
		t.Error("debug should be disabled at warn level")
	}
}

func TestLogger_WithFieldsAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "parish", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "trace-42")
	log.WithFields(ctx, logger.Fields{"b": 2, "a": 1}).Info("with fields")

	out := buf.String()
	if !strings.Contains(out, "trace_id=trace-42 a=1 b=2") {
		t.Errorf("expected sorted fields after trace id, got: %s", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Errorf("expected caller to be the test file, got: %s", out)
	}
}
