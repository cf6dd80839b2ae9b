package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	contextPkg "AdvisoryAssistant/pkg/context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func bufferLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l, &buf
}

func TestErrorWithTraceIDReusesRequestID(t *testing.T) {
	l, buf := bufferLogger()

	got := ErrorWithTraceID(l, Fields{"request_id": "01HZY3"}, "boom")
	if got != "01HZY3" {
		t.Errorf("expected request id as trace id, got %q", got)
	}
	if !strings.Contains(buf.String(), `"trace_id":"01HZY3"`) {
		t.Errorf("trace id missing from output: %s", buf.String())
	}
}

func TestErrorWithTraceIDGeneratesID(t *testing.T) {
	l, _ := bufferLogger()

	for _, fields := range []Fields{nil, {"request_id": "unknown"}} {
		got := ErrorWithTraceID(l, fields, "boom")
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("expected a uuid trace id, got %q", got)
		}
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	if got := levelFromEnv(); got != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", got)
	}

	t.Setenv("LOG_LEVEL", "nonsense")
	if got := levelFromEnv(); got != logrus.DebugLevel {
		t.Errorf("expected debug fallback, got %s", got)
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := contextPkg.WithRequestID(context.Background(), "req-1")
	if got := WithRequestID(ctx).Data["request_id"]; got != "req-1" {
		t.Errorf("unexpected request id %v", got)
	}
	if got := WithRequestID(context.Background()).Data["request_id"]; got != "unknown" {
		t.Errorf("unexpected request id %v", got)
	}
}
