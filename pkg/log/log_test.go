package log

import (
	contextPkg "PoultryScan/pkg/context"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	logger := NewLogger(Config{Env: "test", Level: "warn"})
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger = NewLogger(Config{Env: "test", Level: "not-a-level"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestErrorWithTraceID_UsesRequestID(t *testing.T) {
	logger, hook := test.NewNullLogger()

	traceID := ErrorWithTraceID(logger, Fields{RequestIDKey: "01HZX"}, "boom")

	assert.Equal(t, "01HZX", traceID)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "01HZX", hook.LastEntry().Data["trace_id"])
}

func TestErrorWithTraceID_GeneratesUUID(t *testing.T) {
	logger, hook := test.NewNullLogger()

	traceID := ErrorWithTraceID(logger, nil, "boom")

	assert.Len(t, traceID, 36)
	assert.Equal(t, traceID, hook.LastEntry().Data["trace_id"])
}

func TestWithRequestID(t *testing.T) {
	logger, _ := test.NewNullLogger()

	ctx := contextPkg.WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", WithRequestID(logger, ctx).Data[RequestIDKey])
	assert.Equal(t, "unknown", WithRequestID(logger, context.Background()).Data[RequestIDKey])
}
