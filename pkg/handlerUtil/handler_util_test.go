package handlerUtil

import (
	"PoultryScan/pkg/response"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errNoFilePart     = response.NewError(http.StatusBadRequest, "No file part")
	errNoSelectedFile = response.NewError(http.StatusBadRequest, "No selected file")
	errInference      = response.NewError(http.StatusInternalServerError, "failed to run detection")
	errEncodeImage    = response.NewError(http.StatusInternalServerError, "failed to encode image")
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
		level  logrus.Level
	}{
		{"client error", errNoFilePart, 400, "No file part", logrus.WarnLevel},
		{"wrapped server error", response.Wrap(errInference, errors.New("boom")), 500, "failed to run detection", logrus.ErrorLevel},
		{"deadline", fmt.Errorf("acquire: %w", context.DeadlineExceeded), 408, "Request Timeout", logrus.WarnLevel},
		{"unknown", errors.New("mystery"), 500, "An unexpected error occurred", logrus.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			h := New(logger)

			status, body := h.Resolve("req-1", tc.err, "/upload", "detect")

			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.body, body.Error)
			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, tc.level, hook.LastEntry().Level)
			assert.Equal(t, "req-1", hook.LastEntry().Data["request_id"])
		})
	}
}

func TestResolve_ServerErrorCarriesTraceID(t *testing.T) {
	logger, hook := test.NewNullLogger()

	New(logger).Resolve("unknown", errEncodeImage, "/upload", "detect")

	traceID, ok := hook.LastEntry().Data["trace_id"].(string)
	require.True(t, ok)
	assert.Len(t, traceID, 36)
}

func TestHandle_WritesJSON(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := New(logger)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return h.Handle(c, "r", errNoSelectedFile, c.Path(), "test")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.JSONEq(t, `{"error":"No selected file"}`, string(body))
}
