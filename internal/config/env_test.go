package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("ONNXRUNTIME_LIB", "/opt/onnxruntime/libonnxruntime.so")
}

func TestLoadEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	env, err := LoadEnv(NewValidator(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5000", env.AppPort)
	assert.Equal(t, "best.onnx", env.ModelPath)
	assert.Equal(t, 0.2, env.ConfidenceThreshold)
	assert.Equal(t, 0.7, env.IOUThreshold)
	assert.Equal(t, 640, env.ModelInputSize)
	assert.Equal(t, 3, env.ModelNumClasses)
	assert.Equal(t, 1, env.ModelPoolSize)
	assert.Zero(t, env.ModelIntraOpThreads)
	assert.Equal(t, 178956970, env.MaxImagePixels)
	assert.Equal(t, 50, env.BodyLimitMB)
	assert.Equal(t, 30*time.Second, env.RequestTimeout)
	assert.Zero(t, env.RateLimitRPS)
	assert.Equal(t, 20, env.RateLimitBurst)
}

func TestLoadEnv_FromFile(t *testing.T) {
	setRequiredEnv(t)
	for _, key := range []string{"MODEL_POOL_SIZE", "REQUEST_TIMEOUT", "MODEL_INTRA_OP_THREADS"} {
		// Setenv restores the previous value on cleanup; godotenv only fills unset keys.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MODEL_POOL_SIZE=4\nREQUEST_TIMEOUT=5s\nMODEL_INTRA_OP_THREADS=2\n"), 0o600))

	env, err := LoadEnv(NewValidator(), path)
	require.NoError(t, err)

	assert.Equal(t, 4, env.ModelPoolSize)
	assert.Equal(t, 5*time.Second, env.RequestTimeout)
	assert.Equal(t, 2, env.ModelIntraOpThreads)
}

func TestLoadEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"confidence above one", "CONFIDENCE_THRESHOLD", "1.5"},
		{"negative confidence", "CONFIDENCE_THRESHOLD", "-0.1"},
		{"confidence not a number", "CONFIDENCE_THRESHOLD", "high"},
		{"zero pool", "MODEL_POOL_SIZE", "0"},
		{"negative intra op threads", "MODEL_INTRA_OP_THREADS", "-1"},
		{"zero pixel cap", "MAX_IMAGE_PIXELS", "0"},
		{"bad timeout", "REQUEST_TIMEOUT", "soon"},
		{"unknown app env", "APP_ENV", "staging"},
		{"port not numeric", "APP_PORT", "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadEnv(NewValidator(), filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
