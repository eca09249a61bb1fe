package config

import (
	"PoultryScan/pkg/utils"
	"PoultryScan/pkg/yolo"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Env struct {
	AppEnv   string `validate:"required,oneof=development production test"`
	AppPort  string `validate:"required,numeric"`
	LogLevel string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	LogDir   string

	ModelPath           string  `validate:"required"`
	OnnxRuntimeLib      string  `validate:"required"`
	ConfidenceThreshold float64 `validate:"gte=0,lte=1"`
	IOUThreshold        float64 `validate:"gt=0,lte=1"`
	ModelInputSize      int     `validate:"gte=32"`
	ModelNumClasses     int     `validate:"gte=1"`
	ModelPoolSize       int     `validate:"gte=1"`
	ModelIntraOpThreads int     `validate:"gte=0"`
	MaxImagePixels      int     `validate:"gte=1"`

	BodyLimitMB    int           `validate:"gte=1"`
	RequestTimeout time.Duration `validate:"gt=0"`
	RateLimitRPS   float64       `validate:"gte=0"`
	RateLimitBurst int           `validate:"gte=1"`
}

// LoadEnv reads an optional .env file and the process environment.
func LoadEnv(validate *validator.Validate, files ...string) (*Env, error) {
	_ = godotenv.Load(files...)

	env := &Env{
		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "5000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", "logs"),

		ModelPath:      getEnv("MODEL_PATH", "best.onnx"),
		OnnxRuntimeLib: getEnv("ONNXRUNTIME_LIB", yolo.DefaultSharedLibraryPath()),
	}

	var err error
	if env.ConfidenceThreshold, err = getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.2); err != nil {
		return nil, err
	}
	if env.IOUThreshold, err = getEnvAsFloat("IOU_THRESHOLD", 0.7); err != nil {
		return nil, err
	}
	if env.ModelInputSize, err = getEnvAsInt("MODEL_INPUT_SIZE", 640); err != nil {
		return nil, err
	}
	if env.ModelNumClasses, err = getEnvAsInt("MODEL_NUM_CLASSES", 3); err != nil {
		return nil, err
	}
	if env.ModelPoolSize, err = getEnvAsInt("MODEL_POOL_SIZE", 1); err != nil {
		return nil, err
	}
	if env.ModelIntraOpThreads, err = getEnvAsInt("MODEL_INTRA_OP_THREADS", 0); err != nil {
		return nil, err
	}
	if env.MaxImagePixels, err = getEnvAsInt("MAX_IMAGE_PIXELS", utils.DefaultMaxImagePixels); err != nil {
		return nil, err
	}
	if env.BodyLimitMB, err = getEnvAsInt("BODY_LIMIT_MB", 50); err != nil {
		return nil, err
	}
	if env.RequestTimeout, err = getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if env.RateLimitRPS, err = getEnvAsFloat("RATE_LIMIT_RPS", 0); err != nil {
		return nil, err
	}
	if env.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}

	if err := validate.Struct(env); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	return env, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return parsed, nil
}
