package main

import (
	"PoultryScan/internal/config"
	"PoultryScan/pkg/log"
	"PoultryScan/pkg/overlay"
	"PoultryScan/pkg/yolo"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	env, err := config.LoadEnv(config.NewValidator())
	if err != nil {
		log.NewLogger(log.Config{Level: "info"}).Fatalf("Error loading environment: %v", err)
	}

	logger := log.NewLogger(log.Config{
		Env:   env.AppEnv,
		Level: env.LogLevel,
		Dir:   env.LogDir,
	})

	model, err := yolo.New(yolo.Config{
		ModelPath:         env.ModelPath,
		SharedLibraryPath: env.OnnxRuntimeLib,
		InputSize:         env.ModelInputSize,
		NumClasses:        env.ModelNumClasses,
		IOUThreshold:      env.IOUThreshold,
		PoolSize:          env.ModelPoolSize,
		IntraOpThreads:    env.ModelIntraOpThreads,
	}, logger)
	if err != nil {
		logger.Fatalf("Error loading model: %v", err)
	}
	defer model.Close()

	fiberApp := config.NewFiber(logger, env)

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithEnv(env),
		config.WithMiddleware(),
		config.WithDetector(model),
		config.WithRenderer(overlay.New()),
		config.WithUtils(),
	)
	if err != nil {
		model.Close()
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run()
	}()

	logger.Infof("Server started on port %s", env.AppPort)

	select {
	case <-sigChan:
		logger.Info("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			logger.Errorf("Error starting server: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), env.RequestTimeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error shutting down server: %v", err)
	}
}
