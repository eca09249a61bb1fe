package config

import (
	detectionHandler "PoultryScan/internal/api/detection/handler"
	detectionService "PoultryScan/internal/api/detection/service"
	"PoultryScan/internal/middleware"
	"PoultryScan/pkg/overlay"
	"PoultryScan/pkg/utils"
	"PoultryScan/pkg/yolo"
	"PoultryScan/web"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type ServerOption func(*Server) error

type Server struct {
	engine     *fiber.App
	log        *logrus.Logger
	env        *Env
	middleware middleware.Middleware
	utils      utils.IUtils
	detector   yolo.IDetector
	renderer   overlay.IRenderer
	handlers   []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.env == nil {
		return nil, fmt.Errorf("environment is required")
	}
	if server.detector == nil {
		return nil, fmt.Errorf("detector is required")
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, middleware.Config{})
	}
	if server.renderer == nil {
		server.renderer = overlay.New()
	}
	if server.utils == nil {
		server.utils = utils.New(utils.WithMaxImagePixels(server.env.MaxImagePixels))
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithEnv(env *Env) ServerOption {
	return func(s *Server) error {
		s.env = env
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.env == nil {
			return fmt.Errorf("environment must be loaded before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.Config{
			RateLimit: rate.Limit(s.env.RateLimitRPS),
			Burst:     s.env.RateLimitBurst,
		})
		return nil
	}
}

func WithDetector(detector yolo.IDetector) ServerOption {
	return func(s *Server) error {
		s.detector = detector
		return nil
	}
}

func WithRenderer(renderer overlay.IRenderer) ServerOption {
	return func(s *Server) error {
		s.renderer = renderer
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		if s.env == nil {
			return fmt.Errorf("environment must be loaded before utils")
		}
		s.utils = utils.New(utils.WithMaxImagePixels(s.env.MaxImagePixels))
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)
	s.engine.Use(s.middleware.NewRateLimiter)

	// Detection
	detectionServices := detectionService.NewDetectionService(s.log, s.detector, s.renderer, s.utils, s.env.ConfidenceThreshold)
	detectionHandlers := detectionHandler.New(s.log, s.middleware, detectionServices, s.utils, s.env.RequestTimeout)

	s.setupIndexPage()
	s.setupHealthCheck()
	s.handlers = append(s.handlers, detectionHandlers)

	for _, h := range s.handlers {
		h.Start(s.engine)
	}
}

func (s *Server) Run() error {
	return s.engine.Listen(fmt.Sprintf(":%s", s.env.AppPort))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.engine.ShutdownWithContext(ctx)
}

func (s *Server) setupIndexPage() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.Send(web.IndexPage)
	})
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
