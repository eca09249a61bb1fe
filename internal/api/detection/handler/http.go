package detectionHandler

import (
	detectionService "PoultryScan/internal/api/detection/service"
	"PoultryScan/internal/middleware"
	"PoultryScan/pkg/handlerUtil"
	"PoultryScan/pkg/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type DetectionHandler struct {
	log              *logrus.Logger
	middleware       middleware.Middleware
	detectionService detectionService.IDetectionService
	utils            utils.IUtils
	errHandler       *handlerUtil.ErrorHandler
	timeout          time.Duration
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	ds detectionService.IDetectionService,
	utils utils.IUtils,
	timeout time.Duration,
) *DetectionHandler {
	return &DetectionHandler{
		detectionService: ds,
		log:              log,
		middleware:       middleware,
		utils:            utils,
		errHandler:       handlerUtil.New(log),
		timeout:          timeout,
	}
}

func (h *DetectionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	srv.Post("/upload", h.Upload)

	srv.Use("/ws", wsMiddleware)
	srv.Get("/ws", websocket.New(h.handleWebSocket))
}
