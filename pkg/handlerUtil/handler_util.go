package handlerUtil

import (
	"PoultryScan/pkg/log"
	"PoultryScan/pkg/response"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Resolve maps err to the status code and body sent to the client.
func (h *ErrorHandler) Resolve(requestID string, err error, path string, operation string) (int, response.ErrorResponse) {
	fields := log.Fields{
		log.RequestIDKey: requestID,
		"error":          err.Error(),
		"path":           path,
		"operation":      operation,
	}

	if errors.Is(err, context.DeadlineExceeded) {
		h.logger.WithFields(fields).Warn("Request timed out")
		return fiber.StatusRequestTimeout, response.ErrorResponse{Error: utils.StatusMessage(fiber.StatusRequestTimeout)}
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		if respErr.IsServerError() {
			log.ErrorWithTraceID(h.logger, fields, "Operation failed with server error")
		} else {
			h.logger.WithFields(fields).Warn("Operation failed with error response")
		}
		return respErr.Code, response.ErrorResponse{Error: respErr.Error()}
	}

	log.ErrorWithTraceID(h.logger, fields, "Unexpected error")

	return fiber.StatusInternalServerError, response.ErrorResponse{Error: "An unexpected error occurred"}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	status, body := h.Resolve(requestID, err, path, operation)
	return c.Status(status).JSON(body)
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
