package detectionHandler

import (
	"PoultryScan/internal/api/detection"
	contextPkg "PoultryScan/pkg/context"
	"PoultryScan/pkg/response"
	"context"
	"time"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
)

const (
	maxReadTimeout  = 60 * time.Second
	maxWriteTimeout = 10 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (h *DetectionHandler) handleWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals("X-Request-ID").(string)
	logger := h.log.WithField("request_id", requestID)

	logger.Info("Detection WebSocket client connected")
	defer logger.Info("Detection WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		logger.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			logger.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			logger.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("Detection WebSocket error: %v", err)
			} else {
				logger.Info("Detection WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			logger.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		payload := h.processFrame(requestID, message)

		if err := c.SetWriteDeadline(time.Now().Add(maxWriteTimeout)); err != nil {
			logger.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			logger.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}

// processFrame runs one frame through detection and returns the JSON reply,
// either the upload payload or an error object.
func (h *DetectionHandler) processFrame(requestID string, frame []byte) []byte {
	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), h.timeout)
	defer cancel()

	var reply any
	res, err := h.detectionService.ProcessFrame(ctx, frame)
	if err != nil {
		_, body := h.errHandler.Resolve(requestID, err, "/ws", "process_frame")
		reply = body
	} else {
		reply = res
	}

	payload, err := json.Marshal(reply)
	if err != nil {
		h.log.WithField("request_id", requestID).Errorf("Error marshalling frame reply: %v", err)
		payload, _ = json.Marshal(response.ErrorResponse{Error: detection.ErrInternalServerError.Error()})
	}
	return payload
}
