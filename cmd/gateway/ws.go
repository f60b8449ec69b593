// In file: cmd/gateway/ws.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dileep-u-k/assistant-gateway/internal/logger"
)

const (
	wsReadLimit    = 8 << 10
	wsIdleTimeout  = 2 * time.Minute
	wsWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	HandshakeTimeout: 5 * time.Second,
	// Origins are already filtered by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket serves the streaming reply over a WebSocket. Each inbound
// frame is a chatRequest; the reply goes out as one JSON chunk frame per
// character followed by a done frame, and the next request is read only after
// the previous reply finished.
func (h *GatewayHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		return
	}
	defer conn.Close()

	log := logger.FromContext(c.Request.Context(), h.logger)
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		var req chatRequest
		if err := json.Unmarshal(raw, &req); err != nil || req.Message == nil {
			if werr := writeFrame(conn, gin.H{"type": "error", "error": "expected {\"message\": string}"}); werr != nil {
				return
			}
			continue
		}

		if err := h.streamToSocket(ctx, conn, *req.Message); err != nil {
			log.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (h *GatewayHandler) streamToSocket(ctx context.Context, conn *websocket.Conn, message string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for chunk := range h.orchestrator.RespondStream(ctx, message) {
		if err := writeFrame(conn, chunk); err != nil {
			return err
		}
	}
	return nil
}

func writeFrame(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(v)
}
