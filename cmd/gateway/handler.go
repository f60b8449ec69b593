// In file: cmd/gateway/handler.go
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dileep-u-k/assistant-gateway/internal/logger"
	"github.com/dileep-u-k/assistant-gateway/internal/orchestrator"
	"github.com/dileep-u-k/assistant-gateway/internal/tools"
	compversion "github.com/dileep-u-k/assistant-gateway/internal/version"
)

// chatRequest is the body of both chat endpoints. Message is a pointer so an
// empty string is accepted (it gets the help reply) while a missing field is not.
type chatRequest struct {
	Message *string `json:"message" binding:"required"`
}

type invokeRequest struct {
	Domain    string     `json:"domain" binding:"required"`
	Tool      string     `json:"tool" binding:"required"`
	Arguments tools.Args `json:"arguments"`
}

type GatewayHandler struct {
	orchestrator *orchestrator.Orchestrator
	invoker      *tools.Invoker
	logger       *zap.Logger
}

func NewGatewayHandler(orch *orchestrator.Orchestrator, invoker *tools.Invoker, log *zap.Logger) *GatewayHandler {
	return &GatewayHandler{
		orchestrator: orch,
		invoker:      invoker,
		logger:       logger.OrNop(log),
	}
}

func (h *GatewayHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AI Engine is running"})
}

func (h *GatewayHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *GatewayHandler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"build":      GetBuildInfo(),
		"components": compversion.ComponentVersions,
		"summary":    compversion.Summary(),
	})
}

// HandleMessage returns the whole reply in one response.
func (h *GatewayHandler) HandleMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reply := h.orchestrator.Respond(c.Request.Context(), *req.Message)
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// HandleStream replays the reply as server-sent events: one {"type":"token"}
// event per character, then {"type":"done"}. A client disconnect cancels the
// request context, which stops the producer.
func (h *GatewayHandler) HandleStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	chunks := h.orchestrator.RespondStream(c.Request.Context(), *req.Message)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	for chunk := range chunks {
		c.SSEvent("", chunk)
		c.Writer.Flush()
	}
}

// HandleListTools returns every domain's tool descriptors.
func (h *GatewayHandler) HandleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"domains": h.invoker.Catalog()})
}

// HandleInvokeTool exposes the tool boundary directly. Tool failures are not
// HTTP failures: the envelope is returned with 200 either way.
func (h *GatewayHandler) HandleInvokeTool(c *gin.Context) {
	var req invokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	res := h.invoker.Invoke(c.Request.Context(), req.Domain, req.Tool, req.Arguments)
	c.JSON(http.StatusOK, res)
}
