package handlers

import (
	"github.com/gin-gonic/gin"
)

// StreamHandler serves the server-sent events endpoint.
type StreamHandler struct{}

// NewStreamHandler creates a new instance of StreamHandler.
func NewStreamHandler() *StreamHandler {
	return &StreamHandler{}
}

// Stream handles GET /api/v1/stream. Emits a single connection event; clients
// reconnect via standard EventSource retry behavior.
func (h *StreamHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("message", gin.H{"message": "Connected to event stream"})
	c.Writer.Flush()
}
