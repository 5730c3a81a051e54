package handler

import (
	"zerah-finance/internal/adapter/events"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Events handles GET /api/v1/events, upgrading to the commit feed WebSocket.
// The upgrader writes its own HTTP error when the handshake fails.
func Events(hub *events.Hub, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := hub.ServeWS(c.Writer, c.Request); err != nil {
			log.Debug().Err(err).Str("client_ip", c.ClientIP()).Msg("websocket upgrade failed")
		}
	}
}
