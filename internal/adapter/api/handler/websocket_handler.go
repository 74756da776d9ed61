package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "motoride/internal/infrastructure/websocket"
	"motoride/internal/usecase"
	"motoride/pkg/errors"
	"motoride/pkg/logger"
	"motoride/pkg/response"
)

type WebSocketHandler struct {
	wsManager         *ws.Manager
	storefrontUseCase *usecase.StorefrontUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, storefrontUseCase *usecase.StorefrontUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:         wsManager,
		storefrontUseCase: storefrontUseCase,
	}
}

// HandleWebSocket streams payment events for the storefront session in the path.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	sessionID := c.Param("sid")
	if !h.storefrontUseCase.SessionExists(sessionID) {
		return response.Error(c, errors.NotFound("Session", nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the failure response.
		return nil
	}

	client := &ws.Client{
		SessionID: sessionID,
		Conn:      conn,
		Send:      make(chan []byte, 256),
	}
	if !h.wsManager.Add(client) {
		logger.Warn("websocket manager stopped, dropping connection for session %s", sessionID)
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
