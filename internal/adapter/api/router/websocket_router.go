package router

import (
	"github.com/labstack/echo/v4"

	"motoride/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo) {
	wsHandler := handler.GetWebSocketHandler()
	e.GET("/ws/sessions/:sid", wsHandler.HandleWebSocket)
}
