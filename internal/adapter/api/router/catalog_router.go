package router

import (
	"github.com/labstack/echo/v4"

	"motoride/internal/adapter/api/handler"
)

func SetupCatalogRouter(e *echo.Echo) {
	catalogHandler := handler.GetCatalogHandler()

	e.GET("/external-catalog", catalogHandler.GetCatalog)
	e.GET("/external-catalog/search", catalogHandler.SearchCatalog)
}
