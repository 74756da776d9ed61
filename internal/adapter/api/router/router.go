package router

import (
	"github.com/labstack/echo/v4"
)

// Setup registers every route group. storefrontMiddleware is applied to the session API.
func Setup(e *echo.Echo, storefrontMiddleware ...echo.MiddlewareFunc) {
	SetupListingRouter(e)
	SetupCatalogRouter(e)
	SetupStorefrontRouter(e, storefrontMiddleware...)
	SetupWebSocketRouter(e)
	SetupHealthRouter(e)
}
