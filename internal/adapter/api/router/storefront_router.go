package router

import (
	"github.com/labstack/echo/v4"

	"motoride/internal/adapter/api/handler"
)

func SetupStorefrontRouter(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	storefrontHandler := handler.GetStorefrontHandler()

	sessions := e.Group("/sessions", mw...)
	sessions.POST("", storefrontHandler.CreateSession)
	sessions.DELETE("/:sid", storefrontHandler.CloseSession)
	sessions.GET("/:sid/browse", storefrontHandler.Browse)
	sessions.POST("/:sid/carousels/:listingId", storefrontHandler.Carousel)

	cart := sessions.Group("/:sid/cart")
	cart.GET("", storefrontHandler.GetCart)
	cart.POST("/items", storefrontHandler.AddToCart)
	cart.PATCH("/items/:listingId", storefrontHandler.UpdateCartItem)
	cart.DELETE("/items/:listingId", storefrontHandler.RemoveCartItem)
	cart.POST("/checkout", storefrontHandler.CheckoutCart)

	payment := sessions.Group("/:sid/payment")
	payment.POST("", storefrontHandler.OpenPayment)
	payment.POST("/submit", storefrontHandler.SubmitPayment)
	payment.GET("", storefrontHandler.GetPayment)

	sessions.GET("/:sid/purchases", storefrontHandler.GetPurchases)
}
