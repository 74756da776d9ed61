package router

import (
	"github.com/labstack/echo/v4"

	"motoride/internal/adapter/api/handler"
)

func SetupListingRouter(e *echo.Echo) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/listings")
	listings.GET("", listingHandler.ListListings)
	listings.GET("/featured", listingHandler.GetFeatured)
	listings.GET("/merged", listingHandler.GetMerged)
	listings.GET("/external/:id", listingHandler.GetExternalListing)
	listings.GET("/lookup/:id", listingHandler.LookupListing)
	listings.GET("/:id", listingHandler.GetListing)
}
