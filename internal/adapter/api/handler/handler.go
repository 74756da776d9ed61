package handler

import (
	"motoride/internal/infrastructure/websocket"
	"motoride/internal/usecase"
)

var (
	listingHandler    *ListingHandler
	catalogHandler    *CatalogHandler
	storefrontHandler *StorefrontHandler
	healthHandler     *HealthHandler
	webSocketHandler  *WebSocketHandler
)

func Setup(
	listingUseCase *usecase.ListingUseCase,
	aggregateUseCase *usecase.AggregateUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	storefrontUseCase *usecase.StorefrontUseCase,
	wsManager *websocket.Manager,
) {
	listingHandler = NewListingHandler(listingUseCase, aggregateUseCase)
	catalogHandler = NewCatalogHandler(catalogUseCase)
	storefrontHandler = NewStorefrontHandler(storefrontUseCase)
	healthHandler = NewHealthHandler(listingUseCase)
	webSocketHandler = NewWebSocketHandler(wsManager, storefrontUseCase)
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetStorefrontHandler() *StorefrontHandler {
	return storefrontHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func GetWebSocketHandler() *WebSocketHandler {
	return webSocketHandler
}
