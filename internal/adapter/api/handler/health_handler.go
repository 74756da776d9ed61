package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"motoride/internal/usecase"
	"motoride/pkg/logger"
)

type HealthHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewHealthHandler(listingUseCase *usecase.ListingUseCase) *HealthHandler {
	return &HealthHandler{
		listingUseCase: listingUseCase,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckStoreHealth(c echo.Context) error {
	if err := h.listingUseCase.Ping(c.Request().Context()); err != nil {
		logger.Error("store health check failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "Store connection failed",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Store connected successfully",
	})
}
