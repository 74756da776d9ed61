package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motoride/internal/usecase"
	"motoride/pkg/response"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

func (h *CatalogHandler) GetCatalog(c echo.Context) error {
	entries, err := h.catalogUseCase.List(c.Request().Context())
	if err != nil {
		return response.Plain(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *CatalogHandler) SearchCatalog(c echo.Context) error {
	entry, err := h.catalogUseCase.SearchByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return response.Plain(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}
