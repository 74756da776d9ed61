package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motoride/internal/usecase"
	"motoride/pkg/response"
)

// ListingHandler serves the read-only listing routes. Errors use the bare {error, details}
// body the storefront pages expect.
type ListingHandler struct {
	listingUseCase   *usecase.ListingUseCase
	aggregateUseCase *usecase.AggregateUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase, aggregateUseCase *usecase.AggregateUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase:   listingUseCase,
		aggregateUseCase: aggregateUseCase,
	}
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	listings, err := h.listingUseCase.ListListings(c.Request().Context(), usecase.ListingQuery{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
	})
	if err != nil {
		return response.Plain(c, err)
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) GetFeatured(c echo.Context) error {
	listings, err := h.listingUseCase.Featured(c.Request().Context())
	if err != nil {
		return response.Plain(c, err)
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) GetMerged(c echo.Context) error {
	listings, err := h.aggregateUseCase.MergeAll(c.Request().Context())
	if err != nil {
		return response.Plain(c, err)
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Plain(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) GetExternalListing(c echo.Context) error {
	listing, err := h.aggregateUseCase.External(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Plain(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) LookupListing(c echo.Context) error {
	listing, err := h.aggregateUseCase.Lookup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Plain(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}
