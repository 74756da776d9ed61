package handler

import (
	"github.com/labstack/echo/v4"

	"motoride/internal/usecase"
	"motoride/pkg/response"
	"motoride/pkg/utils"
)

type StorefrontHandler struct {
	storefrontUseCase *usecase.StorefrontUseCase
}

func NewStorefrontHandler(storefrontUseCase *usecase.StorefrontUseCase) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontUseCase: storefrontUseCase,
	}
}

func (h *StorefrontHandler) CreateSession(c echo.Context) error {
	return response.Created(c, h.storefrontUseCase.CreateSession())
}

func (h *StorefrontHandler) CloseSession(c echo.Context) error {
	if err := h.storefrontUseCase.CloseSession(c.Param("sid")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Session closed"})
}

func (h *StorefrontHandler) Browse(c echo.Context) error {
	view, err := h.storefrontUseCase.Browse(c.Request().Context(), c.Param("sid"), usecase.BrowseInput{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Page:   utils.PageParam(c),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, view)
}

func (h *StorefrontHandler) Carousel(c echo.Context) error {
	var req usecase.CarouselInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	view, err := h.storefrontUseCase.Carousel(c.Request().Context(), c.Param("sid"), c.Param("listingId"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, view)
}

func (h *StorefrontHandler) GetCart(c echo.Context) error {
	totals, err := h.storefrontUseCase.Cart(c.Param("sid"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, totals)
}

func (h *StorefrontHandler) AddToCart(c echo.Context) error {
	var req usecase.AddToCartInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	totals, err := h.storefrontUseCase.AddToCart(c.Request().Context(), c.Param("sid"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, totals)
}

func (h *StorefrontHandler) UpdateCartItem(c echo.Context) error {
	var req usecase.UpdateQuantityInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	totals, err := h.storefrontUseCase.UpdateCartQuantity(c.Param("sid"), c.Param("listingId"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, totals)
}

func (h *StorefrontHandler) RemoveCartItem(c echo.Context) error {
	totals, err := h.storefrontUseCase.RemoveFromCart(c.Param("sid"), c.Param("listingId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, totals)
}

func (h *StorefrontHandler) CheckoutCart(c echo.Context) error {
	totals, err := h.storefrontUseCase.CheckoutCart(c.Param("sid"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, totals)
}

func (h *StorefrontHandler) OpenPayment(c echo.Context) error {
	var req usecase.OpenPaymentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	state, err := h.storefrontUseCase.OpenPayment(c.Request().Context(), c.Param("sid"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, state)
}

// SubmitPayment answers 202 while the payment processes; completion arrives over the
// session websocket or by polling GetPayment.
func (h *StorefrontHandler) SubmitPayment(c echo.Context) error {
	var req usecase.SubmitPaymentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	state, err := h.storefrontUseCase.SubmitPayment(c.Param("sid"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Accepted(c, state)
}

func (h *StorefrontHandler) GetPayment(c echo.Context) error {
	state, err := h.storefrontUseCase.Payment(c.Param("sid"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, state)
}

func (h *StorefrontHandler) GetPurchases(c echo.Context) error {
	purchases, err := h.storefrontUseCase.Purchases(c.Param("sid"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, purchases)
}
