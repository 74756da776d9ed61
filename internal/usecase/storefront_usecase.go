package usecase

import (
	"context"
	stderrors "errors"

	"motoride/internal/domain/entity"
	"motoride/internal/storefront"
	"motoride/internal/storefront/browse"
	"motoride/internal/storefront/carousel"
	"motoride/internal/storefront/cart"
	"motoride/internal/storefront/checkout"
	"motoride/pkg/errors"
)

// StorefrontUseCase drives the per-visitor session state.
type StorefrontUseCase struct {
	sessions  *storefront.SessionStore
	aggregate *AggregateUseCase
}

func NewStorefrontUseCase(sessions *storefront.SessionStore, aggregate *AggregateUseCase) *StorefrontUseCase {
	return &StorefrontUseCase{
		sessions:  sessions,
		aggregate: aggregate,
	}
}

// BrowseFetcher adapts the listing use case to the browse state's fetch hook.
func BrowseFetcher(listings *ListingUseCase) browse.Fetcher {
	return browse.FetcherFunc(listings.Search)
}

type SessionInfo struct {
	ID string `json:"id"`
}

func (uc *StorefrontUseCase) CreateSession() SessionInfo {
	s := uc.sessions.Create()
	return SessionInfo{ID: s.ID}
}

func (uc *StorefrontUseCase) CloseSession(sessionID string) error {
	if err := uc.sessions.Delete(sessionID); err != nil {
		return errors.NotFound("Session", err)
	}
	return nil
}

func (uc *StorefrontUseCase) session(sessionID string) (*storefront.Session, error) {
	s, err := uc.sessions.Get(sessionID)
	if err != nil {
		return nil, errors.NotFound("Session", err)
	}
	return s, nil
}

type BrowseInput struct {
	Search string `query:"search"`
	Sort   string `query:"sort"`
	Page   int    `query:"page"`
}

func (uc *StorefrontUseCase) Browse(ctx context.Context, sessionID string, input BrowseInput) (*browse.View, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	key, err := entity.ParseSortKey(input.Sort)
	if err != nil {
		return nil, errors.BadRequest("Invalid sort parameter. Use newest, price or name", err)
	}

	view, err := s.Browse(ctx, input.Search, key, input.Page)
	if err != nil {
		return &view, storeFailure("Failed to fetch listings", err)
	}
	return &view, nil
}

type CarouselInput struct {
	Op      string `json:"op" validate:"required,oneof=next previous jump open close show"`
	Index   int    `json:"index"`
	Trigger string `json:"trigger" validate:"omitempty,oneof=button backdrop escape"`
}

func (uc *StorefrontUseCase) Carousel(ctx context.Context, sessionID, listingID string, input CarouselInput) (*storefront.CarouselView, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	trigger, err := carousel.ParseTrigger(input.Trigger)
	if err != nil {
		return nil, errors.BadRequest("Invalid close trigger", err)
	}
	listing, err := uc.aggregate.Lookup(ctx, listingID)
	if err != nil {
		return nil, err
	}

	view, err := s.ApplyCarousel(listing, storefront.CarouselOp(input.Op), input.Index, trigger)
	if err != nil {
		switch {
		case stderrors.Is(err, carousel.ErrNoImages):
			return nil, errors.Conflict("Listing has no images")
		case stderrors.Is(err, carousel.ErrOutOfRange):
			return nil, errors.BadRequest("Image index out of range", err)
		}
		return nil, errors.BadRequest("Invalid carousel operation", err)
	}
	return &view, nil
}

func cartError(err error) error {
	switch {
	case stderrors.Is(err, cart.ErrPriceUnavailable):
		return errors.Validation("Price not available")
	case stderrors.Is(err, cart.ErrNotInCart):
		return errors.NotFound("Cart item", err)
	case stderrors.Is(err, cart.ErrEmpty):
		return errors.BadRequest("Cart is empty", err)
	}
	return errors.Internal("Cart operation failed", err)
}

func (uc *StorefrontUseCase) Cart(sessionID string) (*cart.Totals, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	totals := s.Cart()
	return &totals, nil
}

type AddToCartInput struct {
	ListingID string `json:"listingId" validate:"required"`
}

func (uc *StorefrontUseCase) AddToCart(ctx context.Context, sessionID string, input AddToCartInput) (*cart.Totals, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	listing, err := uc.aggregate.Lookup(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	totals, err := s.AddToCart(listing)
	if err != nil {
		return nil, cartError(err)
	}
	return &totals, nil
}

type UpdateQuantityInput struct {
	Delta int `json:"delta" validate:"required"`
}

func (uc *StorefrontUseCase) UpdateCartQuantity(sessionID, listingID string, input UpdateQuantityInput) (*cart.Totals, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	totals, err := s.UpdateCartQuantity(listingID, input.Delta)
	if err != nil {
		return nil, cartError(err)
	}
	return &totals, nil
}

func (uc *StorefrontUseCase) RemoveFromCart(sessionID, listingID string) (*cart.Totals, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	totals, err := s.RemoveFromCart(listingID)
	if err != nil {
		return nil, cartError(err)
	}
	return &totals, nil
}

func (uc *StorefrontUseCase) CheckoutCart(sessionID string) (*cart.Totals, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	totals, err := s.CheckoutCart()
	if err != nil {
		return nil, cartError(err)
	}
	return &totals, nil
}

type OpenPaymentInput struct {
	ListingID string `json:"listingId" validate:"required"`
	Method    string `json:"method" validate:"omitempty,oneof=monthly full"`
}

func paymentError(err error) error {
	switch {
	case stderrors.Is(err, checkout.ErrNameRequired), stderrors.Is(err, checkout.ErrPriceUnavailable):
		return errors.Validation(err.Error())
	case stderrors.Is(err, checkout.ErrProcessing), stderrors.Is(err, storefront.ErrPaymentPending):
		return errors.Conflict("Payment is still processing")
	case stderrors.Is(err, checkout.ErrClosed):
		return errors.Conflict("Payment session is closed")
	case stderrors.Is(err, storefront.ErrNoPayment):
		return errors.NotFound("Payment session", err)
	}
	return errors.Internal("Payment failed", err)
}

func (uc *StorefrontUseCase) OpenPayment(ctx context.Context, sessionID string, input OpenPaymentInput) (*checkout.State, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	listing, err := uc.aggregate.Lookup(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	state, err := s.OpenPayment(*listing, entity.PaymentMethod(input.Method))
	if err != nil {
		return nil, paymentError(err)
	}
	return &state, nil
}

type SubmitPaymentInput struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Method  string `json:"method" validate:"omitempty,oneof=monthly full"`
}

// SubmitPayment validates the form and starts processing. A rejected form comes back as a
// validation error together with the session state.
func (uc *StorefrontUseCase) SubmitPayment(sessionID string, input SubmitPaymentInput) (*checkout.State, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	state, err := s.SubmitPayment(checkout.Form{
		Name:    input.Name,
		Contact: input.Contact,
		Method:  entity.PaymentMethod(input.Method),
	})
	if err != nil {
		return &state, paymentError(err)
	}
	return &state, nil
}

func (uc *StorefrontUseCase) Payment(sessionID string) (*checkout.State, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	state, err := s.Payment()
	if err != nil {
		return nil, paymentError(err)
	}
	return &state, nil
}

func (uc *StorefrontUseCase) Purchases(sessionID string) ([]entity.Purchase, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Purchases(), nil
}

// SessionExists is used by the websocket endpoint before upgrading.
func (uc *StorefrontUseCase) SessionExists(sessionID string) bool {
	_, err := uc.sessions.Get(sessionID)
	return err == nil
}
