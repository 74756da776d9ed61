package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoride/internal/adapter/catalog"
	"motoride/internal/domain/entity"
	"motoride/internal/storefront"
	"motoride/internal/storefront/checkout"
	apperrors "motoride/pkg/errors"
)

type staticIDs string

func (s staticIDs) NewReceiptID() string { return string(s) }

func newStorefront(t *testing.T, listings []entity.Listing) *StorefrontUseCase {
	t.Helper()
	repo := &memoryListingRepository{listings: listings}
	listingUC := NewListingUseCase(repo)
	store := storefront.NewSessionStore(BrowseFetcher(listingUC), storefront.StoreOptions{
		Payment: checkout.Options{Latency: time.Millisecond, IDs: staticIDs("RCPT-FIXED")},
	})
	return NewStorefrontUseCase(store, NewAggregateUseCase(repo, catalog.DefaultStaticSource()))
}

func withImages(l entity.Listing) entity.Listing {
	l.Front = entity.StringPtr("front.jpg")
	l.Back = entity.StringPtr("back.jpg")
	return l
}

func TestStorefrontUnknownSession(t *testing.T) {
	uc := newStorefront(t, nil)
	_, err := uc.Cart("nope")
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(uc.CloseSession("nope")))
	assert.False(t, uc.SessionExists("nope"))
}

func TestStorefrontBrowse(t *testing.T) {
	uc := newStorefront(t, fixtureListings())
	sid := uc.CreateSession().ID
	ctx := context.Background()

	view, err := uc.Browse(ctx, sid, BrowseInput{Sort: "price", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"moto-2", "moto-3", "moto-1"}, listingIDs(view.Items))

	_, err = uc.Browse(ctx, sid, BrowseInput{Sort: "rating"})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestStorefrontCarousel(t *testing.T) {
	listings := fixtureListings()
	listings[0] = withImages(listings[0])
	uc := newStorefront(t, listings)
	sid := uc.CreateSession().ID
	ctx := context.Background()

	view, err := uc.Carousel(ctx, sid, "moto-1", CarouselInput{Op: "previous"})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Index)
	assert.Equal(t, "Back View", view.Current.Label)

	_, err = uc.Carousel(ctx, sid, "moto-1", CarouselInput{Op: "jump", Index: 5})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	_, err = uc.Carousel(ctx, sid, "moto-2", CarouselInput{Op: "next"})
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err), "no images")

	view, err = uc.Carousel(ctx, sid, "MTR-001", CarouselInput{Op: "show"})
	require.NoError(t, err)
	assert.Len(t, view.Images, 1, "external entries have one image")
	assert.False(t, view.Controls)
}

func TestStorefrontCart(t *testing.T) {
	uc := newStorefront(t, fixtureListings())
	sid := uc.CreateSession().ID
	ctx := context.Background()

	totals, err := uc.AddToCart(ctx, sid, AddToCartInput{ListingID: "moto-1"})
	require.NoError(t, err)
	assert.Equal(t, 299.0, totals.Subtotal)

	_, err = uc.AddToCart(ctx, sid, AddToCartInput{ListingID: "MTR-001"})
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.StatusOf(err), "catalog entries are not priced")

	_, err = uc.UpdateCartQuantity(sid, "moto-9", UpdateQuantityInput{Delta: 1})
	assert.True(t, apperrors.IsNotFound(err))

	totals, err = uc.CheckoutCart(sid)
	require.NoError(t, err)
	assert.InDelta(t, 334.88, totals.Total, 0.001)

	_, err = uc.CheckoutCart(sid)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	_, err = uc.RemoveFromCart(sid, "moto-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStorefrontPayment(t *testing.T) {
	listings := fixtureListings()
	listings[0].FullyPaidPrice = entity.StringPtr("15000")
	listings[0].MonthlyPrice = nil
	uc := newStorefront(t, listings)
	sid := uc.CreateSession().ID
	ctx := context.Background()

	_, err := uc.Payment(sid)
	assert.True(t, apperrors.IsNotFound(err))

	state, err := uc.OpenPayment(ctx, sid, OpenPaymentInput{ListingID: "moto-1", Method: "monthly"})
	require.NoError(t, err)
	assert.Equal(t, "N/A", state.Price)

	state, err = uc.SubmitPayment(sid, SubmitPaymentInput{Name: "Ana"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.StatusOf(err))
	assert.Equal(t, checkout.StatusIdle, state.Status)
	assert.Equal(t, "Price not available for the selected option.", state.Message)

	_, err = uc.SubmitPayment(sid, SubmitPaymentInput{Name: "", Method: "full"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Please enter your name.", appErr.Message)

	_, err = uc.SubmitPayment(sid, SubmitPaymentInput{Name: "Ana", Method: "full"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		purchases, err := uc.Purchases(sid)
		return err == nil && len(purchases) == 1
	}, 2*time.Second, 5*time.Millisecond)

	purchases, _ := uc.Purchases(sid)
	assert.Equal(t, "RCPT-FIXED", purchases[0].ReceiptID)
	assert.Equal(t, entity.MethodFull, purchases[0].Method)

	require.Eventually(t, func() bool {
		state, err := uc.Payment(sid)
		return err == nil && state.Status == checkout.StatusCompleted
	}, 2*time.Second, 5*time.Millisecond)

	_, err = uc.SubmitPayment(sid, SubmitPaymentInput{Name: "Ana", Method: "full"})
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
}
