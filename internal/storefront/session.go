// Package storefront owns the per-visitor transient state: the browse view, open
// carousels, the cart, the payment modal and the purchases made so far.
package storefront

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"motoride/internal/domain/entity"
	"motoride/internal/storefront/browse"
	"motoride/internal/storefront/carousel"
	"motoride/internal/storefront/cart"
	"motoride/internal/storefront/checkout"
)

var (
	ErrNoPayment      = errors.New("no payment session open")
	ErrPaymentPending = errors.New("a payment is still processing")
)

// Notifier receives payment events for a storefront session.
type Notifier interface {
	Publish(sessionID string, event checkout.Event)
}

type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	lastSeen  time.Time
	browse    *browse.State
	scroll    *carousel.PageScroll
	carousels map[string]*carousel.Carousel
	cart      *cart.Cart
	payment   *checkout.Session
	purchases map[string]entity.Purchase
	notifier  Notifier
	payOpts   checkout.Options
}

func newSession(id string, now time.Time, fetcher browse.Fetcher, notifier Notifier, payOpts checkout.Options) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		lastSeen:  now,
		browse:    browse.NewState(fetcher),
		scroll:    &carousel.PageScroll{},
		carousels: make(map[string]*carousel.Carousel),
		cart:      cart.New(),
		purchases: make(map[string]entity.Purchase),
		notifier:  notifier,
		payOpts:   payOpts,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Browse applies the requested search, sort and page and returns the resulting view.
// Only a changed search or sort refetches.
func (s *Session) Browse(ctx context.Context, search string, key entity.SortKey, page int) (browse.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.browse.Query(ctx, search, key)
	if err == nil {
		s.browse.SetPage(page)
	}
	return s.browse.View(), err
}

// Carousel returns the carousel for listing, creating it on first use.
func (s *Session) carousel(l *entity.Listing) *carousel.Carousel {
	c, ok := s.carousels[l.ID]
	if !ok {
		c = carousel.New(l.ListingImages, s.scroll)
		s.carousels[l.ID] = c
	}
	return c
}

type CarouselOp string

const (
	OpNext     CarouselOp = "next"
	OpPrevious CarouselOp = "previous"
	OpJump     CarouselOp = "jump"
	OpOpen     CarouselOp = "open"
	OpClose    CarouselOp = "close"
	OpShow     CarouselOp = "show"
)

type CarouselView struct {
	carousel.State
	ScrollSuspended bool `json:"scrollSuspended"`
}

// ApplyCarousel runs op against the listing's carousel.
func (s *Session) ApplyCarousel(l *entity.Listing, op CarouselOp, index int, trigger carousel.Trigger) (CarouselView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.carousel(l)
	var err error
	switch op {
	case OpNext:
		err = c.Next()
	case OpPrevious:
		err = c.Previous()
	case OpJump:
		err = c.JumpTo(index)
	case OpOpen:
		err = c.OpenFullscreen()
	case OpClose:
		c.Close(trigger)
	case OpShow:
	default:
		err = errors.New("unknown carousel operation " + string(op))
	}
	return CarouselView{State: c.State(), ScrollSuspended: s.scroll.Suspended()}, err
}

func (s *Session) AddToCart(l *entity.Listing) (cart.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.cart.Add(l); err != nil {
		return cart.Totals{}, err
	}
	return s.cart.Totals(), nil
}

func (s *Session) UpdateCartQuantity(listingID string, delta int) (cart.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.UpdateQuantity(listingID, delta); err != nil {
		return cart.Totals{}, err
	}
	return s.cart.Totals(), nil
}

func (s *Session) RemoveFromCart(listingID string) (cart.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.Remove(listingID); err != nil {
		return cart.Totals{}, err
	}
	return s.cart.Totals(), nil
}

func (s *Session) Cart() cart.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals()
}

func (s *Session) CheckoutCart() (cart.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Checkout()
}

// OpenPayment starts a payment modal for l. An idle or finished modal is replaced without
// notice; one that is still processing blocks the new one.
func (s *Session) OpenPayment(l entity.Listing, method entity.PaymentMethod) (checkout.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.payment != nil && !s.payment.Discardable() {
		return checkout.State{}, ErrPaymentPending
	}

	opts := s.payOpts
	opts.Observer = s.onPaymentEvent
	s.payment = checkout.Open(l, method, opts)
	return s.payment.State(), nil
}

func (s *Session) SubmitPayment(form checkout.Form) (checkout.State, error) {
	s.mu.Lock()
	p := s.payment
	s.mu.Unlock()
	if p == nil {
		return checkout.State{}, ErrNoPayment
	}

	err := p.Submit(form)
	return p.State(), err
}

func (s *Session) Payment() (checkout.State, error) {
	s.mu.Lock()
	p := s.payment
	s.mu.Unlock()
	if p == nil {
		return checkout.State{}, ErrNoPayment
	}
	return p.State(), nil
}

// PaymentDone exposes the open payment's completion channel.
func (s *Session) PaymentDone() (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payment == nil {
		return nil, ErrNoPayment
	}
	return s.payment.Done(), nil
}

func (s *Session) onPaymentEvent(e checkout.Event) {
	if e.Status == checkout.StatusCompleted && e.Receipt != nil {
		s.mu.Lock()
		s.purchases[e.ListingID] = entity.Purchase{
			Receipt: *e.Receipt,
			Status:  entity.PurchaseCompleted,
		}
		s.mu.Unlock()
	}
	if s.notifier != nil {
		s.notifier.Publish(s.ID, e)
	}
}

// Purchases lists completed purchases, oldest first.
func (s *Session) Purchases() []entity.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Purchase, 0, len(s.purchases))
	for _, p := range s.purchases {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ListingID < out[j].ListingID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Purchased reports whether listingID has a completed purchase in this session.
func (s *Session) Purchased(listingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.purchases[listingID]
	return ok
}

// close dismisses open overlays so scroll is never left suspended.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carousels {
		c.Close(carousel.TriggerButton)
	}
}

func (s *Session) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment != nil && !s.payment.Discardable()
}
