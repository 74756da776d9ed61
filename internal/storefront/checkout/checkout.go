// Package checkout simulates the payment modal: the buyer fills a form, the session
// validates it, waits out a fixed processing window and hands back a receipt.
// Nothing is charged and nothing is persisted.
package checkout

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/service"
)

const DefaultLatency = 1700 * time.Millisecond

var (
	ErrNameRequired     = errors.New("Please enter your name.")
	ErrPriceUnavailable = errors.New("Price not available for the selected option.")
	ErrProcessing       = errors.New("payment is already processing")
	ErrClosed           = errors.New("payment session is closed")
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

type Form struct {
	Name    string
	Contact string
	Method  entity.PaymentMethod
}

// Event is published on every state transition.
type Event struct {
	ListingID string          `json:"listingId"`
	Status    Status          `json:"status"`
	Message   string          `json:"message,omitempty"`
	Receipt   *entity.Receipt `json:"receipt,omitempty"`
}

type Options struct {
	Latency  time.Duration
	IDs      service.IDGenerator
	Now      func() time.Time
	Observer func(Event)
}

type Session struct {
	mu       sync.Mutex
	listing  entity.Listing
	method   entity.PaymentMethod
	name     string
	contact  string
	status   Status
	message  string
	receipt  *entity.Receipt
	latency  time.Duration
	ids      service.IDGenerator
	now      func() time.Time
	observer func(Event)
	done     chan struct{}
}

// Open starts an idle session for listing with method pre-selected.
func Open(listing entity.Listing, method entity.PaymentMethod, opts Options) *Session {
	if opts.Latency <= 0 {
		opts.Latency = DefaultLatency
	}
	if opts.IDs == nil {
		opts.IDs = service.NewUUIDGenerator()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if method == "" {
		method = entity.MethodMonthly
	}
	return &Session{
		listing:  listing,
		method:   method,
		status:   StatusIdle,
		latency:  opts.Latency,
		ids:      opts.IDs,
		now:      opts.Now,
		observer: opts.Observer,
		done:     make(chan struct{}),
	}
}

func parsePrice(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func (s *Session) validate(f Form) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if _, ok := parsePrice(s.listing.Price(f.Method)); !ok {
		return ErrPriceUnavailable
	}
	return nil
}

// Submit validates f and, when it passes, starts processing. A rejected form leaves the
// session idle with the reason recorded; the returned error is one of ErrNameRequired or
// ErrPriceUnavailable. Processing cannot be aborted once started.
func (s *Session) Submit(f Form) error {
	s.mu.Lock()
	switch s.status {
	case StatusValidating, StatusProcessing:
		s.mu.Unlock()
		return ErrProcessing
	case StatusCompleted:
		s.mu.Unlock()
		return ErrClosed
	}

	if f.Method == "" {
		f.Method = s.method
	}
	s.method = f.Method
	s.name = strings.TrimSpace(f.Name)
	s.contact = f.Contact
	s.status = StatusValidating
	listingID := s.listing.ID
	s.mu.Unlock()
	s.publish(Event{ListingID: listingID, Status: StatusValidating})

	if err := s.validate(f); err != nil {
		s.publish(Event{ListingID: listingID, Status: StatusRejected, Message: err.Error()})
		s.mu.Lock()
		s.status = StatusIdle
		s.message = err.Error()
		s.mu.Unlock()
		s.publish(Event{ListingID: listingID, Status: StatusIdle, Message: err.Error()})
		return err
	}

	s.mu.Lock()
	s.status = StatusProcessing
	s.message = ""
	s.mu.Unlock()
	s.publish(Event{ListingID: listingID, Status: StatusProcessing})

	time.AfterFunc(s.latency, s.complete)
	return nil
}

func (s *Session) complete() {
	s.mu.Lock()
	receipt := entity.Receipt{
		ListingID: s.listing.ID,
		Method:    s.method,
		ReceiptID: s.ids.NewReceiptID(),
		CreatedAt: s.now(),
	}
	s.receipt = &receipt
	s.status = StatusCompleted
	s.mu.Unlock()

	s.publish(Event{ListingID: receipt.ListingID, Status: StatusCompleted, Receipt: &receipt})
	close(s.done)
}

func (s *Session) publish(e Event) {
	if s.observer != nil {
		s.observer(e)
	}
}

// Done is closed once the receipt has been issued.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Discardable reports whether the session may be thrown away. A session that is
// validating or processing may not.
func (s *Session) Discardable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status != StatusValidating && s.status != StatusProcessing
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Receipt() (entity.Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.receipt == nil {
		return entity.Receipt{}, false
	}
	return *s.receipt, true
}

type State struct {
	ListingID       string               `json:"listingId"`
	Method          entity.PaymentMethod `json:"method"`
	Price           string               `json:"price"`
	Name            string               `json:"name,omitempty"`
	Contact         string               `json:"contact,omitempty"`
	Status          Status               `json:"status"`
	Message         string               `json:"message,omitempty"`
	ControlsEnabled bool                 `json:"controlsEnabled"`
	Receipt         *entity.Receipt      `json:"receipt,omitempty"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	price := s.listing.Price(s.method)
	if price == "" {
		price = "N/A"
	}
	st := State{
		ListingID:       s.listing.ID,
		Method:          s.method,
		Price:           price,
		Name:            s.name,
		Contact:         s.contact,
		Status:          s.status,
		Message:         s.message,
		ControlsEnabled: s.status == StatusIdle,
	}
	if s.receipt != nil {
		r := *s.receipt
		st.Receipt = &r
	}
	return st
}
