package checkout

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"motoride/internal/domain/entity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixedIDs struct{ id string }

func (f fixedIDs) NewReceiptID() string { return f.id }

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) record(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) statuses() []Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Status, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Status)
	}
	return out
}

func listing(monthly, full string) entity.Listing {
	l := entity.Listing{ID: "moto-1"}
	if monthly != "" {
		l.MonthlyPrice = entity.StringPtr(monthly)
	}
	if full != "" {
		l.FullyPaidPrice = entity.StringPtr(full)
	}
	return l
}

func open(l entity.Listing, method entity.PaymentMethod, log *eventLog) *Session {
	opts := Options{
		Latency: time.Millisecond,
		IDs:     fixedIDs{id: "RCPT-TEST"},
		Now:     func() time.Time { return fixedNow },
	}
	if log != nil {
		opts.Observer = log.record
	}
	return Open(l, method, opts)
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("payment never completed")
	}
}

func TestSubmitCompletesWithReceipt(t *testing.T) {
	log := &eventLog{}
	s := open(listing("299", "12000"), entity.MethodMonthly, log)

	require.NoError(t, s.Submit(Form{Name: "  Ana  ", Contact: "ana@example.com"}))
	waitDone(t, s)

	r, ok := s.Receipt()
	require.True(t, ok)
	assert.Equal(t, entity.Receipt{
		ListingID: "moto-1",
		Method:    entity.MethodMonthly,
		ReceiptID: "RCPT-TEST",
		CreatedAt: fixedNow,
	}, r)
	assert.Equal(t, StatusCompleted, s.Status())
	assert.Equal(t, []Status{StatusValidating, StatusProcessing, StatusCompleted}, log.statuses())

	st := s.State()
	assert.Equal(t, "Ana", st.Name)
	assert.False(t, st.ControlsEnabled)
	assert.ErrorIs(t, s.Submit(Form{Name: "Ana"}), ErrClosed)
}

func TestBlankNameAlwaysRejected(t *testing.T) {
	for _, method := range []entity.PaymentMethod{entity.MethodMonthly, entity.MethodFull, ""} {
		log := &eventLog{}
		s := open(listing("299", "12000"), entity.MethodMonthly, log)

		err := s.Submit(Form{Name: "   ", Method: method})
		assert.ErrorIs(t, err, ErrNameRequired)
		assert.Equal(t, StatusIdle, s.Status())
		assert.Equal(t, "Please enter your name.", s.State().Message)
		assert.Equal(t, []Status{StatusValidating, StatusRejected, StatusIdle}, log.statuses())
	}
}

func TestMissingPriceForDefaultMethodRejected(t *testing.T) {
	s := open(listing("", "12000"), entity.MethodMonthly, nil)

	err := s.Submit(Form{Name: "Ana"})
	assert.ErrorIs(t, err, ErrPriceUnavailable)
	assert.Equal(t, StatusIdle, s.Status())
	assert.Equal(t, "N/A", s.State().Price)

	_, ok := s.Receipt()
	assert.False(t, ok)
}

func TestRejectedThenRetrySucceeds(t *testing.T) {
	s := open(listing("", "12000"), entity.MethodMonthly, nil)
	require.ErrorIs(t, s.Submit(Form{Name: "Ana"}), ErrPriceUnavailable)

	require.NoError(t, s.Submit(Form{Name: "Ana", Method: entity.MethodFull}))
	waitDone(t, s)

	r, ok := s.Receipt()
	require.True(t, ok)
	assert.Equal(t, entity.MethodFull, r.Method)
}

func TestUnparsablePriceRejected(t *testing.T) {
	for _, price := range []string{"5,555", "abc", "0", "-10"} {
		s := open(listing(price, ""), entity.MethodMonthly, nil)
		assert.ErrorIs(t, s.Submit(Form{Name: "Ana"}), ErrPriceUnavailable, price)
	}
}

func TestSecondSubmitWhileProcessingRefused(t *testing.T) {
	s := Open(listing("299", ""), entity.MethodMonthly, Options{
		Latency: 50 * time.Millisecond,
		IDs:     fixedIDs{id: "RCPT-1"},
	})

	require.NoError(t, s.Submit(Form{Name: "Ana"}))
	assert.ErrorIs(t, s.Submit(Form{Name: "Bob"}), ErrProcessing)
	assert.False(t, s.Discardable())
	assert.False(t, s.State().ControlsEnabled)

	waitDone(t, s)
	assert.True(t, s.Discardable())
}

func TestDefaultsApplied(t *testing.T) {
	s := Open(listing("1", ""), "", Options{})
	assert.Equal(t, DefaultLatency, s.latency)
	assert.Equal(t, entity.MethodMonthly, s.State().Method)
	assert.True(t, s.Discardable())
	assert.True(t, s.State().ControlsEnabled)
}
