package storefront

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"motoride/internal/storefront/browse"
	"motoride/internal/storefront/checkout"
	"motoride/pkg/logger"
)

var ErrSessionNotFound = errors.New("storefront session not found")

type StoreOptions struct {
	TTL      time.Duration
	Payment  checkout.Options
	Notifier Notifier
	Now      func() time.Time
}

// SessionStore holds live storefront sessions in memory. Sessions idle for longer than the
// TTL are evicted, except while a payment is still processing.
type SessionStore struct {
	fetcher  browse.Fetcher
	opts     StoreOptions
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewSessionStore(fetcher browse.Fetcher, opts StoreOptions) *SessionStore {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionStore{
		fetcher:  fetcher,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

func (st *SessionStore) Create() *Session {
	s := newSession(uuid.NewString(), st.opts.Now(), st.fetcher, st.opts.Notifier, st.opts.Payment)

	st.mutex.Lock()
	st.sessions[s.ID] = s
	st.mutex.Unlock()

	logger.Debug("storefront session %s created", s.ID)
	return s
}

// Get returns the session and marks it as active.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mutex.RLock()
	s, ok := st.sessions[id]
	st.mutex.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(st.opts.Now())
	return s, nil
}

func (st *SessionStore) Delete(id string) error {
	st.mutex.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mutex.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.close()
	return nil
}

func (st *SessionStore) Len() int {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	return len(st.sessions)
}

// Evict drops idle sessions and reports how many went.
func (st *SessionStore) Evict() int {
	cutoff := st.opts.Now().Add(-st.opts.TTL)

	st.mutex.Lock()
	var evicted []*Session
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) && !s.busy() {
			evicted = append(evicted, s)
			delete(st.sessions, id)
		}
	}
	st.mutex.Unlock()

	for _, s := range evicted {
		s.close()
	}
	if len(evicted) > 0 {
		logger.Info("evicted %d idle storefront sessions", len(evicted))
	}
	return len(evicted)
}

// StartEvictionRoutine runs Evict every interval until ctx is done.
func (st *SessionStore) StartEvictionRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				st.Evict()
			case <-ctx.Done():
				return
			}
		}
	}()
}
