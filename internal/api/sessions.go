package api

import (
	"sync"
	"time"

	"github.com/Artexxx/hr-onboarding/internal/metrics"
	"github.com/Artexxx/hr-onboarding/internal/onboarding"
	"github.com/google/uuid"
)

// session serializes gestures on one wizard: a second advance waits for the
// first to finish and then sees its result.
type session struct {
	mu      sync.Mutex
	wizard  *onboarding.Wizard
	touched time.Time
}

type sessionStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*session
	ttl   time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		items: make(map[uuid.UUID]*session),
		ttl:   ttl,
	}
}

func (st *sessionStore) create(rules *onboarding.Validator, now time.Time) *session {
	sess := &session{
		wizard:  onboarding.NewWizard(uuid.New(), rules),
		touched: now,
	}

	st.mu.Lock()
	st.items[sess.wizard.ID()] = sess
	metrics.ActiveSessions.Set(float64(len(st.items)))
	st.mu.Unlock()

	return sess
}

func (st *sessionStore) get(id uuid.UUID) (*session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	sess, ok := st.items[id]
	return sess, ok
}

func (st *sessionStore) remove(id uuid.UUID) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.items[id]; !ok {
		return false
	}
	delete(st.items, id)
	metrics.ActiveSessions.Set(float64(len(st.items)))
	return true
}

func (st *sessionStore) count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.items)
}

// sweep drops sessions idle for longer than ttl. Zero ttl keeps everything.
func (st *sessionStore) sweep(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, sess := range st.items {
		if !sess.mu.TryLock() {
			continue
		}
		if now.Sub(sess.touched) > st.ttl {
			delete(st.items, id)
			n++
		}
		sess.mu.Unlock()
	}
	metrics.ActiveSessions.Set(float64(len(st.items)))
	return n
}

// reset drops every session and reports how many there were.
func (st *sessionStore) reset() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	n := len(st.items)
	st.items = make(map[uuid.UUID]*session)
	metrics.ActiveSessions.Set(0)
	return n
}
