package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	pitchdeck "github.com/alnah/go-pitchdeck"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 2 * time.Hour

type entry struct {
	state      State
	cancel     context.CancelFunc
	lastAccess time.Time
}

// Store keeps session states keyed by an opaque ID. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store. ttl <= 0 uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// NewID returns a fresh session ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an ID issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// lookup returns the entry for id, creating it if needed. Caller holds mu.
func (st *Store) lookup(id string) *entry {
	e, ok := st.sessions[id]
	if !ok {
		e = &entry{}
		st.sessions[id] = e
	}
	e.lastAccess = st.now()
	return e
}

// Get returns the state for id. Unknown IDs yield the zero State.
func (st *Store) Get(id string) State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.lookup(id).state
}

// Apply applies ev to the session and returns the new state.
// Reset also cancels the in-flight generation, if any.
func (st *Store) Apply(id string, ev Event) State {
	st.mu.Lock()
	defer st.mu.Unlock()

	e := st.lookup(id)
	if _, ok := ev.(Reset); ok && e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.state = Apply(e.state, ev)
	return e.state
}

// BeginGeneration applies Submit and returns a context for the generation
// call, canceled by Reset, by a newer BeginGeneration or when parent ends.
// seq must be passed back to FinishGeneration.
func (st *Store) BeginGeneration(parent context.Context, id string, in pitchdeck.PitchInput) (ctx context.Context, seq uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e := st.lookup(id)
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	e.cancel = cancel
	e.state = Apply(e.state, Submit{Input: in})
	return ctx, e.state.Seq
}

// FinishGeneration records the outcome of the generation started with seq.
// Stale outcomes leave the state unchanged. Outcomes for sessions already
// swept are dropped and yield the zero State.
func (st *Store) FinishGeneration(id string, seq uint64, deck *pitchdeck.GeneratedDeck, err error) State {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[id]
	if !ok {
		return State{}
	}
	if e.state.Seq == seq && e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	var ev Event = GenerationSucceeded{Seq: seq, Deck: deck}
	if err != nil || deck.Len() == 0 {
		ev = GenerationFailed{Seq: seq, Err: err}
	}
	e.state = Apply(e.state, ev)
	return e.state
}

// StartExport applies ExportStarted unless an export is already running.
// ok is false when there is no deck or another export holds the session.
func (st *Store) StartExport(id string) (s State, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e := st.lookup(id)
	if e.state.Exporting || !e.state.HasDeck() {
		return e.state, false
	}
	e.state = Apply(e.state, ExportStarted{})
	return e.state, true
}

// TakeNotice returns the pending notice and consumes it.
func (st *Store) TakeNotice(id string) (State, string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e := st.lookup(id)
	s := e.state
	e.state = Apply(e.state, NoticeShown{})
	return s, s.Notice
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the TTL, canceling their
// generations. It returns the number removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-st.ttl)
	removed := 0
	for id, e := range st.sessions {
		if e.lastAccess.Before(cutoff) {
			if e.cancel != nil {
				e.cancel()
			}
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = st.ttl / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
