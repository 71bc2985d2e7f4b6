package usecase

import (
	"sync"
	"time"
)

// ViewStateKeeper holds the last committed view-model per screen and guards
// against out-of-order refresh cycles. Begin hands out a generation token;
// Commit only applies when the token is still the newest one for that
// screen, so a slow cycle can never overwrite a fresher result.
type ViewStateKeeper struct {
	mu      sync.Mutex
	entries map[string]*viewEntry
}

type viewEntry struct {
	gen       uint64
	committed uint64
	view      interface{}
	at        time.Time
}

func NewViewStateKeeper() *ViewStateKeeper {
	return &ViewStateKeeper{entries: make(map[string]*viewEntry)}
}

// Begin starts a refresh cycle for a screen and returns its generation token.
func (k *ViewStateKeeper) Begin(screen string) uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	e := k.entry(screen)
	e.gen++
	return e.gen
}

// Commit stores the view if gen is still the newest token for the screen.
// Returns false when the cycle was superseded and the result was discarded.
func (k *ViewStateKeeper) Commit(screen string, gen uint64, view interface{}) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	e := k.entry(screen)
	if gen != e.gen || gen <= e.committed {
		return false
	}
	e.committed = gen
	e.view = view
	e.at = time.Now()
	return true
}

// Current returns the last committed view for a screen, if any.
func (k *ViewStateKeeper) Current(screen string) (interface{}, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.entries[screen]
	if !ok || e.view == nil {
		return nil, false
	}
	return e.view, true
}

// CommittedAt returns when the screen's view was last committed.
func (k *ViewStateKeeper) CommittedAt(screen string) (time.Time, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.entries[screen]
	if !ok || e.view == nil {
		return time.Time{}, false
	}
	return e.at, true
}

func (k *ViewStateKeeper) entry(screen string) *viewEntry {
	e, ok := k.entries[screen]
	if !ok {
		e = &viewEntry{}
		k.entries[screen] = e
	}
	return e
}
