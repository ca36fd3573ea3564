package engine

import (
	"sync"
	"time"
)

// ScanState is one in-flight scan as seen by a front end polling for status.
type ScanState struct {
	URL     string
	Started time.Time
	Step    string
}

// Tracker is an explicit registry of active scans keyed by requester. The
// owning front end passes it in and entries are removed on completion or
// failure; nothing is shared globally. A nil Tracker is a no-op.
type Tracker struct {
	mu     sync.Mutex
	active map[string]ScanState
}

func NewTracker() *Tracker {
	return &Tracker{active: map[string]ScanState{}}
}

// Begin registers a scan for the requester. It returns false if one is
// already running, so front ends can reject concurrent requests.
func (t *Tracker) Begin(requester, url string) bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.active[requester]; busy {
		return false
	}
	t.active[requester] = ScanState{URL: url, Started: time.Now()}
	return true
}

func (t *Tracker) SetStep(requester, step string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if state, ok := t.active[requester]; ok {
		state.Step = step
		t.active[requester] = state
	}
}

func (t *Tracker) Get(requester string) (ScanState, bool) {
	if t == nil {
		return ScanState{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.active[requester]
	return state, ok
}

func (t *Tracker) End(requester string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, requester)
}
