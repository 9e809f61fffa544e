package guidance

import (
	"context"
	"errors"
	"sync"
)

var (
	errSuperseded     = errors.New("superseded by a newer request")
	errCanceledByUser = errors.New("canceled by user")
)

type flight struct {
	cancel context.CancelCauseFunc
}

// Tracker keeps at most one in-flight request per key. Starting a request
// cancels the previous one under the same key.
type Tracker struct {
	mu       sync.Mutex
	inflight map[string]*flight
}

func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[string]*flight)}
}

// Start derives the request context from parent and registers it under key.
// done must be called once the request finishes.
func (t *Tracker) Start(parent context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	f := &flight{cancel: cancel}

	t.mu.Lock()
	if prev, ok := t.inflight[key]; ok {
		prev.cancel(errSuperseded)
	}
	t.inflight[key] = f
	t.mu.Unlock()

	return ctx, func() {
		t.mu.Lock()
		if t.inflight[key] == f {
			delete(t.inflight, key)
		}
		t.mu.Unlock()
		cancel(nil)
	}
}

// Cancel aborts the request registered under key and reports whether there was one.
func (t *Tracker) Cancel(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.inflight[key]
	if !ok {
		return false
	}
	f.cancel(errCanceledByUser)
	delete(t.inflight, key)
	return true
}

func (t *Tracker) InFlight(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inflight[key]
	return ok
}
