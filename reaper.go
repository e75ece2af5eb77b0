package goSessions

import (
	"context"
	"sync"
	"time"
)

// Reaper periodically sweeps expired records out of a [Store]. It is an
// explicitly owned handle: nothing starts at construction, the caller calls
// [Reaper.Start] once wiring is complete and [Reaper.Stop] on shutdown.
//
// The sweep schedule is a fixed interval from Start, independent of any
// request. Each sweep calls [Store.Reap] and then the completion callback
// with the number of records deleted and the first error, if any.
type Reaper struct {
	store    *Store
	interval time.Duration
	onReap   func(deleted int, err error)

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// NewReaper creates a reaper for the store. A non-positive interval falls
// back to the store's configured ReapInterval; a nil onReap falls back to
// the store's configured OnReap (which may itself be nil, meaning no-op).
func NewReaper(store *Store, interval time.Duration, onReap func(deleted int, err error)) *Reaper {
	if interval <= 0 {
		interval = store.cfg.ReapInterval
	}
	if onReap == nil {
		onReap = store.cfg.OnReap
	}
	return &Reaper{
		store:    store,
		interval: interval,
		onReap:   onReap,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the sweep loop. Calling Start more than once is a no-op.
func (r *Reaper) Start() {
	r.startOnce.Do(func() {
		go r.loop()
	})
}

// Stop halts the sweep loop and waits for any in-flight sweep to finish.
// Stop is idempotent and safe to call before Start.
func (r *Reaper) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
	r.startOnce.Do(func() {
		// Never started; nothing to wait for.
		close(r.stopped)
	})
	<-r.stopped
}

func (r *Reaper) loop() {
	defer close(r.stopped)

	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-t.C:
			deleted, err := r.store.Reap(context.Background())
			if r.onReap != nil {
				r.onReap(deleted, err)
			}
		}
	}
}
