package app

import (
	"context"
	"log"
	"sync"
	"time"
)

// Autosaver writes the live document after commits settle. Bursts of commits
// inside the delay produce one write, and nothing is written while the guard
// is engaged. The latest snapshot is always the one written.
type Autosaver struct {
	svc   *Service
	delay time.Duration

	dirty   chan struct{}
	flush   chan chan error
	done    chan struct{}
	stopped chan struct{}
	unsub   func()
	once    sync.Once

	mu      sync.Mutex
	writes  int
	lastErr error
}

// NewAutosaver subscribes to s and starts saving. Close it when done.
func NewAutosaver(s *Service, delay time.Duration) *Autosaver {
	a := &Autosaver{
		svc:     s,
		delay:   delay,
		dirty:   make(chan struct{}, 1),
		flush:   make(chan chan error),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	a.unsub = s.Subscribe(func(Commit) {
		select {
		case a.dirty <- struct{}{}:
		default:
		}
	})
	go a.run()
	return a
}

func (a *Autosaver) run() {
	defer close(a.stopped)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	arm := func() {
		if timer == nil {
			timer = time.NewTimer(a.delay)
		} else {
			timer.Stop()
			select {
			case <-timer.C:
			default:
			}
			timer.Reset(a.delay)
		}
		timerC = timer.C
	}

	for {
		select {
		case <-a.done:
			return
		case <-a.dirty:
			pending = true
			arm()
		case <-timerC:
			timerC = nil
			if !pending {
				continue
			}
			if a.svc.guard.Engaged() {
				arm()
				continue
			}
			pending = false
			_ = a.write()
		case reply := <-a.flush:
			// A commit may have been announced but not yet picked up.
			select {
			case <-a.dirty:
				pending = true
			default:
			}
			var err error
			if pending {
				pending = false
				timerC = nil
				err = a.write()
			}
			reply <- err
		}
	}
}

func (a *Autosaver) write() error {
	if a.svc.Persistence == nil {
		return errNoPersistence
	}
	err := a.svc.Persistence.Save(context.Background(), a.svc.Snapshot())
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writes++
	a.lastErr = err
	if err != nil {
		log.Printf("app: autosave: %v", err)
	}
	return err
}

// Flush waits for the guard to drop and writes any pending change now.
func (a *Autosaver) Flush(ctx context.Context) error {
	if err := a.svc.guard.Wait(ctx); err != nil {
		return err
	}
	reply := make(chan error, 1)
	select {
	case a.flush <- reply:
	case <-a.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes and stops the autosaver. It is safe to call more than once.
func (a *Autosaver) Close(ctx context.Context) error {
	var err error
	a.once.Do(func() {
		a.unsub()
		err = a.Flush(ctx)
		close(a.done)
		<-a.stopped
	})
	return err
}

// Writes is the number of saves attempted so far.
func (a *Autosaver) Writes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writes
}

// Err is the result of the most recent save.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
