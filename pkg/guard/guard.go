// Package guard marks a document update as in flight. Persistence consults it
// so a half-applied multi-step change is never written. Tokens are counted, so
// overlapping updates keep the guard engaged until the last one is released.
package guard

import (
	"context"
	"sync"
)

// Guard is safe for concurrent use. The zero value is disengaged.
type Guard struct {
	mu     sync.Mutex
	active int
	idle   chan struct{}
}

// Token releases one Begin.
type Token struct {
	g    *Guard
	once *sync.Once
}

// Begin engages the guard and returns the token that releases it.
func (g *Guard) Begin() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == 0 {
		g.idle = make(chan struct{})
	}
	g.active++
	return Token{g: g, once: new(sync.Once)}
}

// Release drops this token. Calling it more than once has no further effect.
func (t Token) Release() {
	if t.g == nil {
		return
	}
	t.once.Do(t.g.release)
}

func (g *Guard) release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == 0 {
		return
	}
	g.active--
	if g.active == 0 && g.idle != nil {
		close(g.idle)
		g.idle = nil
	}
}

// Engaged reports whether any token is outstanding.
func (g *Guard) Engaged() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active > 0
}

// Wait blocks until the guard is disengaged or ctx is done.
func (g *Guard) Wait(ctx context.Context) error {
	g.mu.Lock()
	idle := g.idle
	g.mu.Unlock()
	if idle == nil {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
