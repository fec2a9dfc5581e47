package app

import (
	"context"
	"errors"

	"tableflip.dev/trip/pkg/itinerary"
)

// Commit announces a new document.
type Commit struct {
	Generation uint64
	Document   itinerary.Document
	Reason     string
}

// Subscribe registers fn for every commit. fn runs on the committing
// goroutine while the guard is still engaged and must not block or call back
// into mutating methods. The returned func unsubscribes.
func (s *Service) Subscribe(fn func(Commit)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(Commit))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Generation is the number of commits so far.
func (s *Service) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

type mutation func(itinerary.Document) (itinerary.Document, error)

// commit applies fn to the live document. The caller must hold a guard token
// for the whole operation; commit does not release it.
func (s *Service) commit(ctx context.Context, reason string, fn mutation) (itinerary.Document, error) {
	if err := ctx.Err(); err != nil {
		return itinerary.Document{}, err
	}

	s.mu.Lock()
	next, err := fn(s.doc)
	if err != nil {
		s.mu.Unlock()
		return itinerary.Document{}, err
	}
	s.doc = next
	s.commits++
	c := Commit{Generation: s.commits, Document: next.Clone(), Reason: reason}
	subs := make([]func(Commit), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(c)
	}
	return c.Document, nil
}

// update runs a single step mutation as one guarded commit.
func (s *Service) update(ctx context.Context, reason string, fn mutation) (itinerary.Document, error) {
	tok := s.guard.Begin()
	defer tok.Release()
	return s.commit(ctx, reason, fn)
}

// errNoop aborts a commit that would not change anything.
var errNoop = errors.New("app: nothing to change")
