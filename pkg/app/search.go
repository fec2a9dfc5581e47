package app

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/trip/pkg/places"
)

// ErrSuperseded is returned for a search that was replaced by a newer one or
// cancelled before its results arrived.
var ErrSuperseded = errors.New("app: search superseded")

type searchState struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Search asks the places collaborator for query. Only the most recent search
// delivers results; starting a new one cancels the previous one.
func (s *Service) Search(ctx context.Context, query string) ([]places.Place, error) {
	if s.Places == nil {
		return nil, errors.New("app: no place search configured")
	}

	s.search.mu.Lock()
	if s.search.cancel != nil {
		s.search.cancel()
	}
	s.search.seq++
	mine := s.search.seq
	sctx, cancel := context.WithCancel(ctx)
	s.search.cancel = cancel
	s.search.mu.Unlock()

	defer func() {
		s.search.mu.Lock()
		if s.search.seq == mine {
			s.search.cancel = nil
		}
		s.search.mu.Unlock()
		cancel()
	}()

	results, err := s.Places.Search(sctx, query)

	s.search.mu.Lock()
	current := s.search.seq == mine
	s.search.mu.Unlock()
	if !current {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CancelSearch discards the in-flight search, if any.
func (s *Service) CancelSearch() {
	s.search.mu.Lock()
	defer s.search.mu.Unlock()
	if s.search.cancel != nil {
		s.search.cancel()
		s.search.cancel = nil
	}
	s.search.seq++
}
