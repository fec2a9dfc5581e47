// Package idgen issues identifiers for days and activities.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Kind prefixes an identifier with the entity it names.
type Kind string

const (
	Day      Kind = "day"
	Activity Kind = "activity"
	Place    Kind = "place"
)

// Generator hands out identifiers that stay unique for the life of a document.
type Generator interface {
	New(kind Kind) string
}

// Time issues `<kind>-<uuidv7>` identifiers. UUIDv7 embeds a millisecond
// timestamp plus random bits, so two calls in the same millisecond still differ.
type Time struct{}

func (Time) New(kind Kind) string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4.
		id = uuid.New()
	}
	return fmt.Sprintf("%s-%s", kind, id)
}

// Sequence issues `<kind>-<n>` identifiers with an independent counter per
// kind. Deterministic, used by tests and the seed document.
type Sequence struct {
	mu    sync.Mutex
	next  map[Kind]int
	start int
}

// NewSequence returns a Sequence whose first identifier per kind is start.
func NewSequence(start int) *Sequence {
	return &Sequence{next: make(map[Kind]int), start: start}
}

func (s *Sequence) New(kind Kind) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == nil {
		s.next = make(map[Kind]int)
	}
	n, ok := s.next[kind]
	if !ok {
		n = s.start
		if n == 0 {
			n = 1
		}
	}
	s.next[kind] = n + 1
	return fmt.Sprintf("%s-%d", kind, n)
}
