package idgen

import (
	"strings"
	"testing"
)

func TestTimeUnique(t *testing.T) {
	g := Time{}
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := g.New(Activity)
		if !strings.HasPrefix(id, "activity-") {
			t.Fatalf("expected activity prefix, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d calls", id, i)
		}
		seen[id] = true
	}
}

func TestSequencePerKind(t *testing.T) {
	s := NewSequence(0)
	got := []string{s.New(Day), s.New(Activity), s.New(Day), s.New(Activity)}
	want := []string{"day-1", "activity-1", "day-2", "activity-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("id %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSequenceStart(t *testing.T) {
	var s Sequence
	if id := s.New(Day); id != "day-1" {
		t.Fatalf("zero value should start at 1, got %q", id)
	}
	s2 := NewSequence(10)
	if id := s2.New(Day); id != "day-10" {
		t.Fatalf("expected day-10, got %q", id)
	}
}
