package accumulator

import (
	"testing"

	"accumulator-api/internal/history"
)

func TestStoreCreateGetDelete(t *testing.T) {
	s := NewStore()

	id := s.Create()
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	chain, ok := s.Get(id)
	if !ok || chain == nil {
		t.Fatalf("expected to find chain for session %q", id)
	}
	if got := chain.Result(); got != 0 {
		t.Fatalf("expected fresh chain at 0, got %d", got)
	}

	if !s.Delete(id) {
		t.Fatal("expected delete to succeed")
	}
	if _, ok := s.Get(id); ok {
		t.Fatal("expected session to be gone after delete")
	}
	if s.Delete(id) {
		t.Fatal("expected second delete to report false")
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	s := NewStore()

	a := s.Create()
	b := s.Create()
	if a == b {
		t.Fatal("expected distinct session ids")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}

	chainA, _ := s.Get(a)
	chainB, _ := s.Get(b)

	if _, err := chainA.Apply(history.Add, 7); err != nil {
		t.Fatalf("applying to chain a: %v", err)
	}

	if got := chainB.Result(); got != 0 {
		t.Fatalf("expected chain b untouched at 0, got %d", got)
	}
}
