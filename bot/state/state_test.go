package state

import (
	"sync"
	"testing"
)

func TestStoreSetGetClear(t *testing.T) {
	s := New()

	if _, _, ok := s.Get(1); ok {
		t.Fatal("Get() on empty store reported state")
	}

	s.Set(1, "awaiting_query", "movie")
	tag, payload, ok := s.Get(1)
	if !ok {
		t.Fatal("Get() reported no state after Set()")
	}
	if tag != "awaiting_query" {
		t.Errorf("tag = %q, want awaiting_query", tag)
	}
	if payload != "movie" {
		t.Errorf("payload = %v, want movie", payload)
	}

	s.Clear(1)
	if _, _, ok := s.Get(1); ok {
		t.Fatal("Get() reported state after Clear()")
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	s := New()
	s.Set(7, "first", 1)
	s.Set(7, "second", 2)

	tag, payload, ok := s.Get(7)
	if !ok || tag != "second" || payload != 2 {
		t.Fatalf("Get() = (%q, %v, %v), want (second, 2, true)", tag, payload, ok)
	}
}

func TestStoreIsolatesUsers(t *testing.T) {
	s := New()
	s.Set(1, "a", nil)
	s.Set(2, "b", nil)

	s.Clear(1)
	if _, _, ok := s.Get(2); !ok {
		t.Fatal("clearing one user dropped another user's state")
	}
}

func TestStoreClearAbsentIsNoop(t *testing.T) {
	s := New()
	s.Clear(42)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			s.Set(n%5, "tag", n)
			s.Get(n % 5)
			s.Clear(n % 5)
		}(int64(i))
	}
	wg.Wait()
}
