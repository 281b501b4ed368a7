package status

import (
	"sync"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(EngineTicks)
	b := r.Ints.Get(EngineTicks)
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	if !r.Ints.Has(EngineTicks) || r.Ints.Has(FeedDropped) {
		t.Fatal("Has mismatch")
	}
}

func TestRegistryExport(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(GameScore).Store(150)
	r.Bools.Get(FeedReady).Store(true)
	r.Floats.Get(EnginePeriodMS).Set(0.25)
	r.Strings.Get(GamePhase).Store("running")

	got := r.Export()
	if len(got) != 4 || r.Count() != 4 {
		t.Fatalf("exported %d metrics: %v", len(got), got)
	}
	if got[GameScore] != int64(150) || got[FeedReady] != true ||
		got[EnginePeriodMS] != 0.25 || got[GamePhase] != "running" {
		t.Fatalf("unexpected export %v", got)
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Fatal("zero value should be empty")
	}
	long := "abcdefghijklmnopqrstuvwxyz0123456789"
	s.Store(long)
	if got := s.Load(); got != long[:maxStringLen] {
		t.Fatalf("Load = %q", got)
	}
}

func TestConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Ints.Get(EngineTicks).Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Ints.Get(EngineTicks).Load(); got != 16000 {
		t.Fatalf("ticks = %d", got)
	}
}
