package ratelimit

import (
	"testing"
	"time"
)

func TestStore_WindowSequence(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Stop()

	max := 5
	window := time.Minute

	for i := 1; i <= max; i++ {
		res, err := s.Check(max, window, "client-a")
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
		want := max - i
		if res.Remaining != want {
			t.Errorf("request %d: expected remaining %d, got %d", i, want, res.Remaining)
		}
	}

	res, err := s.Check(max, window, "client-a")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Allowed {
		t.Error("request over the limit should be denied")
	}
	if res.Remaining != 0 {
		t.Errorf("expected remaining 0, got %d", res.Remaining)
	}
}

func TestStore_DenialKeepsResetTime(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Stop()

	first, err := s.Check(2, time.Minute, "client-a")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	s.Check(2, time.Minute, "client-a")
	denied, err := s.Check(2, time.Minute, "client-a")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if denied.Allowed {
		t.Fatal("third request should be denied")
	}
	if !denied.ResetTime.Equal(first.ResetTime) {
		t.Errorf("denial must not move the reset time: first %v, denied %v",
			first.ResetTime, denied.ResetTime)
	}
}

func TestStore_WindowReset(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Stop()

	max := 3
	window := 50 * time.Millisecond

	first, err := s.Check(max, window, "client-a")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	// Exhaust the window
	for i := 1; i < max; i++ {
		s.Check(max, window, "client-a")
	}
	res, _ := s.Check(max, window, "client-a")
	if res.Allowed {
		t.Fatal("limit should be exhausted")
	}

	time.Sleep(window + 10*time.Millisecond)

	res, err = s.Check(max, window, "client-a")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !res.Allowed {
		t.Error("request after window expiry should be allowed")
	}
	if res.Remaining != max-1 {
		t.Errorf("expected remaining %d after reset, got %d", max-1, res.Remaining)
	}
	if !res.ResetTime.After(first.ResetTime) {
		t.Errorf("expected a new reset time after %v, got %v", first.ResetTime, res.ResetTime)
	}
}

func TestStore_IndependentIdentifiers(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Stop()

	max := 3
	window := time.Minute

	// Hammer both identifiers alternately up to their limits
	for i := 1; i <= max; i++ {
		resA, _ := s.Check(max, window, "client-a")
		resB, _ := s.Check(max, window, "client-b")

		if !resA.Allowed || !resB.Allowed {
			t.Fatalf("round %d: both clients should still be allowed", i)
		}
		if resA.Remaining != resB.Remaining {
			t.Errorf("round %d: remaining diverged: a=%d b=%d", i, resA.Remaining, resB.Remaining)
		}
	}

	resA, _ := s.Check(max, window, "client-a")
	if resA.Allowed {
		t.Error("client-a over the limit should be denied")
	}

	// client-b's denial must come from its own counter, untouched by client-a
	resB, _ := s.Check(max, window, "client-b")
	if resB.Allowed {
		t.Error("client-b over the limit should be denied")
	}
}

func TestStore_InvalidConfig(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Stop()

	cases := []struct {
		name       string
		max        int
		window     time.Duration
		identifier string
	}{
		{"zero max", 0, time.Minute, "client-a"},
		{"negative max", -1, time.Minute, "client-a"},
		{"zero window", 10, 0, "client-a"},
		{"empty identifier", 10, time.Minute, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Check(tc.max, tc.window, tc.identifier)
			if err != ErrInvalidConfig {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	// A malformed call must not have created state
	if s.Len() != 0 {
		t.Errorf("expected no entries after invalid calls, got %d", s.Len())
	}
}

func TestStore_CleanupRemovesExpiredOnly(t *testing.T) {
	s := NewStore(time.Hour)
	defer s.Stop()

	s.Check(5, 30*time.Millisecond, "expired")
	s.Check(5, time.Hour, "alive")

	time.Sleep(50 * time.Millisecond)
	s.cleanup(time.Now())

	if s.Len() != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", s.Len())
	}

	s.mu.Lock()
	_, expiredPresent := s.entries["expired"]
	alive, aliveKept := s.entries["alive"]
	count := 0
	if aliveKept {
		count = alive.count
	}
	s.mu.Unlock()

	if expiredPresent {
		t.Error("expired entry should have been swept")
	}
	if !aliveKept {
		t.Fatal("non-expired entry should survive the sweep")
	}
	if count != 1 {
		t.Errorf("sweep must not touch surviving counters: got count %d", count)
	}
}

func TestStore_BackgroundSweep(t *testing.T) {
	s := NewStore(20 * time.Millisecond)
	defer s.Stop()

	s.Check(5, 10*time.Millisecond, "short-lived")

	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if s.Len() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Error("background sweep never removed the expired entry")
}
