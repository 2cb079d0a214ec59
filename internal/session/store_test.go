package session

import (
	"testing"
	"time"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/view"
)

// fakeNow returns a controllable time source for expiry tests.
func fakeNow(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestStore_CreateGet(t *testing.T) {
	s := New(view.NewManualClock(), time.Second, time.Minute, 10, common.NewSilentLogger())

	id, sess := s.Create()
	if id == "" {
		t.Fatal("expected a session id")
	}
	if !sess.State().Loading {
		t.Error("expected new session to be loading")
	}

	got, ok := s.Get(id)
	if !ok {
		t.Fatal("expected session hit")
	}
	if got != sess {
		t.Error("expected the same session back")
	}
}

func TestStore_Miss(t *testing.T) {
	s := New(view.NewManualClock(), time.Second, time.Minute, 10, common.NewSilentLogger())

	if _, ok := s.Get("nonexistent"); ok {
		t.Error("expected miss for unknown id")
	}
	if _, ok := s.Get(""); ok {
		t.Error("expected miss for empty id")
	}
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	clock := view.NewManualClock()
	s := New(clock, time.Second, time.Minute, 10, common.NewSilentLogger())

	_, a := s.Create()
	clock.Advance(time.Second)
	_, b := s.Create()

	a.SelectTab(view.TabAdvice)

	if a.State().Loading {
		t.Error("expected first session ready")
	}
	if !b.State().Loading {
		t.Error("expected second session still loading")
	}
	if b.State().ActiveTab != view.TabOverview {
		t.Errorf("tab selection leaked across sessions: %s", b.State().ActiveTab)
	}
}

func TestStore_TTLExpiration(t *testing.T) {
	clock := view.NewManualClock()
	s := New(clock, time.Second, time.Minute, 10, common.NewSilentLogger())
	now, advance := fakeNow(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	s.now = now

	id, _ := s.Create()
	advance(2 * time.Minute)

	if _, ok := s.Get(id); ok {
		t.Error("expected miss after TTL expiry")
	}
	if s.Len() != 0 {
		t.Errorf("expected expired entry removed, got %d", s.Len())
	}
	if clock.Pending() != 0 {
		t.Errorf("expected expired session's loading task cancelled, got %d pending", clock.Pending())
	}
}

func TestStore_SlidingTTL(t *testing.T) {
	s := New(view.NewManualClock(), time.Second, time.Minute, 10, common.NewSilentLogger())
	now, advance := fakeNow(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	s.now = now

	id, _ := s.Create()
	for i := 0; i < 5; i++ {
		advance(45 * time.Second)
		if _, ok := s.Get(id); !ok {
			t.Fatalf("expected hit on touch %d", i)
		}
	}
}

func TestStore_EvictsOldestAtCapacity(t *testing.T) {
	clock := view.NewManualClock()
	s := New(clock, time.Second, time.Minute, 2, common.NewSilentLogger())

	first, _ := s.Create()
	second, _ := s.Create()
	third, _ := s.Create()

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if _, ok := s.Get(first); ok {
		t.Error("expected oldest session evicted")
	}
	if _, ok := s.Get(second); !ok {
		t.Error("expected second session kept")
	}
	if _, ok := s.Get(third); !ok {
		t.Error("expected third session kept")
	}
	if clock.Pending() != 2 {
		t.Errorf("expected evicted session's task cancelled, got %d pending", clock.Pending())
	}
}

func TestStore_GetOrCreate(t *testing.T) {
	s := New(view.NewManualClock(), time.Second, time.Minute, 10, common.NewSilentLogger())

	id, sess, created := s.GetOrCreate("")
	if !created || id == "" || sess == nil {
		t.Fatalf("expected a new session, got %q created=%v", id, created)
	}

	again, same, created := s.GetOrCreate(id)
	if created || again != id || same != sess {
		t.Error("expected existing session to be reused")
	}

	other, _, created := s.GetOrCreate("stale-cookie")
	if !created || other == "stale-cookie" {
		t.Errorf("expected a fresh id for unknown cookie, got %q", other)
	}
}

func TestStore_Purge(t *testing.T) {
	s := New(view.NewManualClock(), time.Second, time.Minute, 10, common.NewSilentLogger())
	now, advance := fakeNow(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	s.now = now

	s.Create()
	s.Create()
	advance(30 * time.Second)
	keep, _ := s.Create()
	advance(45 * time.Second)

	if n := s.Purge(); n != 2 {
		t.Errorf("expected 2 purged, got %d", n)
	}
	if _, ok := s.Get(keep); !ok {
		t.Error("expected recent session to survive purge")
	}
}

func TestStore_Close(t *testing.T) {
	clock := view.NewManualClock()
	s := New(clock, time.Second, time.Minute, 10, common.NewSilentLogger())
	s.Create()
	s.Create()

	s.Close()

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
	if clock.Pending() != 0 {
		t.Errorf("expected all tasks cancelled, got %d", clock.Pending())
	}
}
