package game

import "testing"

func TestSchedule_KeepsQueueOrdered(t *testing.T) {
	s := New(WithSeed(1))
	s.st.NowMs = 1000
	s.schedule(EventRegenerateLevel, 300)
	s.schedule(EventRegenerateLevel, 100)
	s.schedule(EventRegenerateLevel, 200)
	var got []float64
	for _, ev := range s.st.Timers {
		got = append(got, ev.AtMs)
	}
	if len(got) != 3 || got[0] != 1100 || got[1] != 1200 || got[2] != 1300 {
		t.Fatalf("queue = %v", got)
	}
}

func TestFireDueEvents_OnlyDue(t *testing.T) {
	s := New(WithSeed(1))
	s.st.Enemies = nil
	s.schedule(EventRegenerateLevel, 50)
	s.schedule(EventRegenerateLevel, 5000)

	s.st.NowMs = 49
	s.fireDueEvents()
	if len(s.st.Timers) != 2 || len(s.st.Enemies) != 0 {
		t.Fatal("event fired before its time")
	}
	s.st.NowMs = 50
	s.fireDueEvents()
	if len(s.st.Timers) != 1 {
		t.Fatalf("timers left = %d, want 1", len(s.st.Timers))
	}
	if len(s.st.Enemies) == 0 {
		t.Fatal("regeneration event did not rebuild the level")
	}
	if !s.events.HasEntry("timer", "fired", "regenerateLevel") {
		t.Fatal("timer firing not logged")
	}
}
