package game

import "sort"

// EventKind is the action a scheduled event performs when it comes due.
type EventKind int

const (
	EventRegenerateLevel EventKind = iota
)

func (k EventKind) String() string {
	switch k {
	case EventRegenerateLevel:
		return "regenerateLevel"
	default:
		return "unknown"
	}
}

// ScheduledEvent is a one-shot timer in simulation time.
type ScheduledEvent struct {
	AtMs float64   `json:"atMs"`
	Kind EventKind `json:"kind"`
}

// schedule queues kind to fire once NowMs reaches now+delayMs. The queue is
// kept sorted by due time; equal times keep insertion order.
func (s *Sim) schedule(kind EventKind, delayMs float64) {
	ev := ScheduledEvent{AtMs: s.st.NowMs + delayMs, Kind: kind}
	q := s.st.Timers
	i := sort.Search(len(q), func(i int) bool { return q[i].AtMs > ev.AtMs })
	q = append(q, ScheduledEvent{})
	copy(q[i+1:], q[i:])
	q[i] = ev
	s.st.Timers = q
}

// fireDueEvents pops and runs every event whose time has come.
func (s *Sim) fireDueEvents() {
	for len(s.st.Timers) > 0 && s.st.Timers[0].AtMs <= s.st.NowMs {
		ev := s.st.Timers[0]
		s.st.Timers = s.st.Timers[1:]
		s.events.Add(s.st.Tick, "--", "timer", "fired", ev.Kind.String(), ev.AtMs)
		switch ev.Kind {
		case EventRegenerateLevel:
			s.generateLevel()
		}
	}
}
