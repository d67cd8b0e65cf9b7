package game

import (
	"fmt"
	"strings"
)

// DebugReport renders the recent event history and a state digest as text
// for pasting into bug reports.
func (s *Sim) DebugReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	st := s.st
	toTick := st.Tick
	fromTick := max(toTick-lastTicks+1, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "--- Vice Streets debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick_range=[%d..%d] now=%.0fms status=%s\n\n",
		s.cfg.seed, fromTick, toTick, st.NowMs, st.Status)

	b.WriteString(s.events.Summary(st))
	b.WriteByte('\n')

	p := &st.Player
	fmt.Fprintf(&b, "player pos=(%.0f,%.0f) angle=%.2f reload=%.0fms invuln=%.0fms\n",
		p.X, p.Y, p.Angle, p.ReloadMs, p.InvulnerableMs)
	if v := st.Vehicles.Player; v != nil {
		fmt.Fprintf(&b, "driving %s %s hp=%.0f/%.0f vel=(%.2f,%.2f)\n",
			v.label(), v.Kind, v.Health, v.MaxHealth, v.VX, v.VY)
	}
	for _, e := range st.Enemies {
		fmt.Fprintf(&b, "%-4s %-6s pos=(%.0f,%.0f) hp=%.0f lastSeen=%s\n",
			e.label(), e.State, e.X, e.Y, e.Health, sinceLabel(st.NowMs, e.LastSeenMs))
	}
	for _, v := range st.Vehicles.Free {
		fmt.Fprintf(&b, "%-4s %-6s pos=(%.0f,%.0f) hp=%.0f parked=%v\n",
			v.label(), v.Kind, v.X, v.Y, v.Health, v.Parked)
	}
	for _, t := range st.Timers {
		fmt.Fprintf(&b, "timer %s in %.0fms\n", t.Kind, t.AtMs-st.NowMs)
	}

	b.WriteString("\n== events ==\n")
	recent := s.events.Query(EventQuery{FromTick: fromTick, ToTick: toTick})
	if len(recent) == 0 {
		b.WriteString("(no events in range)\n")
	}
	b.WriteString(formatEntries(recent))
	return b.String()
}

func sinceLabel(now, at float64) string {
	if at <= neverMs {
		return "never"
	}
	return fmt.Sprintf("%.0fms", now-at)
}
