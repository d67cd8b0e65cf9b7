package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one gameplay event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // "P" for the player, "E7", "V3", or "--" for global events
	Category string  // combat, ai, vehicle, economy, cover, mission, level, timer, state
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric payload for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E7   ai        state            patrol → chase
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog records gameplay events for tests, the headless runner and debug
// reports. Operator diagnostics go to zerolog instead.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates an empty log. With verbose set it also keeps per-tick
// noise like AI state flips and enemy hits.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add appends an entry.
func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose appends only in verbose mode.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// EventQuery selects log entries. Empty string fields match anything; a
// zero ToTick leaves the window open-ended.
type EventQuery struct {
	Category string
	Key      string
	Contains string
	Actor    string
	FromTick int
	ToTick   int
}

func (q EventQuery) match(e SimLogEntry) bool {
	switch {
	case q.Category != "" && e.Category != q.Category:
		return false
	case q.Key != "" && e.Key != q.Key:
		return false
	case q.Actor != "" && e.Actor != q.Actor:
		return false
	case e.Tick < q.FromTick:
		return false
	case q.ToTick > 0 && e.Tick > q.ToTick:
		return false
	}
	return q.Contains == "" || strings.Contains(e.Value, q.Contains)
}

// Query returns the entries q selects, oldest first.
func (sl *SimLog) Query(q EventQuery) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if q.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter returns entries matching category and key.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.Query(EventQuery{Category: category, Key: key})
}

// CountCategory returns how many entries match category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	q := EventQuery{Category: category, Key: key}
	for _, e := range sl.entries {
		if q.match(e) {
			n++
		}
	}
	return n
}

// Total sums NumVal over entries matching category and key.
func (sl *SimLog) Total(category, key string) float64 {
	sum := 0.0
	for _, e := range sl.Filter(category, key) {
		sum += e.NumVal
	}
	return sum
}

// LastOf returns the most recent entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	q := EventQuery{Category: category, Key: key}
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if q.match(sl.entries[i]) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether any entry matches category, key and a value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	q := EventQuery{Category: category, Key: key, Contains: valueSubstr}
	for _, e := range sl.entries {
		if q.match(e) {
			return true
		}
	}
	return false
}

// Format renders the whole log, one line per entry.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable digest of st and the log so far.
func (sl *SimLog) Summary(st *State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%s) ---\n", st.Tick, st.Status)
	fmt.Fprintf(&sb, "Level %d  score=%d  cash=$%d  kills=%d\n",
		st.Level, st.Economy.Score, st.Economy.Cash, st.Economy.Kills)
	fmt.Fprintf(&sb, "Player: hp=%.0f/%.0f  %s %d/%d  mode=%s  cover=%v\n",
		st.Player.Health, st.Player.MaxHealth, st.equipped().Name,
		st.Player.Ammo, st.Player.MaxAmmo, st.Vehicles.Mode(), st.Cover.PlayerInCover)

	states := map[AIState]int{}
	for _, e := range st.Enemies {
		states[e.State]++
	}
	fmt.Fprintf(&sb, "Enemies: %d  patrol=%d chase=%d attack=%d\n",
		len(st.Enemies), states[AIPatrol], states[AIChase], states[AIAttack])
	fmt.Fprintf(&sb, "Evidence left: %d  vehicles free=%d\n",
		st.Mission.EvidenceRemaining, len(st.Vehicles.Free))
	fmt.Fprintf(&sb, "Events: hits taken=%d  missions=%d  vehicle entries=%d\n",
		sl.CountCategory("combat", "player_hit"),
		sl.CountCategory("mission", "complete"),
		sl.CountCategory("vehicle", "enter"))
	return sb.String()
}
