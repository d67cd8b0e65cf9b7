package game

// TestSim is a headless harness around Sim for scenario tests and the
// headless runner. It starts from an empty level so each test places
// exactly the entities it needs, then drives Tick with scripted input.
type TestSim struct {
	*Sim
	SimLog *SimLog

	// Held is applied on every tick that has no scripted input left.
	Held   InputState
	script []InputState

	simOpts   []Option
	generated bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // sim options, verbosity. Applied before New
	simOptLevel                       // level shape: generated or empty
	simOptEntity                      // entity placement, applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSimOptions passes options straight to New.
func WithSimOptions(opts ...Option) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.simOpts = append(ts.simOpts, opts...)
	}}
}

// WithMapSize sets the playfield dimensions.
func WithMapSize(w, h float64) SimOption {
	return WithSimOptions(WithWorldSize(w, h))
}

// WithVerbose enables high-frequency event logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithGeneratedLevel keeps the procedurally generated level instead of
// clearing it.
func WithGeneratedLevel() SimOption {
	return SimOption{simOptLevel, func(ts *TestSim) {
		ts.generated = true
	}}
}

// WithWall adds a wall.
func WithWall(x, y, w, h float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.st.Walls = append(ts.st.Walls, Wall{Rect{X: x, Y: y, W: w, H: h}})
	}}
}

// WithPlayerAt moves the player's top-left corner to (x, y).
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.st.Player.X, ts.st.Player.Y = x, y
	}}
}

// WithEnemyAt adds a level-scaled enemy with its top-left at (x, y).
func WithEnemyAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.st.Enemies = append(ts.st.Enemies, ts.newEnemy(x, y))
	}}
}

// WithCoverAt adds a cover object of kind.
func WithCoverAt(x, y float64, kind CoverKind) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.st.Cover.Objects = append(ts.st.Cover.Objects, newCoverObject(x, y, kind))
	}}
}

// WithVehicleAt adds a free vehicle. Parked vehicles stay idle until driven.
func WithVehicleAt(x, y float64, kind VehicleKind, parked bool) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.spawnVehicle(x, y, kind, parked)
	}}
}

// WithEvidenceAt adds an evidence item and counts it as an objective.
func WithEvidenceAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.st.Evidence = append(ts.st.Evidence, Evidence{
			Rect:  Rect{X: x, Y: y, W: evidenceSize, H: evidenceSize},
			Value: 100 + 50*ts.st.Level,
		})
		ts.st.Mission.EvidenceRemaining++
	}}
}

// WithPendingObjective keeps the mission open without placing anything.
func WithPendingObjective() SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.st.Mission.EvidenceRemaining++
	}}
}

// WithCash sets the wallet.
func WithCash(n int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.st.Economy.Cash = n
	}}
}

// NewTestSim builds a seeded Sim, clears the level unless asked to keep it,
// places entities and starts play. Passes:
//  1. Infrastructure (sim options, verbosity)
//  2. Level shape
//  3. Entities
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{SimLog: NewSimLog(false)}
	ts.apply(opts, simOptInfra)

	simOpts := append([]Option{WithSeed(1), WithEventLog(ts.SimLog)}, ts.simOpts...)
	ts.Sim = New(simOpts...)

	ts.apply(opts, simOptLevel)
	if !ts.generated {
		ts.clearLevel()
	}
	ts.apply(opts, simOptEntity)
	ts.Start()
	return ts
}

func (ts *TestSim) apply(opts []SimOption, kind simOptionKind) {
	for _, o := range opts {
		if o.kind == kind {
			o.fn(ts)
		}
	}
}

func (ts *TestSim) clearLevel() {
	st := ts.st
	st.Walls = nil
	st.Enemies = nil
	st.Evidence = nil
	st.Pickups = nil
	st.Vehicles = Fleet{}
	st.Cover = Cover{}
	st.Mission = Mission{}
}

// Script queues per-tick inputs consumed before falling back to Held.
func (ts *TestSim) Script(inputs ...InputState) {
	ts.script = append(ts.script, inputs...)
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Tick(ts.nextInput())
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which it held, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Tick(ts.nextInput())
		if predicate(ts) {
			return ts.st.Tick
		}
	}
	return -1
}

func (ts *TestSim) nextInput() InputState {
	if len(ts.script) > 0 {
		in := ts.script[0]
		ts.script = ts.script[1:]
		return in
	}
	return ts.Held
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.st.Tick
}
