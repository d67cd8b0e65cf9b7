package game

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/Garsondee/vice-streets/internal/game"

// simMetrics counts gameplay events on the global OTel meter provider,
// which is a no-op unless the host installs an SDK.
type simMetrics struct {
	ticks    metric.Int64Counter
	shots    metric.Int64Counter
	kills    metric.Int64Counter
	missions metric.Int64Counter
	damage   metric.Float64Counter
}

func newSimMetrics(m metric.Meter) (simMetrics, error) {
	var (
		sm  simMetrics
		err error
	)
	if sm.ticks, err = m.Int64Counter("vicestreets.ticks",
		metric.WithDescription("Simulation ticks run")); err != nil {
		return simMetrics{}, err
	}
	if sm.shots, err = m.Int64Counter("vicestreets.shots",
		metric.WithDescription("Shots fired by the player")); err != nil {
		return simMetrics{}, err
	}
	if sm.kills, err = m.Int64Counter("vicestreets.kills",
		metric.WithDescription("Enemies killed")); err != nil {
		return simMetrics{}, err
	}
	if sm.missions, err = m.Int64Counter("vicestreets.missions",
		metric.WithDescription("Missions completed")); err != nil {
		return simMetrics{}, err
	}
	if sm.damage, err = m.Float64Counter("vicestreets.player_damage",
		metric.WithDescription("Damage taken by the player after cover")); err != nil {
		return simMetrics{}, err
	}
	return sm, nil
}

// defaultMetrics uses the global meter and falls back to noop instruments.
func defaultMetrics() simMetrics {
	sm, err := newSimMetrics(otel.Meter(instrumentationName))
	if err != nil {
		sm, _ = newSimMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	}
	return sm
}

func (m simMetrics) tick() {
	m.ticks.Add(context.Background(), 1)
}

func (m simMetrics) shot() {
	m.shots.Add(context.Background(), 1)
}

func (m simMetrics) kill() {
	m.kills.Add(context.Background(), 1)
}

func (m simMetrics) mission(level int) {
	m.missions.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("level", level)))
}

func (m simMetrics) playerDamage(v float64) {
	m.damage.Add(context.Background(), v)
}
