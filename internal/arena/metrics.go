package arena

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/jwebster45206/combat-engine/internal/arena"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	ticks    metric.Int64Counter
	phases   metric.Int64Counter
	forced   metric.Int64Counter
	sessions metric.Int64ObservableGauge
}

// newMetrics uses the global OTel meter (no-op if not configured). active is
// read by the gauge callback.
func newMetrics(active func() int) (*metrics, error) {
	m := meter()
	var (
		out metrics
		err error
	)

	out.ticks, err = m.Int64Counter(
		"combat.ticks",
		metric.WithDescription("Timer ticks delivered to sessions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	out.phases, err = m.Int64Counter(
		"combat.phases_resolved",
		metric.WithDescription("Action phases resolved"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating phases counter: %w", err)
	}

	out.forced, err = m.Int64Counter(
		"combat.forced_actions",
		metric.WithDescription("Action phases resolved because the commit clock ran out"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating forced counter: %w", err)
	}

	out.sessions, err = m.Int64ObservableGauge(
		"combat.sessions.active",
		metric.WithDescription("Sessions currently running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(out.sessions, int64(active()))
			return nil
		},
		out.sessions,
	)
	if err != nil {
		return nil, fmt.Errorf("registering sessions callback: %w", err)
	}

	return &out, nil
}

func sessionAttr(id string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("session", id))
}
