package accumulator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	opsCounter   metric.Int64Counter
	opsHistogram metric.Float64Histogram
	undoCounter  metric.Int64Counter
	redoCounter  metric.Int64Counter
	errorCounter metric.Int64Counter
	resultGauge  metric.Int64Gauge
	depthGauge   metric.Int64Gauge
	sessionGauge metric.Int64Gauge
)

// InitMetrics registers custom OTel metric instruments for the accumulator
// domain. Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("accumulator")

	var err error

	opsCounter, err = meter.Int64Counter("accumulator.operations.total",
		metric.WithDescription("Total number of arithmetic operations applied"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("accumulator.operation.duration",
		metric.WithDescription("Duration of accumulator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	undoCounter, err = meter.Int64Counter("accumulator.undo.total",
		metric.WithDescription("Total number of undo operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating undo counter: %w", err)
	}

	redoCounter, err = meter.Int64Counter("accumulator.redo.total",
		metric.WithDescription("Total number of redo operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating redo counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("accumulator.errors.total",
		metric.WithDescription("Total number of accumulator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Int64Gauge("accumulator.last_result",
		metric.WithDescription("The accumulator result after the last operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	depthGauge, err = meter.Int64Gauge("accumulator.history_depth",
		metric.WithDescription("History depth of the last touched session"),
		metric.WithUnit("{step}"),
	)
	if err != nil {
		return fmt.Errorf("creating depth gauge: %w", err)
	}

	sessionGauge, err = meter.Int64Gauge("accumulator.sessions",
		metric.WithDescription("Number of live accumulator sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("creating session gauge: %w", err)
	}

	return nil
}
