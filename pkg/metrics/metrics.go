// Package metrics exposes calculator and fit service instruments through
// OpenTelemetry, exported in the Prometheus format.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300} //nolint: gochecknoglobals

const meterName = "reflectometry"

// NewMeterProvider creates a meter provider whose instruments are served by
// the Prometheus registerer reg.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Calculator records cache and engine activity of calculators. It
// implements calculator.Observer.
type Calculator struct {
	hits     metric.Int64Counter
	misses   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewCalculator creates the calculator instruments on mp.
func NewCalculator(mp metric.MeterProvider) (*Calculator, error) {
	meter := mp.Meter(meterName)

	hits, err := meter.Int64Counter("calculator.cache.hits",
		metric.WithDescription("curves served from the calculator cache"))
	if err != nil {
		return nil, fmt.Errorf("could not create cache hits counter: %w", err)
	}
	misses, err := meter.Int64Counter("calculator.cache.misses",
		metric.WithDescription("curves computed by an engine"))
	if err != nil {
		return nil, fmt.Errorf("could not create cache misses counter: %w", err)
	}
	duration, err := meter.Float64Histogram("calculator.engine.duration",
		metric.WithUnit("s"),
		metric.WithDescription("time spent in calculation engines"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create engine duration histogram: %w", err)
	}

	return &Calculator{hits: hits, misses: misses, duration: duration}, nil
}

func engineAttr(engine string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("engine", engine))
}

func (c *Calculator) CacheHit(engine string) {
	c.hits.Add(context.Background(), 1, engineAttr(engine))
}

func (c *Calculator) CacheMiss(engine string) {
	c.misses.Add(context.Background(), 1, engineAttr(engine))
}

func (c *Calculator) EngineDuration(engine string, d time.Duration) {
	c.duration.Record(context.Background(), d.Seconds(), engineAttr(engine))
}

// Fits records finished fit runs.
type Fits struct {
	runs     metric.Int64Counter
	duration metric.Float64Histogram
}

// NewFits creates the fit run instruments on mp.
func NewFits(mp metric.MeterProvider) (*Fits, error) {
	meter := mp.Meter(meterName)

	runs, err := meter.Int64Counter("fits.runs",
		metric.WithDescription("finished fit runs by outcome"))
	if err != nil {
		return nil, fmt.Errorf("could not create fit runs counter: %w", err)
	}
	duration, err := meter.Float64Histogram("fits.duration",
		metric.WithUnit("s"),
		metric.WithDescription("wall time of fit runs"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create fit duration histogram: %w", err)
	}

	return &Fits{runs: runs, duration: duration}, nil
}

// Observe records one finished run with its outcome.
func (f *Fits) Observe(ctx context.Context, outcome string, d time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	f.runs.Add(ctx, 1, attrs)
	f.duration.Record(ctx, d.Seconds(), attrs)
}
