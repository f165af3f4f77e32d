package calculator

import (
	"context"
	"math"
	"time"

	"reflectometry/pkg/logger"
	"reflectometry/pkg/model"
	"reflectometry/pkg/param"
	"reflectometry/pkg/serrors"

	"go.uber.org/zap"
)

// Observer receives calculator events. Implementations must be cheap; they
// are called on every calculation.
type Observer interface {
	CacheHit(engine string)
	CacheMiss(engine string)
	EngineDuration(engine string, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string)                      {}
func (nopObserver) CacheMiss(string)                     {}
func (nopObserver) EngineDuration(string, time.Duration) {}

// Stats are the cache counters of a Calculator.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Calculator computes model reflectivity with one engine. It keeps an
// unsynchronized cache and must not be shared between goroutines.
type Calculator struct {
	engine   Engine
	smearing SmearingMode
	cache    *curveCache
	observer Observer
	hits     int
	misses   int
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithSmearing selects the smearing mode. The default is SmearInterface.
func WithSmearing(mode SmearingMode) Option {
	return func(c *Calculator) { c.smearing = mode }
}

// WithCacheSize bounds the number of cached curves. Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(c *Calculator) { c.cache = newCurveCache(n) }
}

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option {
	return func(c *Calculator) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates a Calculator around engine.
func New(engine Engine, opts ...Option) (*Calculator, error) {
	if engine == nil {
		return nil, serrors.With(serrors.ErrConfiguration, "calculator needs an engine")
	}

	c := &Calculator{
		engine:   engine,
		smearing: SmearInterface,
		cache:    newCurveCache(DefaultCacheSize),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, err := ParseSmearingMode(string(c.smearing)); err != nil {
		return nil, err
	}
	if c.cache.size < 0 {
		return nil, serrors.With(serrors.ErrConfiguration, "cache size must not be negative, got %d", c.cache.size)
	}

	return c, nil
}

// NewFromBackend creates a Calculator around a built-in engine.
func NewFromBackend(b Backend, opts ...Option) (*Calculator, error) {
	e, err := NewEngine(b)
	if err != nil {
		return nil, err
	}

	return New(e, opts...)
}

// Engine returns the engine name.
func (c *Calculator) Engine() string { return c.engine.Name() }

// Smearing returns the smearing mode.
func (c *Calculator) Smearing() SmearingMode { return c.smearing }

// Stats returns the cache counters.
func (c *Calculator) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Entries: c.cache.len()}
}

// Reset drops every cached curve and zeroes the counters.
func (c *Calculator) Reset() {
	c.cache.reset()
	c.hits, c.misses = 0, 0
}

// Calculate returns scale·R(q) + background for m at every q. q may be
// unsorted but must be finite and non-negative. Constraints reachable from m
// are resolved first.
func (c *Calculator) Calculate(ctx context.Context, m *model.Model, q []float64) ([]float64, error) {
	curve, err := c.Unscaled(ctx, m, q)
	if err != nil {
		return nil, err
	}

	scale, bkg := m.Scale().Value(), m.Background().Value()
	out := make([]float64, len(curve))
	for i, r := range curve {
		out[i] = scale*r + bkg
	}
	if err := checkCurve(out); err != nil {
		return nil, c.fail(ctx, m, err)
	}

	return out, nil
}

// Unscaled returns the smeared curve of m before scale and background. The
// returned slice is a copy of the cached curve.
func (c *Calculator) Unscaled(ctx context.Context, m *model.Model, q []float64) ([]float64, error) {
	if m == nil {
		return nil, serrors.With(serrors.ErrValidation, "cannot calculate a nil model")
	}
	if err := model.ValidateQ(q); err != nil {
		return nil, err
	}
	if err := param.Resolve(m.Parameters()); err != nil {
		return nil, err
	}
	if len(q) == 0 {
		return []float64{}, nil
	}

	slabs := m.Sample().Slabs()
	widths, err := m.Widths(q)
	if err != nil {
		return nil, err
	}

	engine := c.engine.Name()
	key := fingerprint(engine, c.smearing, slabs, widths, q)
	if curve, ok := c.cache.get(key); ok {
		c.hits++
		c.observer.CacheHit(engine)

		return append([]float64(nil), curve...), nil
	}
	c.misses++
	c.observer.CacheMiss(engine)

	start := time.Now()
	var curve []float64
	if re, ok := c.engine.(ResolutionEngine); ok && c.smearing == SmearEngine {
		curve, err = c.sorted(q, widths, func(sq, sw []float64) ([]float64, error) {
			return re.SmearedReflectivity(ctx, slabs, sq, sw)
		})
	} else {
		curve, err = c.smear(ctx, slabs, q, widths)
	}
	c.observer.EngineDuration(engine, time.Since(start))
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}

		return nil, c.fail(ctx, m, err)
	}
	if err := checkLen(curve, len(q)); err != nil {
		return nil, c.fail(ctx, m, err)
	}
	if err := checkCurve(curve); err != nil {
		return nil, c.fail(ctx, m, err)
	}

	c.cache.put(key, curve)
	if logger.IsDebug(ctx) {
		logger.Debug(ctx, "calculated curve",
			zap.String("model", m.Name()),
			zap.String("engine", engine),
			zap.Int("points", len(q)),
			zap.Duration("took", time.Since(start)))
	}

	return append([]float64(nil), curve...), nil
}

func (c *Calculator) fail(ctx context.Context, m *model.Model, err error) error {
	logger.Warn(ctx, "calculation failed",
		zap.String("model", m.Name()),
		zap.String("engine", c.engine.Name()),
		zap.Error(err))

	return serrors.Wrap(serrors.ErrCalculation, &CalculationError{Model: m, Engine: c.engine.Name(), Err: err},
		"could not calculate model %q", m.Name())
}

func checkCurve(curve []float64) error {
	for i, v := range curve {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return serrors.With(serrors.ErrCalculation, "non-finite reflectivity at point %d", i)
		}
		if v < 0 {
			return serrors.With(serrors.ErrCalculation, "negative reflectivity %g at point %d", v, i)
		}
	}

	return nil
}
