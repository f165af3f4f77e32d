package fitjob

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"reflectometry/internal/config"
	"reflectometry/pkg/calculator"
	"reflectometry/pkg/description"
	"reflectometry/pkg/domain"
	"reflectometry/pkg/fitting"
	"reflectometry/pkg/logger"
	"reflectometry/pkg/serrors"
	"reflectometry/pkg/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultLimit is the page size used when a listing asks for none.
	DefaultLimit = 20
	// MaxLimit caps the page size of a listing.
	MaxLimit = 100
)

// RunObserver records the outcome of fit runs.
type RunObserver interface {
	Observe(ctx context.Context, outcome string, d time.Duration)
}

type nopRunObserver struct{}

func (nopRunObserver) Observe(context.Context, string, time.Duration) {}

// Options configure how fits are calculated, enqueued and retried.
type Options struct {
	// MaxAttempts is the maximum number of attempts the background worker should
	// make when running a fit before marking it failed.
	MaxAttempts int
	// Timeout bounds a single run. Zero means no bound.
	Timeout time.Duration
	// Backend is used when a document names no engine.
	Backend calculator.Backend
	// Smearing is used when a project names no smearing mode.
	Smearing calculator.SmearingMode
	// CacheSize bounds the curve cache of every calculator.
	CacheSize int
	// Fit holds the minimizer defaults. Project values override them.
	Fit fitting.Options
	// Calculator receives cache and engine events.
	Calculator calculator.Observer
	// Runs receives run outcomes.
	Runs RunObserver
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) (Options, error) {
	backend, err := calculator.ParseBackend(cfg.Calculator.Engine)
	if err != nil {
		return Options{}, err
	}
	smearing, err := calculator.ParseSmearingMode(cfg.Calculator.Smearing)
	if err != nil {
		return Options{}, err
	}

	return Options{
		MaxAttempts: cfg.Fitting.MaxAttempts,
		Timeout:     cfg.Fitting.Timeout,
		Backend:     backend,
		Smearing:    smearing,
		CacheSize:   cfg.Calculator.CacheSize,
		Fit: fitting.Options{
			MaxIterations: cfg.Fitting.MaxIterations,
			Tolerance:     cfg.Fitting.Tolerance,
		},
	}, nil
}

// Permanent reports whether err will recur on every retry of the same fit.
func Permanent(err error) bool {
	return serrors.IsAny(err,
		serrors.ErrValidation,
		serrors.ErrConfiguration,
		serrors.ErrConstraintCycle,
		serrors.ErrCalculation,
		serrors.ErrNotFound)
}

// service is the concrete implementation of the Service interface.
// It coordinates persistence with the storage layer and job enqueueing.
type service struct {
	options Options
	storage storage.Storage
	tracer  trace.Tracer
}

// New creates a new Service backed by the provided storage and configured
// with the given options.
func New(storage storage.Storage, options Options) Service {
	if options.Backend == "" {
		options.Backend = calculator.BackendAbeles
	}
	if options.Runs == nil {
		options.Runs = nopRunObserver{}
	}

	return &service{
		options: options,
		storage: storage,
		tracer:  otel.Tracer("reflectometry/internal/fitjob"),
	}
}

// newCalculator creates a calculator, falling back to the configured backend
// and smearing mode for empty values.
func (o Options) newCalculator(backend calculator.Backend, smearing calculator.SmearingMode) (*calculator.Calculator, error) {
	if backend == "" {
		backend = o.Backend
	}
	if backend == "" {
		backend = calculator.BackendAbeles
	}
	if smearing == "" {
		smearing = o.Smearing
	}

	return calculator.NewFromBackend(backend,
		calculator.WithSmearing(smearing),
		calculator.WithCacheSize(o.CacheSize),
		calculator.WithObserver(o.Calculator))
}

// Calculate evaluates a model document at q. An empty q falls back to the
// points of the model's bound data.
func (s *service) Calculate(ctx context.Context,
	modelDoc []byte,
	q []float64,
	backend string) (*domain.FitCurve, error) {
	m, err := description.DecodeModel(modelDoc)
	if err != nil {
		return nil, err
	}
	if len(q) == 0 {
		if m.Data() == nil {
			return nil, serrors.With(serrors.ErrBadRequest, "q is required when the model has no data")
		}
		q = m.Data().Q
	}

	var b calculator.Backend
	if backend != "" {
		if b, err = calculator.ParseBackend(backend); err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid backend")
		}
	}
	calc, err := s.options.newCalculator(b, "")
	if err != nil {
		return nil, err
	}

	r, err := calc.Calculate(ctx, m, q)
	if err != nil {
		return nil, err
	}

	return &domain.FitCurve{Model: m.Name(), Q: q, R: r}, nil
}

// collection builds the fit collection of a decoded project.
func (o Options) collection(p *description.FitProject) (*fitting.Collection, error) {
	calc, err := o.newCalculator(p.Backend, p.Smearing)
	if err != nil {
		return nil, err
	}
	coll, err := fitting.NewCollection(calc, p.Models...)
	if err != nil {
		return nil, err
	}
	for i, w := range p.Weights {
		if err := coll.WithWeight(i, w); err != nil {
			return nil, err
		}
	}

	return coll, nil
}

// Enqueue validates a project document, stores it as a pending fit of the
// user and adds a job that runs it.
func (s *service) Enqueue(ctx context.Context, userID domain.UserID, project []byte) (*domain.Fit, error) {
	p, err := description.DecodeProject(project)
	if err != nil {
		return nil, err
	}
	coll, err := s.options.collection(p)
	if err != nil {
		return nil, err
	}
	if len(coll.FreeParameters()) == 0 {
		return nil, serrors.With(serrors.ErrConfiguration, "project %q has no free parameters", p.Name)
	}
	backend := p.Backend
	if backend == "" {
		backend = s.options.Backend
	}

	var fit *domain.Fit
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreFits(ctx, domain.Fit{
			UserID:  userID,
			Name:    p.Name,
			Project: string(project),
			Backend: string(backend),
			Status:  domain.FitStatusPending,
		})
		if err != nil {
			return fmt.Errorf("could not store fit: %w", err)
		}
		fit = &res[0]

		if _, err := tx.AddJob(ctx, JobArgs{
			FitID:       uuid.UUID(fit.ID),
			maxAttempts: s.options.MaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not enqueue fit: %w", err)
	}

	return fit, nil
}

// UserFits returns a page of fits for the given user filtered by status.
// The cursor is the creation time of the last fit seen, RFC3339 with
// nanoseconds, and its ID joined by an underscore.
func (s *service) UserFits(ctx context.Context,
	userID domain.UserID,
	status domain.FitStatus,
	cursor string,
	limit uint) ([]domain.Fit, string, error) {
	switch status {
	case "", domain.FitStatusPending, domain.FitStatusCompleted, domain.FitStatusFailed:
	default:
		return nil, "", serrors.With(serrors.ErrBadRequest, "unknown status %q", string(status))
	}

	var c storage.Cursor
	if cursor != "" {
		var err error
		if c, err = parseCursor(cursor); err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	page, err := s.storage.UserFits(ctx, userID, status, c, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user fits: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = formatCursor(*page.NextCursor)
	}

	return page.Fits, next, nil
}

func formatCursor(c storage.Cursor) string {
	return c.CreatedAt.UTC().Format(time.RFC3339Nano) + "_" + uuid.UUID(c.ID).String()
}

func parseCursor(s string) (storage.Cursor, error) {
	ts, id, ok := strings.Cut(s, "_")
	if !ok {
		return storage.Cursor{}, fmt.Errorf("missing fit id in %q", s)
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return storage.Cursor{}, err
	}
	fitID, err := uuid.Parse(id)
	if err != nil {
		return storage.Cursor{}, err
	}

	return storage.Cursor{CreatedAt: t, ID: domain.FitID(fitID)}, nil
}

// Result fetches a single fit by ID for the given user.
func (s *service) Result(ctx context.Context, userID domain.UserID, id domain.FitID) (*domain.Fit, error) {
	res, err := s.storage.FitByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("could not get fit: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "fit not found")
	}

	return res, nil
}

// Delete removes a fit belonging to the given user. A job still queued for
// it finds no pending fit and is cancelled by the worker.
func (s *service) Delete(ctx context.Context, userID domain.UserID, id domain.FitID) error {
	res, err := s.storage.DeleteFit(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("could not delete fit: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "fit not found")
	}

	return nil
}

// Run fits a pending fit and stores the outcome. Errors that would recur
// fail the fit at once, others leave it pending until MaxAttempts runs.
func (s *service) Run(ctx context.Context, id domain.FitID) error {
	ctx, span := s.tracer.Start(ctx, "fitjob.Run",
		trace.WithAttributes(attribute.String("fit.id", id.String())))
	defer span.End()

	fit, err := s.storage.PendingFitByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get pending fit: %w", err)
	}
	if fit == nil {
		return serrors.With(serrors.ErrNotFound, "fit %s is not pending", id)
	}
	ctx = logger.WithFields(ctx,
		zap.String("fitID", id.String()),
		zap.String("userID", fit.UserID.String()),
		zap.String("backend", fit.Backend))

	start := time.Now()
	res, runErr := s.fit(ctx, fit)
	elapsed := time.Since(start)

	// the run may have hit its deadline; the outcome is stored regardless.
	storeCtx := context.WithoutCancel(ctx)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		s.options.Runs.Observe(ctx, "failed", elapsed)

		msg := runErr.Error()
		updates := storage.FitUpdates{
			Status:      domain.FitStatusFailed,
			LastError:   &msg,
			MaxAttempts: s.options.MaxAttempts,
		}
		if Permanent(runErr) {
			updates.MaxAttempts = 0
		}
		if _, err := s.storage.UpdatePendingFitByID(storeCtx, id, updates); err != nil {
			logger.Error(ctx, "could not store fit failure", zap.Error(err))
		}
		logger.Warn(ctx, "fit run failed", zap.Error(runErr), zap.Duration("elapsed", elapsed))

		return runErr
	}

	cleared := ""
	updated, err := s.storage.UpdatePendingFitByID(storeCtx, id, storage.FitUpdates{
		Status:    domain.FitStatusCompleted,
		Result:    res,
		LastError: &cleared,
	})
	if err != nil {
		return fmt.Errorf("could not store fit result: %w", err)
	}
	if updated == nil {
		logger.Warn(ctx, "fit was deleted while running")
	}
	s.options.Runs.Observe(ctx, "completed", elapsed)
	span.SetAttributes(attribute.Float64("fit.chi2", res.Chi2))

	return nil
}

func (s *service) fit(ctx context.Context, fit *domain.Fit) (*domain.FitResult, error) {
	opts := s.options
	if fit.Backend != "" {
		b, err := calculator.ParseBackend(fit.Backend)
		if err != nil {
			return nil, err
		}
		opts.Backend = b
	}

	return Fit(ctx, []byte(fit.Project), opts)
}

// Fit decodes a project document, fits it and returns the result together
// with the project encoded at the fitted values. An engine named by the
// project wins over options.Backend.
func Fit(ctx context.Context, project []byte, options Options) (*domain.FitResult, error) {
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	p, err := description.DecodeProject(project)
	if err != nil {
		return nil, err
	}
	coll, err := options.collection(p)
	if err != nil {
		return nil, err
	}

	opts := options.Fit
	if p.Options.MaxIterations > 0 {
		opts.MaxIterations = p.Options.MaxIterations
	}
	if p.Options.Tolerance > 0 {
		opts.Tolerance = p.Options.Tolerance
	}
	out, err := fitting.NewFitter(coll, opts).Fit(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := description.EncodeProject(p)
	if err != nil {
		return nil, err
	}

	return toResult(out, doc), nil
}

func toResult(r *fitting.Result, project []byte) *domain.FitResult {
	res := &domain.FitResult{
		Chi2:        r.Chi2,
		ReducedChi2: r.ReducedChi2,
		Iterations:  r.Iterations,
		Evaluations: r.Evaluations,
		Converged:   r.Converged,
		Project:     string(project),
	}
	for _, p := range r.Parameters {
		res.Parameters = append(res.Parameters, domain.FitParameter{
			Name:   p.Name,
			Value:  p.Value,
			Stderr: p.Stderr,
			Min:    bound(p.Min),
			Max:    bound(p.Max),
		})
	}
	for _, c := range r.Curves {
		res.Curves = append(res.Curves, domain.FitCurve(c))
	}

	return res
}

func bound(v float64) *float64 {
	if math.IsInf(v, 0) {
		return nil
	}

	return &v
}
