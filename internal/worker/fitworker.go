package worker

import (
	"context"
	"fmt"
	"time"

	"reflectometry/internal/fitjob"
	"reflectometry/pkg/domain"
	"reflectometry/pkg/logger"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// timeoutMargin is added to the run timeout so the service can store the
// outcome of a run that hit its own deadline before River cancels the job.
const timeoutMargin = 30 * time.Second

// FitWorker is a River worker that runs stored fits through a fitjob.Service.
//
// A run whose error would recur on every attempt (an invalid project, a
// constraint cycle, a fit deleted while queued) cancels the job; the service
// has already marked the fit failed. Other errors are returned and retried
// by River until the job's MaxAttempts, while the fit stays pending.
type FitWorker struct {
	river.WorkerDefaults[fitjob.JobArgs]

	svc     fitjob.Service
	timeout time.Duration
}

// NewFitWorker constructs a FitWorker. A zero timeout disables River's job
// timeout.
func NewFitWorker(svc fitjob.Service, timeout time.Duration) *FitWorker {
	return &FitWorker{svc: svc, timeout: timeout}
}

// Timeout overrides River's default job timeout.
func (w *FitWorker) Timeout(*river.Job[fitjob.JobArgs]) time.Duration {
	if w.timeout <= 0 {
		return -1
	}

	return w.timeout + timeoutMargin
}

// Work runs a single fit job.
func (w *FitWorker) Work(ctx context.Context, job *river.Job[fitjob.JobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Int("attempt", job.Attempt),
		zap.String("fitID", job.Args.FitID.String()))

	if err := w.svc.Run(ctx, domain.FitID(job.Args.FitID)); err != nil {
		if fitjob.Permanent(err) {
			logger.Warn(ctx, "fit cancelled", zap.Error(err))

			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "error in running fit", zap.Error(err))

		return fmt.Errorf("could not run fit: %w", err)
	}

	logger.Info(ctx, "fit finished successfully")

	return nil
}
