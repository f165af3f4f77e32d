package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs. Inserting inside a transaction makes
// the job visible only once the transaction commits.
type JobStorage interface {
	// AddJob enqueues a job and reports whether it was inserted rather than
	// skipped as a unique duplicate.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
