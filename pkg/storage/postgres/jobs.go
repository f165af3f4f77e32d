package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"reflectometry/pkg/logger"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"
)

// insertOnly builds a river client that is never started. It only inserts.
func insertOnly(db *sql.DB) (*river.Client[*sql.Tx], error) {
	c, err := river.NewClient(riverdatabasesql.New(db), &river.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	return c, nil
}

// AddJob enqueues a River job. Inside a transaction the job is inserted with
// InsertTx and becomes visible on commit. It reports false when river skipped
// the job as a duplicate of a unique job.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	var res *rivertype.JobInsertResult
	switch db := p.DB.(type) {
	case *sql.Tx:
		c, err := insertOnly(nil)
		if err != nil {
			return false, err
		}
		if res, err = c.InsertTx(ctx, db, args, opts); err != nil {
			return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
		}
	case *sql.DB:
		c, err := insertOnly(db)
		if err != nil {
			return false, err
		}
		if res, err = c.Insert(ctx, args, opts); err != nil {
			return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
		}
	default:
		return false, fmt.Errorf("unsupported executor %T", p.DB)
	}

	if res.UniqueSkippedAsDuplicate {
		logger.Debug(ctx, "job skipped as duplicate",
			zap.String("kind", args.Kind()),
			zap.Int64("jobId", res.Job.ID))
	}

	return !res.UniqueSkippedAsDuplicate, nil
}
