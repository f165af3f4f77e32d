package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"reflectometry/pkg/domain"
	"reflectometry/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const (
	fitsTable = "fits"
)

func (p *PgSQL) StoreFits(ctx context.Context, fits ...domain.Fit) ([]domain.Fit, error) {
	if len(fits) == 0 {
		return nil, nil
	}

	pgFits, err := domainFitsToPg(fits)
	if err != nil {
		return nil, err
	}

	var result []PgFit
	if err := p.Builder.Insert(fitsTable).
		Rows(pgFits).
		Returning(&PgFit{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store fits into pg: %w", err)
	}

	return pgFitsToDomain(result)
}

// UpdatePendingFitByID applies updates to a pending fit. Attempts is
// incremented by 1 and updated_at is set.
func (p *PgSQL) UpdatePendingFitByID(ctx context.Context,
	id domain.FitID,
	updates storage.FitUpdates) (*domain.Fit, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"attempts":   goqu.L("attempts + 1"),
		"status":     string(updates.Status),
	}
	if updates.Status == domain.FitStatusFailed && updates.MaxAttempts > 0 {
		// stay pending until the last attempt
		rec["status"] = goqu.Case().
			When(goqu.L("attempts + 1 >= ?", updates.MaxAttempts), string(domain.FitStatusFailed)).
			Else(string(domain.FitStatusPending))
	}
	if updates.Result != nil {
		b, err := json.Marshal(updates.Result)
		if err != nil {
			return nil, fmt.Errorf("could not marshal result: %w", err)
		}

		rec["result"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgFit
	found, err := p.Builder.Update(fitsTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("status").Eq(string(domain.FitStatusPending)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgFit{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update pending fit in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// PendingFitByID returns a pending fit of any user.
func (p *PgSQL) PendingFitByID(ctx context.Context, id domain.FitID) (*domain.Fit, error) {
	return p.fitWhere(ctx,
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("status").Eq(string(domain.FitStatusPending)),
	)
}

// FitByID returns a fit by its ID, excluding soft-deleted rows.
func (p *PgSQL) FitByID(ctx context.Context, userID domain.UserID, id domain.FitID) (*domain.Fit, error) {
	return p.fitWhere(ctx,
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
	)
}

func (p *PgSQL) fitWhere(ctx context.Context, w ...exp.Expression) (*domain.Fit, error) {
	var row PgFit
	found, err := p.Builder.From(fitsTable).
		Where(append(w, goqu.I("deleted_at").IsNull())...).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch fit: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteFit performs a soft delete by setting deleted_at timestamp
// for a given fit id and user, returning the deleted record.
func (p *PgSQL) DeleteFit(ctx context.Context, userID domain.UserID, id domain.FitID) (*domain.Fit, error) {
	var row PgFit
	found, err := p.Builder.Update(fitsTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgFit{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete fit in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserFits returns fits of a user after cursor, ordered by created_at DESC,
// id DESC.
func (p *PgSQL) UserFits(ctx context.Context,
	userID domain.UserID,
	status domain.FitStatus,
	cursor storage.Cursor,
	limit uint) (storage.UserFits, error) {
	if limit == 0 {
		return storage.UserFits{}, nil
	}

	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.Or(
			goqu.I("created_at").Lt(cursor.CreatedAt),
			goqu.And(
				goqu.I("created_at").Eq(cursor.CreatedAt),
				goqu.I("id").Lt(uuid.UUID(cursor.ID)),
			),
		))
	}

	// fetch one extra to determine if there is a next page
	ds := p.Builder.From(fitsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1)

	var rows []PgFit
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserFits{}, fmt.Errorf("could not fetch user fits from pg: %w", err)
	}

	var nextCursor *storage.Cursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = &storage.Cursor{CreatedAt: last.CreatedAt, ID: domain.FitID(last.ID)}
	}

	fits, err := pgFitsToDomain(rows)
	if err != nil {
		return storage.UserFits{}, err
	}

	return storage.UserFits{
		Fits:       fits,
		NextCursor: nextCursor,
	}, nil
}
