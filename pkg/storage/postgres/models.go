package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"reflectometry/pkg/domain"

	"github.com/google/uuid"
)

// PgFit is a row of the fits table.
type PgFit struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	Name    string          `db:"name"`
	Project string          `db:"project"`
	Backend string          `db:"backend"`
	Status  string          `db:"status"`
	Result  json.RawMessage `db:"result" goqu:"skipinsert"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgFit) ToDomain() (*domain.Fit, error) {
	var result domain.FitResult
	if len(p.Result) > 0 {
		if err := json.Unmarshal(p.Result, &result); err != nil {
			return nil, fmt.Errorf("could not unmarshal fit result: %w", err)
		}
	}

	return &domain.Fit{
		ID:        domain.FitID(p.ID),
		UserID:    domain.UserID(p.UserID),
		Name:      p.Name,
		Project:   p.Project,
		Backend:   p.Backend,
		Status:    domain.FitStatus(p.Status),
		Result:    result,
		Attempts:  p.Attempts,
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
		DeletedAt: p.DeletedAt.Time,
	}, nil
}

func (p *PgFit) FromDomain(fit domain.Fit) error {
	result, err := json.Marshal(fit.Result)
	if err != nil {
		return fmt.Errorf("could not marshal fit result: %w", err)
	}

	*p = PgFit{
		ID:       uuid.UUID(fit.ID),
		UserID:   uuid.UUID(fit.UserID),
		Name:     fit.Name,
		Project:  fit.Project,
		Backend:  fit.Backend,
		Status:   string(fit.Status),
		Result:   result,
		Attempts: fit.Attempts,
		LastError: sql.NullString{
			String: fit.LastError,
			Valid:  fit.LastError != "",
		},
		CreatedAt: fit.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  fit.UpdatedAt,
			Valid: !fit.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  fit.DeletedAt,
			Valid: !fit.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainFitsToPg(fits []domain.Fit) ([]PgFit, error) {
	out := make([]PgFit, len(fits))
	for i := range out {
		if err := out[i].FromDomain(fits[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgFitsToDomain(fits []PgFit) ([]domain.Fit, error) {
	out := make([]domain.Fit, 0, len(fits))
	for _, fit := range fits {
		d, err := fit.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
