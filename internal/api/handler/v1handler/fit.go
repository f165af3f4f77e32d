package v1handler

import (
	"context"

	"reflectometry/internal/api/specs/v1specs"
	"reflectometry/internal/fitjob"
	"reflectometry/pkg/domain"

	"github.com/google/uuid"
)

func DomainCurveToV1Specs(in domain.FitCurve) v1specs.Curve {
	return v1specs.Curve{
		Model: in.Model,
		Q:     in.Q,
		R:     in.R,
	}
}

func DomainFitResultToV1Specs(in *domain.FitResult) v1specs.FitResult {
	out := v1specs.FitResult{
		Parameters:  make([]v1specs.FitParameter, 0, len(in.Parameters)),
		Chi2:        v1specs.NewOptFloat64(in.Chi2),
		ReducedChi2: v1specs.NewOptFloat64(in.ReducedChi2),
		Iterations:  v1specs.NewOptInt(in.Iterations),
		Evaluations: v1specs.NewOptInt(in.Evaluations),
		Converged:   v1specs.NewOptBool(in.Converged),
		Curves:      make([]v1specs.Curve, 0, len(in.Curves)),
	}
	for _, p := range in.Parameters {
		fp := v1specs.FitParameter{
			Name:   p.Name,
			Value:  p.Value,
			Stderr: p.Stderr,
		}
		if p.Min != nil {
			fp.Min = v1specs.NewOptFloat64(*p.Min)
		}
		if p.Max != nil {
			fp.Max = v1specs.NewOptFloat64(*p.Max)
		}
		out.Parameters = append(out.Parameters, fp)
	}
	for _, c := range in.Curves {
		out.Curves = append(out.Curves, DomainCurveToV1Specs(c))
	}
	if in.Project != "" {
		out.Project = v1specs.NewOptString(in.Project)
	}

	return out
}

// DomainFitToV1Specs maps a fit. Listings leave out the project and the result.
func DomainFitToV1Specs(in *domain.Fit, detailed bool) *v1specs.Fit {
	out := &v1specs.Fit{
		ID:        uuid.UUID(in.ID),
		Name:      in.Name,
		Backend:   in.Backend,
		Status:    v1specs.FitStatus(in.Status),
		Attempts:  int(in.Attempts), //nolint: gosec
		CreatedAt: in.CreatedAt,
	}
	if in.LastError != "" {
		out.LastError = v1specs.NewOptString(in.LastError)
	}
	if !in.UpdatedAt.IsZero() {
		out.UpdatedAt = v1specs.NewOptDateTime(in.UpdatedAt)
	}
	if !detailed {
		return out
	}
	out.Project = v1specs.NewOptString(in.Project)
	if in.Status == domain.FitStatusCompleted {
		out.Result = v1specs.NewOptFitResult(DomainFitResultToV1Specs(&in.Result))
	}

	return out
}

// Calculate evaluates a model document and returns its curve.
func (h Handler) Calculate(ctx context.Context, req *v1specs.CalculateRequest) (*v1specs.Curve, error) {
	curve, err := h.deps.Service.Calculate(ctx, []byte(req.Model), req.Q, string(req.Backend.Or("")))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	out := DomainCurveToV1Specs(*curve)

	return &out, nil
}

// CreateFit schedules a fit of the project in the request.
func (h Handler) CreateFit(ctx context.Context, req *v1specs.CreateFitRequest) (*v1specs.Fit, error) {
	fit, err := h.deps.Service.Enqueue(ctx, GetUserIDFromContext(ctx), []byte(req.Project))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return DomainFitToV1Specs(fit, false), nil
}

// DeleteFit deletes a fit by ID.
func (h Handler) DeleteFit(ctx context.Context, params v1specs.DeleteFitParams) error {
	return h.deps.Service.Delete(ctx, GetUserIDFromContext(ctx), domain.FitID(params.ID)) //nolint: wrapcheck
}

// GetFit returns a fit with its result.
func (h Handler) GetFit(ctx context.Context, params v1specs.GetFitParams) (*v1specs.Fit, error) {
	fit, err := h.deps.Service.Result(ctx, GetUserIDFromContext(ctx), domain.FitID(params.ID))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return DomainFitToV1Specs(fit, true), nil
}

// ListFits returns a page of the user's fits.
func (h Handler) ListFits(ctx context.Context, params v1specs.ListFitsParams) (*v1specs.FitList, error) {
	fits, nextCursor, err := h.deps.Service.UserFits(ctx,
		GetUserIDFromContext(ctx),
		domain.FitStatus(params.Status.Value),
		params.Cursor.Value,
		uint(params.Limit.Or(fitjob.DefaultLimit))) //nolint: gosec
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	items := make([]v1specs.Fit, 0, len(fits))
	for i := range fits {
		items = append(items, *DomainFitToV1Specs(&fits[i], false))
	}

	cursor := v1specs.NilString{Null: true}
	if nextCursor != "" {
		cursor = v1specs.NewNilString(nextCursor)
	}

	return &v1specs.FitList{
		Items:      items,
		NextCursor: cursor,
	}, nil
}
