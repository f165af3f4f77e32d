package fitjob

import (
	"context"

	"reflectometry/pkg/domain"
)

//go:generate mockgen -package mockfitjob -source=interface.go -destination=mock/mockfitjob.go *
type Service interface {
	Calculate(ctx context.Context, modelDoc []byte, q []float64, backend string) (*domain.FitCurve, error)
	Enqueue(ctx context.Context, userID domain.UserID, project []byte) (*domain.Fit, error)
	UserFits(ctx context.Context,
		userID domain.UserID,
		status domain.FitStatus,
		cursor string,
		limit uint) ([]domain.Fit, string, error)
	Result(ctx context.Context, userID domain.UserID, id domain.FitID) (*domain.Fit, error)
	Delete(ctx context.Context, userID domain.UserID, id domain.FitID) error
	Run(ctx context.Context, id domain.FitID) error
}
