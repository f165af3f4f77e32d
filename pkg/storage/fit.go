package storage

import (
	"context"
	"time"

	"reflectometry/pkg/domain"
)

// FitUpdates describes the fields written when a fit run finishes.
type FitUpdates struct {
	// Status is the new status of the fit.
	Status domain.FitStatus
	// Result, when provided, replaces the stored result payload.
	Result *domain.FitResult
	// LastError, when provided, sets the last error text. An empty string
	// clears it.
	LastError *string
	// MaxAttempts guards a Failed status: the fit only becomes Failed once the
	// incremented attempts reach MaxAttempts, otherwise it stays Pending.
	// A value <= 0 disables the guard.
	MaxAttempts int
}

// Cursor is the position of the last fit of a page in the created_at DESC,
// id DESC order. The zero Cursor starts at the newest fit.
type Cursor struct {
	CreatedAt time.Time
	ID        domain.FitID
}

// IsZero reports whether c is the start of the listing.
func (c Cursor) IsZero() bool { return c.CreatedAt.IsZero() }

// UserFits is a page of fits of one user.
type UserFits struct {
	Fits []domain.Fit
	// NextCursor is the position to pass for the next page, nil on the last
	// page.
	NextCursor *Cursor
}

// FitStorage persists fit runs. Soft-deleted fits are invisible to every
// read and update.
type FitStorage interface {
	// StoreFits inserts fits and returns the stored rows including generated fields.
	StoreFits(ctx context.Context, fits ...domain.Fit) ([]domain.Fit, error)
	// UpdatePendingFitByID applies updates to a pending fit, increments its
	// attempts and returns the updated row, or nil when no pending fit matched.
	UpdatePendingFitByID(ctx context.Context, id domain.FitID, updates FitUpdates) (*domain.Fit, error)
	// PendingFitByID returns a pending fit regardless of its owner, or nil.
	PendingFitByID(ctx context.Context, id domain.FitID) (*domain.Fit, error)
	// FitByID returns a fit of the user, or nil.
	FitByID(ctx context.Context, userID domain.UserID, id domain.FitID) (*domain.Fit, error)
	// UserFits returns fits of the user after cursor, newest first. A
	// non-empty status filters the page.
	UserFits(ctx context.Context,
		userID domain.UserID,
		status domain.FitStatus,
		cursor Cursor,
		limit uint) (UserFits, error)
	// DeleteFit soft deletes a fit of the user and returns it, or nil.
	DeleteFit(ctx context.Context, userID domain.UserID, id domain.FitID) (*domain.Fit, error)
}
