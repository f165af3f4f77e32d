package domain

import (
	"time"

	"github.com/google/uuid"
)

// FitID uniquely identifies a fit run.
type FitID uuid.UUID

// String returns the canonical UUID form.
func (id FitID) String() string { return uuid.UUID(id).String() }

// FitStatus represents the lifecycle state of a fit.
type FitStatus string

const (
	// FitStatusPending indicates the fit has been enqueued but not finished yet.
	FitStatusPending FitStatus = "PENDING"
	// FitStatusCompleted indicates the fit finished and a result is available.
	FitStatusCompleted FitStatus = "COMPLETED"
	// FitStatusFailed indicates the fit ended with an error; see LastError and Attempts.
	FitStatusFailed FitStatus = "FAILED"
)

// FitParameter is the fitted state of one free parameter.
type FitParameter struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Stderr float64 `json:"stderr"`
	// Min and Max are nil for unbounded sides.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// FitCurve is the calculated curve of one model at its data points.
type FitCurve struct {
	Model string    `json:"model"`
	Q     []float64 `json:"q"`
	R     []float64 `json:"r"`
}

// FitResult is the outcome of a finished fit.
type FitResult struct {
	Parameters  []FitParameter `json:"parameters,omitempty"`
	Chi2        float64        `json:"chi2"`
	ReducedChi2 float64        `json:"reducedChi2"`
	Iterations  int            `json:"iterations"`
	Evaluations int            `json:"evaluations"`
	Converged   bool           `json:"converged"`
	Curves      []FitCurve     `json:"curves,omitempty"`
	// Project is the project document with the fitted parameter values.
	Project string `json:"project,omitempty"`
}

// Fit is a fit request of a user and its current state.
type Fit struct {
	// ID is the unique identifier of the fit.
	ID FitID `json:"id"`
	// UserID is the identifier of the user who requested the fit.
	UserID UserID `json:"userId"`

	// Name is the project name.
	Name string `json:"name"`
	// Project is the YAML project document to fit.
	Project string `json:"project"`
	// Backend is the calculation engine used by the run.
	Backend string `json:"backend"`
	// Status is the current lifecycle state of the fit.
	Status FitStatus `json:"status"`
	// Result holds the outcome once Status is COMPLETED.
	Result FitResult `json:"result"`

	// Attempts is the number of times the fit was run.
	Attempts uint `json:"attempts"`
	// LastError stores the most recent error message.
	LastError string `json:"lastError,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks soft-deleted fits; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
