// Package v1handler implements the v1 HTTP API of the fit service.
package v1handler

import (
	"reflectometry/internal/api/specs/v1specs"
	"reflectometry/internal/fitjob"
)

type Deps struct {
	Service fitjob.Service
}

type Handler struct {
	deps Deps
}

// Ensure Handler implements v1specs.Handler.
var _ v1specs.Handler = (*Handler)(nil)

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}
