package domain

import "github.com/google/uuid"

// UserID identifies the owner of fits. It is the subject of the bearer token.
type UserID uuid.UUID

// String returns the canonical UUID form.
func (id UserID) String() string { return uuid.UUID(id).String() }
