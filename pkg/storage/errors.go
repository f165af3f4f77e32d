package storage

import "reflectometry/pkg/serrors"

// Common errors returned by storage implementations.
var (
	// ErrAlreadyInTx is returned when an operation requiring a non-transactional
	// context is attempted while already inside a transaction.
	ErrAlreadyInTx = serrors.With(serrors.ErrInternal, "already in tx")
	// ErrNotInTx is returned when a transaction-specific operation is attempted
	// while not currently inside a transaction.
	ErrNotInTx = serrors.With(serrors.ErrInternal, "not in tx")
)
