// Package storage defines how fit runs and their jobs are persisted, together
// with transaction management. pkg/storage/postgres implements it.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage groups every storage capability of the fit service.
type AllStorage interface {
	FitStorage
	JobStorage
}

// TxStorage is a storage handle bound to a transaction. It is unusable after
// Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is the root storage handle.
type Storage interface {
	AllStorage

	// Close releases the connection pool.
	Close() error

	// Begin starts a transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb inside a transaction, committing when cb returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
