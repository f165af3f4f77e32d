package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"reflectometry/pkg/domain"
	"reflectometry/pkg/storage"
	"reflectometry/pkg/storage/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// visible reports whether the fit can be read outside of any transaction.
func visible(t *testing.T, pg *postgres.PgSQL, f domain.Fit) bool {
	t.Helper()

	got, err := pg.FitByID(context.Background(), f.UserID, f.ID)
	require.NoError(t, err)

	return got != nil
}

func TestPgSQL_Begin_NestedFails(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = txStorage.Rollback() }()

	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)
}

func TestPgSQL_Commit_StoresFits(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	fits, err := txStorage.StoreFits(ctx, pendingFit(domain.UserID(uuid.New()), "committed"))
	require.NoError(t, err)
	require.Len(t, fits, 1)

	// not visible before commit
	require.False(t, visible(t, pg, fits[0]))

	require.NoError(t, txStorage.Commit())
	require.True(t, visible(t, pg, fits[0]))
}

func TestPgSQL_Rollback_DiscardsFits(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	fits, err := txStorage.StoreFits(ctx, pendingFit(domain.UserID(uuid.New()), "discarded"))
	require.NoError(t, err)

	require.NoError(t, txStorage.Rollback())
	require.False(t, visible(t, pg, fits[0]))
}

func TestPgSQL_WithTx_FitAndJob(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	migrateRiver(t, pg)

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	var stored domain.Fit
	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		fits, err := s.StoreFits(ctx, pendingFit(userID, "queued"))
		if err != nil {
			return err
		}
		stored = fits[0]
		_, err = s.AddJob(ctx, fitJobArgs{FitID: uuid.UUID(stored.ID)}, nil)

		return err
	})
	require.NoError(t, err)
	require.True(t, visible(t, pg, stored))

	var dropped domain.Fit
	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		fits, err := s.StoreFits(ctx, pendingFit(userID, "dropped"))
		if err != nil {
			return err
		}
		dropped = fits[0]

		return errors.New("boom")
	})
	require.Error(t, err)
	require.False(t, visible(t, pg, dropped))
}
