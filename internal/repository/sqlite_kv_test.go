package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/milestones/internal/db"
	"github.com/alexanderramin/milestones/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_SetAndGet(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyCurrentProjectID, "default"))
	got, err := repo.Get(ctx, KeyCurrentProjectID)
	require.NoError(t, err)
	assert.Equal(t, "default", got)
}

func TestKVRepo_SetOverwrites(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyProjectLabel, "name"))
	require.NoError(t, repo.Set(ctx, KeyProjectLabel, "书名"))

	got, err := repo.Get(ctx, KeyProjectLabel)
	require.NoError(t, err)
	assert.Equal(t, "书名", got)

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyProjectLabel}, keys)
}

func TestKVRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), KeyProjects)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKVRepo_DeleteAndClear(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyProjects, "{}"))
	require.NoError(t, repo.Set(ctx, KeyCurrentProjectID, "default"))
	require.NoError(t, repo.Set(ctx, KeyProjectLabel, "name"))

	require.NoError(t, repo.Delete(ctx, KeyProjectLabel))
	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyCurrentProjectID, KeyProjects}, keys)

	// Deleting a missing key is not an error.
	require.NoError(t, repo.Delete(ctx, "nope"))

	require.NoError(t, repo.Clear(ctx))
	keys, err = repo.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestKVRepo_WithinTxRollback(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteKVRepo(database)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyCurrentProjectID, "default"))

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := NewSQLiteKVRepo(tx)
		if err := txRepo.Set(ctx, KeyCurrentProjectID, "other"); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	got, err := repo.Get(ctx, KeyCurrentProjectID)
	require.NoError(t, err)
	assert.Equal(t, "default", got)
}
