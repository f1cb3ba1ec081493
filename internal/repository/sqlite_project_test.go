package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/rota/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *SQLiteProjectRepo {
	t.Helper()
	return NewSQLiteProjectRepo(testutil.NewTestDB(t))
}

func record(id, name string) *ProjectRecord {
	now := time.Now().UTC().Truncate(time.Second)
	return &ProjectRecord{
		ID: id, Name: name, Document: `{"staff":[]}`,
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, record("p-1", "summer-workshop")))

	byID, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "summer-workshop", byID.Name)
	assert.Equal(t, `{"staff":[]}`, byID.Document)

	byName, err := repo.GetByName(ctx, "summer-workshop")
	require.NoError(t, err)
	assert.Equal(t, "p-1", byName.ID)
}

func TestGetMissing(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByName(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateNameRejected(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, record("p-1", "workshop")))
	err := repo.Create(ctx, record("p-2", "workshop"))
	require.Error(t, err)
}

func TestListOrdersByCreation(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a := record("p-1", "first")
	b := record("p-2", "second")
	b.CreatedAt = a.CreatedAt.Add(time.Second)
	b.UpdatedAt = b.CreatedAt
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
}

func TestUpdateDocument(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, record("p-1", "workshop")))
	require.NoError(t, repo.UpdateDocument(ctx, "p-1", `{"staff":[{"id":"st-1"}]}`))

	got, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Contains(t, got.Document, "st-1")

	require.ErrorIs(t, repo.UpdateDocument(ctx, "missing", "{}"), ErrNotFound)
}

func TestRenameAndDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, record("p-1", "workshop")))
	require.NoError(t, repo.Rename(ctx, "p-1", "renamed"))

	got, err := repo.GetByName(ctx, "renamed")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)

	require.NoError(t, repo.Delete(ctx, "p-1"))
	_, err = repo.GetByID(ctx, "p-1")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "p-1"), ErrNotFound)
}
