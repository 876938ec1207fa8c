package repository

import (
	"context"
	"path/filepath"
	"testing"

	"figuremaker/internal/figure/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrations = "../../../migrations/001_init_documents.sql"

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "figures.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background(), migrations))
	return repo
}

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	doc := &models.StoredDocument{Name: "plan", Elements: 2, Data: []byte(`{"elements":[]}`)}
	require.NoError(t, repo.Save(ctx, doc))
	require.NotEmpty(t, doc.ID)

	got, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "plan", got.Name)
	assert.Equal(t, 2, got.Elements)
	assert.Equal(t, doc.Data, got.Data)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	doc := &models.StoredDocument{ID: "fixed", Name: "a", Data: []byte("1")}
	require.NoError(t, repo.Save(ctx, doc))
	doc.Name = "b"
	doc.Data = []byte("2")
	require.NoError(t, repo.Save(ctx, doc))

	got, err := repo.Get(ctx, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, []byte("2"), got.Data)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"one", "two"} {
		require.NoError(t, repo.Save(ctx, &models.StoredDocument{Name: name, Data: []byte("{}")}))
	}
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].Data)

	require.NoError(t, repo.Delete(ctx, list[0].ID))
	_, err = repo.Get(ctx, list[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, list[0].ID), ErrNotFound)
}

func TestInitMissingMigration(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, New(db).Init(context.Background(), "does/not/exist.sql"))
}
