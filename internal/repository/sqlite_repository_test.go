package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virginia-ai/backend/internal/database"
	"virginia-ai/backend/internal/model"
	"virginia-ai/backend/internal/repository"
)

// setupRepo opens a real SQLite database in a per-test temp directory and
// runs the embedded migrations against it.
func setupRepo(t *testing.T) (repository.Repository, *sql.DB) {
	t.Helper()

	db, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	return repository.NewSQLiteRepository(db), db
}

func TestMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := database.InitDB(path)
	require.NoError(t, err)

	repo := repository.NewSQLiteRepository(db)
	ctx := context.Background()
	file := &model.StoredFile{ID: "f1", Name: "a.txt", Size: 5, MimeType: model.MimePlain, Content: []byte("alpha")}
	require.NoError(t, repo.SaveFile(ctx, file))
	require.NoError(t, db.Close())

	// Re-opening an up-to-date database must be a no-op that keeps data.
	db, err = database.InitDB(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	got, err := repository.NewSQLiteRepository(db).GetFile(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, file, got)
}

func TestSQLiteRepository_FileRoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	file := &model.StoredFile{
		ID:       "file-1",
		Name:     "Policy.pdf",
		Size:     4,
		MimeType: model.MimePDF,
		Content:  []byte{0x25, 0x50, 0x44, 0x46},
	}

	require.NoError(t, repo.SaveFile(ctx, file))

	got, err := repo.GetFile(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, file, got)
}

func TestSQLiteRepository_GetFile_NotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.GetFile(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSQLiteRepository_SaveFile_Overwrites(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	file := &model.StoredFile{ID: "f1", Name: "a.txt", Size: 5, MimeType: model.MimePlain, Content: []byte("alpha")}
	require.NoError(t, repo.SaveFile(ctx, file))

	file.Name = "b.txt"
	file.Content = []byte("beta!")
	require.NoError(t, repo.SaveFile(ctx, file))

	got, err := repo.GetFile(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "b.txt", got.Name)
	assert.Equal(t, []byte("beta!"), got.Content)

	files, err := repo.ListFiles(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestSQLiteRepository_DeleteFile_Idempotent(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	file := &model.StoredFile{ID: "f1", Name: "a.txt", Size: 5, MimeType: model.MimePlain, Content: []byte("alpha")}
	require.NoError(t, repo.SaveFile(ctx, file))

	assert.NoError(t, repo.DeleteFile(ctx, "f1"))
	assert.NoError(t, repo.DeleteFile(ctx, "f1"))
	assert.NoError(t, repo.DeleteFile(ctx, "never-existed"))

	_, err := repo.GetFile(ctx, "f1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSQLiteRepository_ThreadRoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	thread := &model.ChatThread{
		ID:    "t1",
		Title: "What is covered...",
		Messages: []model.Message{
			{ID: "m1", Role: "user", Text: "What is covered?", Timestamp: now},
			{
				ID:        "m2",
				Role:      "model",
				Text:      "Coverage includes...",
				Timestamp: now.Add(time.Second),
				Usage:     &model.TokenUsage{PromptTokens: 100, ResponseTokens: 50, TotalTokens: 150},
				Citations: []string{"Policy.pdf > p.3"},
			},
		},
		UpdatedAt: now.Add(time.Second),
	}

	require.NoError(t, repo.SaveThread(ctx, thread))

	got, err := repo.GetThread(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, thread.ID, got.ID)
	assert.Equal(t, thread.Title, got.Title)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, thread.Messages[0].Text, got.Messages[0].Text)
	assert.True(t, thread.Messages[0].Timestamp.Equal(got.Messages[0].Timestamp))
	assert.Equal(t, thread.Messages[1].Usage, got.Messages[1].Usage)
	assert.Equal(t, thread.Messages[1].Citations, got.Messages[1].Citations)
	assert.True(t, thread.UpdatedAt.Equal(got.UpdatedAt))
}

func TestSQLiteRepository_DeleteThread_Idempotent(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.DeleteThread(ctx, "never-existed"))
	assert.NoError(t, repo.DeleteThread(ctx, "never-existed"))
}

func saveThreadAt(t *testing.T, repo repository.Repository, id string, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, repo.SaveThread(context.Background(), &model.ChatThread{
		ID:        id,
		Title:     id,
		Messages:  []model.Message{},
		UpdatedAt: updatedAt,
	}))
}

func TestSQLiteRepository_ListThreads_Ordering(t *testing.T) {
	repo, _ := setupRepo(t)
	base := time.Now().UTC().Truncate(time.Second)

	saveThreadAt(t, repo, "old", base.Add(-time.Hour))
	saveThreadAt(t, repo, "newest", base.Add(time.Hour))
	saveThreadAt(t, repo, "middle", base)

	threads, err := repo.ListThreads(context.Background())
	require.NoError(t, err)
	require.Len(t, threads, 3)
	assert.Equal(t, "newest", threads[0].ID)
	assert.Equal(t, "middle", threads[1].ID)
	assert.Equal(t, "old", threads[2].ID)
}

func TestSQLiteRepository_PruneThreads(t *testing.T) {
	t.Run("Keeps the most recently updated threads", func(t *testing.T) {
		repo, _ := setupRepo(t)
		ctx := context.Background()
		base := time.Now().UTC().Truncate(time.Second)

		for i := 0; i < 15; i++ {
			saveThreadAt(t, repo, fmt.Sprintf("thread-%02d", i), base.Add(time.Duration(i)*time.Minute))
		}

		require.NoError(t, repo.PruneThreads(ctx, 10))

		threads, err := repo.ListThreads(ctx)
		require.NoError(t, err)
		require.Len(t, threads, 10)
		// thread-14 is the newest; thread-05 the oldest survivor.
		assert.Equal(t, "thread-14", threads[0].ID)
		assert.Equal(t, "thread-05", threads[9].ID)
	})

	t.Run("No-op when under the limit", func(t *testing.T) {
		repo, _ := setupRepo(t)
		ctx := context.Background()
		base := time.Now().UTC()

		saveThreadAt(t, repo, "a", base)
		saveThreadAt(t, repo, "b", base.Add(time.Minute))

		require.NoError(t, repo.PruneThreads(ctx, 10))

		threads, err := repo.ListThreads(ctx)
		require.NoError(t, err)
		assert.Len(t, threads, 2)
	})

	t.Run("Ties on updated_at are broken by id descending", func(t *testing.T) {
		repo, _ := setupRepo(t)
		ctx := context.Background()
		at := time.Now().UTC().Truncate(time.Second)

		saveThreadAt(t, repo, "aaa", at)
		saveThreadAt(t, repo, "bbb", at)
		saveThreadAt(t, repo, "ccc", at)

		require.NoError(t, repo.PruneThreads(ctx, 2))

		threads, err := repo.ListThreads(ctx)
		require.NoError(t, err)
		require.Len(t, threads, 2)
		assert.Equal(t, "ccc", threads[0].ID)
		assert.Equal(t, "bbb", threads[1].ID)
	})
}
