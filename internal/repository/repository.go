package repository

import (
	"context"

	"virginia-ai/backend/internal/model"
)

// Repository is the durable store for the two entity collections: uploaded
// files and chat threads. Implementations must commit before returning from
// any mutating call ("success means visible on next read", including across
// process restarts) and must serialize concurrent writes to the same key.
type Repository interface {
	SaveFile(ctx context.Context, file *model.StoredFile) error
	GetFile(ctx context.Context, fileID string) (*model.StoredFile, error)
	// DeleteFile is idempotent; deleting an absent id is not an error.
	DeleteFile(ctx context.Context, fileID string) error
	ListFiles(ctx context.Context) ([]*model.StoredFile, error)

	SaveThread(ctx context.Context, thread *model.ChatThread) error
	GetThread(ctx context.Context, threadID string) (*model.ChatThread, error)
	// DeleteThread is idempotent; deleting an absent id is not an error.
	DeleteThread(ctx context.Context, threadID string) error
	// ListThreads returns all threads ordered by updated_at descending,
	// ties broken by id descending.
	ListThreads(ctx context.Context) ([]*model.ChatThread, error)
	// PruneThreads deletes every thread outside the `keep` most recently
	// updated ones, in a single transaction. Ordering and tie-break match
	// ListThreads, so the retained set is exactly its prefix.
	PruneThreads(ctx context.Context, keep int) error
}
