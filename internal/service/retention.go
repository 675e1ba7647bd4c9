package service

import (
	"context"
	"log/slog"

	"virginia-ai/backend/internal/repository"
)

// RetentionManager bounds the thread collection to at most `limit` records.
// It runs after every thread save; eviction failure never fails the save
// that triggered it.
type RetentionManager struct {
	repo  repository.Repository
	limit int
}

func NewRetentionManager(repo repository.Repository, limit int) *RetentionManager {
	return &RetentionManager{repo: repo, limit: limit}
}

// Enforce evicts every thread outside the `limit` most recently updated
// ones. The repository performs the whole select-and-delete in one
// transaction, with ties on updated_at broken by id descending.
func (m *RetentionManager) Enforce(ctx context.Context) {
	if err := m.repo.PruneThreads(ctx, m.limit); err != nil {
		slog.Warn("Thread retention enforcement failed; will retry after next save.",
			"limit", m.limit, "error", err)
	}
}
