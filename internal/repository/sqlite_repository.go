package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"virginia-ai/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveFile(ctx context.Context, file *model.StoredFile) error {
	query := `
		INSERT INTO files (id, name, size, mime_type, content)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			size = excluded.size,
			mime_type = excluded.mime_type,
			content = excluded.content
	`
	_, err := r.db.ExecContext(ctx, query, file.ID, file.Name, file.Size, file.MimeType, file.Content)
	if err != nil {
		return fmt.Errorf("could not save file %q: %w", file.ID, err)
	}
	return nil
}

func (r *sqliteRepository) GetFile(ctx context.Context, fileID string) (*model.StoredFile, error) {
	query := "SELECT id, name, size, mime_type, content FROM files WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, fileID)

	var file model.StoredFile
	err := row.Scan(&file.ID, &file.Name, &file.Size, &file.MimeType, &file.Content)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not get file %q: %w", fileID, err)
	}
	return &file, nil
}

func (r *sqliteRepository) DeleteFile(ctx context.Context, fileID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", fileID)
	if err != nil {
		return fmt.Errorf("could not delete file %q: %w", fileID, err)
	}
	return nil
}

func (r *sqliteRepository) ListFiles(ctx context.Context) ([]*model.StoredFile, error) {
	query := "SELECT id, name, size, mime_type, content FROM files"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not list files: %w", err)
	}
	defer rows.Close()

	var files []*model.StoredFile
	for rows.Next() {
		var file model.StoredFile
		if err := rows.Scan(&file.ID, &file.Name, &file.Size, &file.MimeType, &file.Content); err != nil {
			return nil, fmt.Errorf("could not scan file row: %w", err)
		}
		files = append(files, &file)
	}
	return files, rows.Err()
}

func (r *sqliteRepository) SaveThread(ctx context.Context, thread *model.ChatThread) error {
	messages, err := json.Marshal(thread.Messages)
	if err != nil {
		return fmt.Errorf("could not marshal messages for thread %q: %w", thread.ID, err)
	}

	query := `
		INSERT INTO threads (id, title, messages, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			messages = excluded.messages,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, thread.ID, thread.Title, string(messages), thread.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not save thread %q: %w", thread.ID, err)
	}
	return nil
}

func (r *sqliteRepository) GetThread(ctx context.Context, threadID string) (*model.ChatThread, error) {
	query := "SELECT id, title, messages, updated_at FROM threads WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, threadID)

	thread, err := scanThread(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not get thread %q: %w", threadID, err)
	}
	return thread, nil
}

func (r *sqliteRepository) DeleteThread(ctx context.Context, threadID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM threads WHERE id = ?", threadID)
	if err != nil {
		return fmt.Errorf("could not delete thread %q: %w", threadID, err)
	}
	return nil
}

func (r *sqliteRepository) ListThreads(ctx context.Context) ([]*model.ChatThread, error) {
	query := "SELECT id, title, messages, updated_at FROM threads ORDER BY updated_at DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not list threads: %w", err)
	}
	defer rows.Close()

	var threads []*model.ChatThread
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan thread row: %w", err)
		}
		threads = append(threads, thread)
	}
	return threads, rows.Err()
}

// PruneThreads runs the whole keep-set selection and deletion as one
// transaction, so a concurrent writer cannot race the enumeration past the
// limit. The ORDER BY matches ListThreads: updated_at descending with id
// descending as the tie-break, which is this store's documented stable rule.
func (r *sqliteRepository) PruneThreads(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin prune transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		DELETE FROM threads WHERE id NOT IN (
			SELECT id FROM threads ORDER BY updated_at DESC, id DESC LIMIT ?
		)
	`
	if _, err := tx.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("could not prune threads: %w", err)
	}

	return tx.Commit()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanThread(s scanner) (*model.ChatThread, error) {
	var thread model.ChatThread
	var messages string
	if err := s.Scan(&thread.ID, &thread.Title, &messages, &thread.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(messages), &thread.Messages); err != nil {
		return nil, fmt.Errorf("could not unmarshal messages: %w", err)
	}
	return &thread, nil
}
