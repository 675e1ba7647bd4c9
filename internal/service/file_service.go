package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"virginia-ai/backend/internal/config"
	app_errors "virginia-ai/backend/internal/errors"
	"virginia-ai/backend/internal/model"
	"virginia-ai/backend/internal/repository"
)

// FileUpload is one candidate document in an upload batch.
type FileUpload struct {
	Name     string
	MimeType string
	Content  []byte
}

// UploadRejection reports why a single file in a batch was not stored.
type UploadRejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult is the per-batch outcome: which files were stored and which
// were rejected. A rejection never aborts the rest of the batch.
type UploadResult struct {
	Saved    []model.FileInfo  `json:"saved"`
	Rejected []UploadRejection `json:"rejected"`
}

// FileService validates and stores uploaded reference documents.
type FileService struct {
	repo repository.Repository
	cfg  *config.Config
}

func NewFileService(repo repository.Repository, cfg *config.Config) *FileService {
	return &FileService{repo: repo, cfg: cfg}
}

// Upload validates and stores each file of a batch independently. Count and
// aggregate-size limits are checked against the running state, so a file that
// no longer fits is rejected while later, smaller ones may still pass.
func (s *FileService) Upload(ctx context.Context, uploads []FileUpload) (*UploadResult, error) {
	existing, err := s.repo.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read file collection: %s", app_errors.ErrStorage, err)
	}

	count := len(existing)
	var totalSize int64
	for _, f := range existing {
		totalSize += f.Size
	}

	maxFileSize := int64(s.cfg.MaxFileSizeMB) << 20
	maxTotalSize := int64(s.cfg.MaxTotalSizeMB) << 20

	result := &UploadResult{Saved: []model.FileInfo{}, Rejected: []UploadRejection{}}
	for _, upload := range uploads {
		mimeType, ok := resolveMimeType(upload.Name, upload.MimeType)
		if !ok {
			result.Rejected = append(result.Rejected, UploadRejection{
				Name:   upload.Name,
				Reason: "unsupported file type; only PDF, MD and TXT are accepted",
			})
			continue
		}
		if count >= s.cfg.MaxFilesCount {
			result.Rejected = append(result.Rejected, UploadRejection{
				Name:   upload.Name,
				Reason: fmt.Sprintf("file count limit of %d reached", s.cfg.MaxFilesCount),
			})
			continue
		}
		size := int64(len(upload.Content))
		if size > maxFileSize {
			result.Rejected = append(result.Rejected, UploadRejection{
				Name:   upload.Name,
				Reason: fmt.Sprintf("file exceeds the %d MB per-file limit", s.cfg.MaxFileSizeMB),
			})
			continue
		}
		if totalSize+size > maxTotalSize {
			result.Rejected = append(result.Rejected, UploadRejection{
				Name:   upload.Name,
				Reason: fmt.Sprintf("file would exceed the %d MB total limit", s.cfg.MaxTotalSizeMB),
			})
			continue
		}

		file := &model.StoredFile{
			ID:       uuid.NewString(),
			Name:     upload.Name,
			Size:     size,
			MimeType: mimeType,
			Content:  upload.Content,
		}
		if err := s.repo.SaveFile(ctx, file); err != nil {
			slog.Error("Failed to save uploaded file", "file_name", upload.Name, "error", err)
			result.Rejected = append(result.Rejected, UploadRejection{
				Name:   upload.Name,
				Reason: "could not be stored",
			})
			continue
		}

		count++
		totalSize += size
		result.Saved = append(result.Saved, file.Info())
	}

	return result, nil
}

// List returns the metadata of every stored file, without content payloads.
func (s *FileService) List(ctx context.Context) ([]model.FileInfo, error) {
	files, err := s.repo.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not list files: %s", app_errors.ErrStorage, err)
	}
	infos := make([]model.FileInfo, 0, len(files))
	for _, f := range files {
		infos = append(infos, f.Info())
	}
	return infos, nil
}

// Delete removes a file. Deleting an unknown id is a no-op.
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	if err := s.repo.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("%w: could not delete file: %s", app_errors.ErrStorage, err)
	}
	return nil
}

// resolveMimeType maps a declared MIME type or, failing that, the file
// extension onto one of the supported document types.
func resolveMimeType(name, declared string) (string, bool) {
	switch declared {
	case model.MimePDF, model.MimeMarkdown, model.MimePlain:
		return declared, true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return model.MimePDF, true
	case ".md":
		return model.MimeMarkdown, true
	case ".txt":
		return model.MimePlain, true
	}
	return "", false
}
