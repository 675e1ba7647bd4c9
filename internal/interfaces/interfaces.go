package interfaces

import (
	"context"

	"virginia-ai/backend/internal/model"
	"virginia-ai/backend/internal/service"
)

// This file defines the contracts the API layer depends on instead of the
// concrete service implementations, which keeps the handlers mockable.

// ChatService is the contract for thread and turn handling.
type ChatService interface {
	SendMessage(ctx context.Context, req *service.SendMessageRequest) (*service.TurnResponse, error)
	ListThreads(ctx context.Context) ([]*model.ChatThread, error)
	GetThread(ctx context.Context, threadID string) (*model.ChatThread, error)
	DeleteThread(ctx context.Context, threadID string) error
}

// FileService is the contract for the reference-document collection.
type FileService interface {
	Upload(ctx context.Context, uploads []service.FileUpload) (*service.UploadResult, error)
	List(ctx context.Context) ([]model.FileInfo, error)
	Delete(ctx context.Context, fileID string) error
}
