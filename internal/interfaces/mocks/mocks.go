// Package mocks provides testify-based mocks of the service contracts for
// handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"virginia-ai/backend/internal/model"
	"virginia-ai/backend/internal/service"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockChatService mocks interfaces.ChatService.
type MockChatService struct {
	mock.Mock
}

func NewMockChatService(t testingT) *MockChatService {
	m := &MockChatService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockChatService) SendMessage(ctx context.Context, req *service.SendMessageRequest) (*service.TurnResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*service.TurnResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatService) ListThreads(ctx context.Context) ([]*model.ChatThread, error) {
	args := m.Called(ctx)
	if threads := args.Get(0); threads != nil {
		return threads.([]*model.ChatThread), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatService) GetThread(ctx context.Context, threadID string) (*model.ChatThread, error) {
	args := m.Called(ctx, threadID)
	if thread := args.Get(0); thread != nil {
		return thread.(*model.ChatThread), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatService) DeleteThread(ctx context.Context, threadID string) error {
	return m.Called(ctx, threadID).Error(0)
}

// MockFileService mocks interfaces.FileService.
type MockFileService struct {
	mock.Mock
}

func NewMockFileService(t testingT) *MockFileService {
	m := &MockFileService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFileService) Upload(ctx context.Context, uploads []service.FileUpload) (*service.UploadResult, error) {
	args := m.Called(ctx, uploads)
	if result := args.Get(0); result != nil {
		return result.(*service.UploadResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileService) List(ctx context.Context) ([]model.FileInfo, error) {
	args := m.Called(ctx)
	if infos := args.Get(0); infos != nil {
		return infos.([]model.FileInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}
