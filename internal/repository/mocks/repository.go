// Package mocks provides a testify-based mock of the repository contract
// for service tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"virginia-ai/backend/internal/model"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRepository mocks repository.Repository.
type MockRepository struct {
	mock.Mock
}

func NewMockRepository(t testingT) *MockRepository {
	m := &MockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepository) SaveFile(ctx context.Context, file *model.StoredFile) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockRepository) GetFile(ctx context.Context, fileID string) (*model.StoredFile, error) {
	args := m.Called(ctx, fileID)
	if file := args.Get(0); file != nil {
		return file.(*model.StoredFile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) DeleteFile(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}

func (m *MockRepository) ListFiles(ctx context.Context) ([]*model.StoredFile, error) {
	args := m.Called(ctx)
	if files := args.Get(0); files != nil {
		return files.([]*model.StoredFile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SaveThread(ctx context.Context, thread *model.ChatThread) error {
	return m.Called(ctx, thread).Error(0)
}

func (m *MockRepository) GetThread(ctx context.Context, threadID string) (*model.ChatThread, error) {
	args := m.Called(ctx, threadID)
	if thread := args.Get(0); thread != nil {
		return thread.(*model.ChatThread), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) DeleteThread(ctx context.Context, threadID string) error {
	return m.Called(ctx, threadID).Error(0)
}

func (m *MockRepository) ListThreads(ctx context.Context) ([]*model.ChatThread, error) {
	args := m.Called(ctx)
	if threads := args.Get(0); threads != nil {
		return threads.([]*model.ChatThread), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) PruneThreads(ctx context.Context, keep int) error {
	return m.Called(ctx, keep).Error(0)
}
