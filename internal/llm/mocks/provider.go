// Package mocks provides a testify-based mock of the gateway provider for
// service tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"virginia-ai/backend/internal/llm"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockProvider mocks llm.Provider.
type MockProvider struct {
	mock.Mock
}

func NewMockProvider(t testingT) *MockProvider {
	m := &MockProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProvider) Generate(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*llm.GenerateResponse), args.Error(1)
	}
	return nil, args.Error(1)
}
