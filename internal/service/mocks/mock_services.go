package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/momentohq/doc-sharing-app/internal/model"
	"github.com/momentohq/doc-sharing-app/internal/service"
)

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) UserToken(ctx context.Context, userID string) (*model.VendedToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendedToken), args.Error(1)
}

func (m *MockTokenService) ShareToken(ctx context.Context, userID, documentName string, ttlMinutes int) (*model.VendedToken, error) {
	args := m.Called(ctx, userID, documentName, ttlMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendedToken), args.Error(1)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, userID, name, contentType string, content []byte, ttl time.Duration) (*model.Document, error) {
	args := m.Called(ctx, userID, name, contentType, content, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, userID string) (*service.DocumentListResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, userID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *MockDocumentService) ShareLink(ctx context.Context, userID, name string, ttlMinutes int) (*service.ShareResult, error) {
	args := m.Called(ctx, userID, name, ttlMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShareResult), args.Error(1)
}

func (m *MockDocumentService) SharedDocument(ctx context.Context, token, userID, name string) (*model.Document, error) {
	args := m.Called(ctx, token, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}
