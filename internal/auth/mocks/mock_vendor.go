package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/momentohq/doc-sharing-app/internal/model"
)

type MockTokenVendor struct {
	mock.Mock
}

func (m *MockTokenVendor) UserToken(ctx context.Context, userID string, expiresIn time.Duration) (*model.VendedToken, error) {
	args := m.Called(ctx, userID, expiresIn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendedToken), args.Error(1)
}

func (m *MockTokenVendor) ShareToken(ctx context.Context, userID, documentName string, expiresIn time.Duration) (*model.VendedToken, error) {
	args := m.Called(ctx, userID, documentName, expiresIn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendedToken), args.Error(1)
}
