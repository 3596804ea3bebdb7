package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/momentohq/doc-sharing-app/internal/cache"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockClient) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockClient) SetFetch(ctx context.Context, setName string) ([]string, bool, error) {
	args := m.Called(ctx, setName)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

func (m *MockClient) SetAddElement(ctx context.Context, setName, element string, ttl time.Duration) error {
	args := m.Called(ctx, setName, element, ttl)
	return args.Error(0)
}

func (m *MockClient) SetRemoveElements(ctx context.Context, setName string, elements []string) error {
	args := m.Called(ctx, setName, elements)
	return args.Error(0)
}

func (m *MockClient) DictionarySetFields(ctx context.Context, dictionaryName string, fields map[string]string, ttl time.Duration) error {
	args := m.Called(ctx, dictionaryName, fields, ttl)
	return args.Error(0)
}

func (m *MockClient) DictionaryFetch(ctx context.Context, dictionaryName string) (map[string]string, bool, error) {
	args := m.Called(ctx, dictionaryName)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(map[string]string), args.Bool(1), args.Error(2)
}

func (m *MockClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClient) Close() {
	m.Called()
}

type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Connect(ctx context.Context, token string) (cache.Client, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cache.Client), args.Error(1)
}
