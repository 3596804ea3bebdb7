package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cacheMocks "github.com/momentohq/doc-sharing-app/internal/cache/mocks"
	"github.com/momentohq/doc-sharing-app/internal/config"
	"github.com/momentohq/doc-sharing-app/internal/model"
)

// mockTokenService lives here rather than in mocks/ because that package
// imports service and would cycle back into these tests.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) UserToken(ctx context.Context, userID string) (*model.VendedToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendedToken), args.Error(1)
}

func (m *mockTokenService) ShareToken(ctx context.Context, userID, documentName string, ttlMinutes int) (*model.VendedToken, error) {
	args := m.Called(ctx, userID, documentName, ttlMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendedToken), args.Error(1)
}

var testLimits = config.LimitsConfig{
	MaxContentBytes:     1_000_000,
	MaxRetentionMinutes: 1440,
	UserTokenMinutes:    60,
}

func newTestDocumentService(c *cacheMocks.MockClient, conn *cacheMocks.MockConnector, tokens TokenService, now time.Time) *documentService {
	svc := NewDocumentService(c, conn, tokens, "https://share.example.com", testLimits).(*documentService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		userID     string
		docName    string
		content    []byte
		ttl        time.Duration
		setupMocks func(mCache *cacheMocks.MockClient)
		wantErr    error
	}{
		{
			name:    "happy path",
			userID:  "user-1",
			docName: "notes.txt",
			content: []byte("hi"),
			ttl:     10 * time.Minute,
			setupMocks: func(mCache *cacheMocks.MockClient) {
				wantFields := map[string]string{
					"content":   base64.StdEncoding.EncodeToString([]byte("hi")),
					"type":      "text/plain",
					"expiresAt": now.Add(10 * time.Minute).Format(time.RFC3339),
				}
				mCache.On("DictionarySetFields", ctx, "user-1-notes.txt", wantFields, 10*time.Minute).Return(nil)
				mCache.On("SetAddElement", ctx, "user-1-list", "notes.txt", 10*time.Minute).Return(nil)
			},
		},
		{
			name:       "content too large",
			userID:     "user-1",
			docName:    "big.bin",
			content:    make([]byte, 1_000_001),
			ttl:        10 * time.Minute,
			setupMocks: func(mCache *cacheMocks.MockClient) {},
			wantErr:    ErrContentTooLarge,
		},
		{
			name:       "retention beyond 1440 minutes",
			userID:     "user-1",
			docName:    "notes.txt",
			content:    []byte("hi"),
			ttl:        1441 * time.Minute,
			setupMocks: func(mCache *cacheMocks.MockClient) {},
			wantErr:    ErrRetentionTooLong,
		},
		{
			name:       "zero ttl",
			userID:     "user-1",
			docName:    "notes.txt",
			content:    []byte("hi"),
			setupMocks: func(mCache *cacheMocks.MockClient) {},
			wantErr:    ErrInvalidTTL,
		},
		{
			name:       "missing name",
			userID:     "user-1",
			content:    []byte("hi"),
			ttl:        10 * time.Minute,
			setupMocks: func(mCache *cacheMocks.MockClient) {},
			wantErr:    ErrNameRequired,
		},
		{
			name:    "store failure surfaces before index write",
			userID:  "user-1",
			docName: "notes.txt",
			content: []byte("hi"),
			ttl:     10 * time.Minute,
			setupMocks: func(mCache *cacheMocks.MockClient) {
				mCache.On("DictionarySetFields", ctx, "user-1-notes.txt", mock.Anything, 10*time.Minute).
					Return(errors.New("write fail"))
			},
			wantErr: errors.New("store document: write fail"),
		},
		{
			name:    "index failure leaves unindexed document",
			userID:  "user-1",
			docName: "notes.txt",
			content: []byte("hi"),
			ttl:     10 * time.Minute,
			setupMocks: func(mCache *cacheMocks.MockClient) {
				mCache.On("DictionarySetFields", ctx, "user-1-notes.txt", mock.Anything, 10*time.Minute).Return(nil)
				mCache.On("SetAddElement", ctx, "user-1-list", "notes.txt", 10*time.Minute).
					Return(errors.New("index fail"))
			},
			wantErr: errors.New("register document: index fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mCache := new(cacheMocks.MockClient)
			tt.setupMocks(mCache)
			svc := newTestDocumentService(mCache, nil, nil, now)

			doc, err := svc.Upload(ctx, tt.userID, tt.docName, "text/plain", tt.content, tt.ttl)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.docName, doc.Name)
				assert.Equal(t, now.Add(tt.ttl), doc.ExpiresAt)
				assert.Equal(t, base64.StdEncoding.EncodeToString(tt.content), doc.Content)
			}

			mCache.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	liveFields := map[string]string{
		"content":   base64.StdEncoding.EncodeToString([]byte("hi")),
		"type":      "text/plain",
		"expiresAt": now.Add(10 * time.Minute).Format(time.RFC3339),
	}

	t.Run("prunes expired names in one batched removal", func(t *testing.T) {
		mCache := new(cacheMocks.MockClient)
		mCache.On("SetFetch", ctx, "user-1-list").Return([]string{"live.txt", "gone.png", "also-gone.pdf"}, true, nil)
		mCache.On("DictionaryFetch", ctx, "user-1-live.txt").Return(liveFields, true, nil)
		mCache.On("DictionaryFetch", ctx, "user-1-gone.png").Return(nil, false, nil)
		mCache.On("DictionaryFetch", ctx, "user-1-also-gone.pdf").Return(nil, false, nil)
		mCache.On("SetRemoveElements", ctx, "user-1-list", []string{"gone.png", "also-gone.pdf"}).Return(nil).Once()

		svc := newTestDocumentService(mCache, nil, nil, now)
		res, err := svc.List(ctx, "user-1")

		assert.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, "live.txt", res.Items[0].Name)
		assert.Equal(t, 1, res.Total)
		mCache.AssertExpectations(t)
	})

	t.Run("no removal call when nothing expired", func(t *testing.T) {
		mCache := new(cacheMocks.MockClient)
		mCache.On("SetFetch", ctx, "user-1-list").Return([]string{"live.txt"}, true, nil)
		mCache.On("DictionaryFetch", ctx, "user-1-live.txt").Return(liveFields, true, nil)

		svc := newTestDocumentService(mCache, nil, nil, now)
		res, err := svc.List(ctx, "user-1")

		assert.NoError(t, err)
		assert.Len(t, res.Items, 1)
		mCache.AssertNotCalled(t, "SetRemoveElements", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty listing on list-set miss", func(t *testing.T) {
		mCache := new(cacheMocks.MockClient)
		mCache.On("SetFetch", ctx, "user-1-list").Return(nil, false, nil)

		svc := newTestDocumentService(mCache, nil, nil, now)
		res, err := svc.List(ctx, "user-1")

		assert.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.Equal(t, 0, res.Total)
	})

	t.Run("fetch error surfaces without pruning", func(t *testing.T) {
		mCache := new(cacheMocks.MockClient)
		mCache.On("SetFetch", ctx, "user-1-list").Return([]string{"live.txt"}, true, nil)
		mCache.On("DictionaryFetch", ctx, "user-1-live.txt").Return(nil, false, errors.New("connection reset"))

		svc := newTestDocumentService(mCache, nil, nil, now)
		_, err := svc.List(ctx, "user-1")

		assert.Error(t, err)
		mCache.AssertNotCalled(t, "SetRemoveElements", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("removes index entry and document", func(t *testing.T) {
		mCache := new(cacheMocks.MockClient)
		mCache.On("SetRemoveElements", ctx, "user-1-list", []string{"notes.txt"}).Return(nil)
		mCache.On("Delete", ctx, "user-1-notes.txt").Return(nil)

		svc := newTestDocumentService(mCache, nil, nil, now)
		assert.NoError(t, svc.Delete(ctx, "user-1", "notes.txt"))
		mCache.AssertExpectations(t)
	})

	t.Run("missing user id", func(t *testing.T) {
		svc := newTestDocumentService(new(cacheMocks.MockClient), nil, nil, now)
		assert.ErrorIs(t, svc.Delete(ctx, "", "notes.txt"), ErrUserRequired)
	})
}

func TestDocumentService_ShareLink(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("builds URL embedding token and user id", func(t *testing.T) {
		mTokens := new(mockTokenService)
		mTokens.On("ShareToken", ctx, "user-1", "my notes.txt", 10).
			Return(&model.VendedToken{Token: "tok&en"}, nil)

		svc := newTestDocumentService(nil, nil, mTokens, now)
		share, err := svc.ShareLink(ctx, "user-1", "my notes.txt", 10)

		assert.NoError(t, err)
		assert.Equal(t, "tok&en", share.Token)
		assert.Equal(t, "https://share.example.com/documents/my%20notes.txt?token=tok%26en&userId=user-1", share.URL)
		mTokens.AssertExpectations(t)
	})

	t.Run("mint failure surfaces", func(t *testing.T) {
		mTokens := new(mockTokenService)
		mTokens.On("ShareToken", ctx, "user-1", "notes.txt", 10).
			Return(nil, errors.New("mint fail"))

		svc := newTestDocumentService(nil, nil, mTokens, now)
		_, err := svc.ShareLink(ctx, "user-1", "notes.txt", 10)

		assert.Error(t, err)
	})
}

func TestDocumentService_SharedDocument(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fields := map[string]string{
		"content":   base64.StdEncoding.EncodeToString([]byte("hi")),
		"type":      "text/plain",
		"expiresAt": now.Add(10 * time.Minute).Format(time.RFC3339),
	}

	t.Run("valid token fetches exactly the one document", func(t *testing.T) {
		mConn := new(cacheMocks.MockConnector)
		mViewer := new(cacheMocks.MockClient)
		mConn.On("Connect", ctx, "share-token").Return(mViewer, nil)
		mViewer.On("DictionaryFetch", ctx, "user-1-notes.txt").Return(fields, true, nil)
		mViewer.On("Close").Return()

		svc := newTestDocumentService(nil, mConn, nil, now)
		doc, err := svc.SharedDocument(ctx, "share-token", "user-1", "notes.txt")

		assert.NoError(t, err)
		assert.Equal(t, "notes.txt", doc.Name)
		assert.Equal(t, "text/plain", doc.Type)
		mConn.AssertExpectations(t)
		mViewer.AssertExpectations(t)
	})

	t.Run("invalid token collapses to unauthorized", func(t *testing.T) {
		mConn := new(cacheMocks.MockConnector)
		mConn.On("Connect", ctx, "bad-token").Return(nil, errors.New("invalid credential"))

		svc := newTestDocumentService(nil, mConn, nil, now)
		_, err := svc.SharedDocument(ctx, "bad-token", "user-1", "notes.txt")

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong scope collapses to unauthorized", func(t *testing.T) {
		mConn := new(cacheMocks.MockConnector)
		mViewer := new(cacheMocks.MockClient)
		mConn.On("Connect", ctx, "narrow-token").Return(mViewer, nil)
		mViewer.On("DictionaryFetch", ctx, "user-1-other.txt").Return(nil, false, errors.New("permission denied"))
		mViewer.On("Close").Return()

		svc := newTestDocumentService(nil, mConn, nil, now)
		_, err := svc.SharedDocument(ctx, "narrow-token", "user-1", "other.txt")

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired document collapses to unauthorized", func(t *testing.T) {
		mConn := new(cacheMocks.MockConnector)
		mViewer := new(cacheMocks.MockClient)
		mConn.On("Connect", ctx, "share-token").Return(mViewer, nil)
		mViewer.On("DictionaryFetch", ctx, "user-1-notes.txt").Return(nil, false, nil)
		mViewer.On("Close").Return()

		svc := newTestDocumentService(nil, mConn, nil, now)
		_, err := svc.SharedDocument(ctx, "share-token", "user-1", "notes.txt")

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("missing parameters collapse to unauthorized", func(t *testing.T) {
		svc := newTestDocumentService(nil, new(cacheMocks.MockConnector), nil, now)
		_, err := svc.SharedDocument(ctx, "", "user-1", "notes.txt")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
