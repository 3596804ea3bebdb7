package auth

import (
	"context"
	"fmt"
	"time"

	momentoauth "github.com/momentohq/client-sdk-go/auth"
	momentoconfig "github.com/momentohq/client-sdk-go/config"
	"github.com/momentohq/client-sdk-go/momento"
	authresp "github.com/momentohq/client-sdk-go/responses/auth"
	"github.com/momentohq/client-sdk-go/utils"

	"github.com/momentohq/doc-sharing-app/internal/config"
	"github.com/momentohq/doc-sharing-app/internal/model"
)

// momentoVendor implements TokenVendor on top of the Momento auth SDK.
// Scope construction is the only place vendor permission types appear.
type momentoVendor struct {
	client    momento.AuthClient
	cacheName string
}

// NewMomentoVendor creates a token vendor authenticated with the server's API key.
func NewMomentoVendor(cfg config.MomentoConfig) (TokenVendor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("momento api key is required")
	}
	provider, err := momentoauth.NewStringMomentoTokenProvider(cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("create credential provider: %w", err)
	}
	client, err := momento.NewAuthClient(momentoconfig.AuthDefault(), provider)
	if err != nil {
		return nil, fmt.Errorf("create auth client: %w", err)
	}
	return &momentoVendor{client: client, cacheName: cfg.CacheName}, nil
}

func (v *momentoVendor) UserToken(ctx context.Context, userID string, expiresIn time.Duration) (*model.VendedToken, error) {
	return v.generate(ctx, userTokenScope(v.cacheName, userID), expiresIn)
}

func (v *momentoVendor) ShareToken(ctx context.Context, userID, documentName string, expiresIn time.Duration) (*model.VendedToken, error) {
	return v.generate(ctx, shareTokenScope(v.cacheName, userID, documentName), expiresIn)
}

// userTokenScope grants publish/subscribe on the user's notification topic and
// read-write on every key under the user's prefix.
func userTokenScope(cacheName, userID string) momento.Permissions {
	return momento.Permissions{
		Permissions: []momento.Permission{
			momento.TopicPermission{
				Role:  momento.PublishSubscribe,
				Cache: momento.CacheName{Name: cacheName},
				Topic: momento.TopicName{Name: model.NotificationTopic(userID)},
			},
			momento.DisposableTokenCachePermission{
				Role:  momento.ReadWrite,
				Cache: momento.CacheName{Name: cacheName},
				Item:  momento.CacheItemKeyPrefix{KeyPrefix: []byte(model.KeyPrefix(userID))},
			},
		},
	}
}

// shareTokenScope grants read-only access to exactly one document key.
func shareTokenScope(cacheName, userID, documentName string) momento.Permissions {
	return momento.Permissions{
		Permissions: []momento.Permission{
			momento.DisposableTokenCachePermission{
				Role:  momento.ReadOnly,
				Cache: momento.CacheName{Name: cacheName},
				Item:  momento.CacheItemKey{Key: []byte(model.DocumentKey(userID, documentName))},
			},
		},
	}
}

func (v *momentoVendor) generate(ctx context.Context, scope momento.DisposableTokenScope, expiresIn time.Duration) (*model.VendedToken, error) {
	resp, err := v.client.GenerateDisposableToken(ctx, &momento.GenerateDisposableTokenRequest{
		ExpiresIn: utils.ExpiresInMinutes(int64(expiresIn.Minutes())),
		Scope:     scope,
	})
	if err != nil {
		return nil, fmt.Errorf("generate disposable token: %w", err)
	}
	success, ok := resp.(*authresp.GenerateDisposableTokenSuccess)
	if !ok {
		return nil, fmt.Errorf("unexpected token response %T", resp)
	}
	return &model.VendedToken{
		Token:     success.ApiKey,
		ExpiresAt: int64(success.ValidUntil),
	}, nil
}
