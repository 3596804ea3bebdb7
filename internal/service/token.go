package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/momentohq/doc-sharing-app/internal/auth"
	"github.com/momentohq/doc-sharing-app/internal/cache"
	"github.com/momentohq/doc-sharing-app/internal/model"
)

var (
	ErrUserRequired = errors.New("user id is required")
	ErrNameRequired = errors.New("document name is required")
	ErrInvalidTTL   = errors.New("ttl must be a positive number of minutes")
)

// TokenService vends access tokens for users and share links.
type TokenService interface {
	// UserToken returns the cached broad-scope token for the user if it is
	// still valid, otherwise mints a new one and caches it.
	UserToken(ctx context.Context, userID string) (*model.VendedToken, error)

	// ShareToken mints a disposable read-only token scoped to exactly one
	// document, valid for the requested number of minutes. It is never cached
	// or reused.
	ShareToken(ctx context.Context, userID, documentName string, ttlMinutes int) (*model.VendedToken, error)
}

type tokenService struct {
	cache        cache.Client
	vendor       auth.TokenVendor
	userTokenTTL time.Duration
	now          func() time.Time
}

// NewTokenService constructs a TokenService. userTokenTTL is the lifetime of
// newly minted broad user tokens.
func NewTokenService(c cache.Client, vendor auth.TokenVendor, userTokenTTL time.Duration) TokenService {
	return &tokenService{
		cache:        c,
		vendor:       vendor,
		userTokenTTL: userTokenTTL,
		now:          time.Now,
	}
}

func (s *tokenService) UserToken(ctx context.Context, userID string) (*model.VendedToken, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	key := model.TokenKey(userID)
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("look up cached token: %w", err)
	}
	if found {
		var token model.VendedToken
		// A corrupt cached entry is treated as a miss and overwritten below.
		if err := json.Unmarshal([]byte(raw), &token); err == nil && s.now().Unix() < token.ExpiresAt {
			return &token, nil
		}
	}

	token, err := s.vendor.UserToken(ctx, userID, s.userTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("mint user token: %w", err)
	}

	// Cache for exactly the token's remaining lifetime. Concurrent requests
	// for the same user may both mint; last write wins, which is fine since
	// every minted token is independently valid.
	body, err := json.Marshal(token)
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}
	ttl := time.Unix(token.ExpiresAt, 0).Sub(s.now())
	if err := s.cache.Set(ctx, key, string(body), ttl); err != nil {
		return nil, fmt.Errorf("cache token: %w", err)
	}
	return token, nil
}

func (s *tokenService) ShareToken(ctx context.Context, userID, documentName string, ttlMinutes int) (*model.VendedToken, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if documentName == "" {
		return nil, ErrNameRequired
	}
	if ttlMinutes <= 0 {
		return nil, ErrInvalidTTL
	}

	// The requested ttl is not clamped to the document's remaining lifetime;
	// a grant that outlives the document just reads a miss.
	token, err := s.vendor.ShareToken(ctx, userID, documentName, time.Duration(ttlMinutes)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("mint share token: %w", err)
	}
	return token, nil
}
