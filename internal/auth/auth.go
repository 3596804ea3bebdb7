// Package auth vends disposable access tokens. Two scope shapes exist:
// a broad per-user token (publish/subscribe on the user's notification topic,
// read-write on every key under the user's prefix) and a narrow share token
// (read-only on exactly one document key). Tokens are never refreshed; callers
// mint a new one when the old one expires.
package auth

import (
	"context"
	"time"

	"github.com/momentohq/doc-sharing-app/internal/model"
)

// TokenVendor mints scope-restricted, time-bounded credentials.
type TokenVendor interface {
	// UserToken mints the broad per-user token.
	UserToken(ctx context.Context, userID string, expiresIn time.Duration) (*model.VendedToken, error)
	// ShareToken mints a disposable read-only token for a single document.
	ShareToken(ctx context.Context, userID, documentName string, expiresIn time.Duration) (*model.VendedToken, error)
}
