package auth

import (
	"testing"

	"github.com/momentohq/client-sdk-go/momento"
	"github.com/stretchr/testify/assert"
)

func TestUserTokenScope(t *testing.T) {
	scope := userTokenScope("shared-docs", "u1")

	assert.Len(t, scope.Permissions, 2)
	assert.Equal(t, momento.TopicPermission{
		Role:  momento.PublishSubscribe,
		Cache: momento.CacheName{Name: "shared-docs"},
		Topic: momento.TopicName{Name: "u1-notifications"},
	}, scope.Permissions[0])
	assert.Equal(t, momento.DisposableTokenCachePermission{
		Role:  momento.ReadWrite,
		Cache: momento.CacheName{Name: "shared-docs"},
		Item:  momento.CacheItemKeyPrefix{KeyPrefix: []byte("u1-")},
	}, scope.Permissions[1])
}

func TestShareTokenScope(t *testing.T) {
	scope := shareTokenScope("shared-docs", "u1", "notes.txt")

	assert.Len(t, scope.Permissions, 1)
	assert.Equal(t, momento.DisposableTokenCachePermission{
		Role:  momento.ReadOnly,
		Cache: momento.CacheName{Name: "shared-docs"},
		Item:  momento.CacheItemKey{Key: []byte("u1-notes.txt")},
	}, scope.Permissions[0])
}
