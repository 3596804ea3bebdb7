package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/momentohq/client-sdk-go/auth"
	momentoconfig "github.com/momentohq/client-sdk-go/config"
	"github.com/momentohq/client-sdk-go/momento"
	"github.com/momentohq/client-sdk-go/responses"
	"github.com/momentohq/client-sdk-go/utils"

	"github.com/momentohq/doc-sharing-app/internal/config"
)

// momentoCache implements Client on top of the Momento cache SDK.
// It is safe for concurrent use by multiple goroutines.
type momentoCache struct {
	client    momento.CacheClient
	cacheName string
}

// NewMomento creates a cache client authenticated with the server's API key.
func NewMomento(cfg config.MomentoConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("momento api key is required")
	}
	if cfg.CacheName == "" {
		return nil, fmt.Errorf("cache name is required")
	}
	return newMomento(cfg.APIKey, cfg.CacheName, time.Duration(cfg.DefaultTTLSeconds)*time.Second)
}

// NewMomentoConnector returns a Connector that builds read clients from
// vended share tokens. Each Connect call opens an independent connection
// whose permissions are exactly the token's scope.
func NewMomentoConnector(cfg config.MomentoConfig) Connector {
	return &momentoConnector{
		cacheName:  cfg.CacheName,
		defaultTTL: time.Duration(cfg.DefaultTTLSeconds) * time.Second,
	}
}

type momentoConnector struct {
	cacheName  string
	defaultTTL time.Duration
}

func (c *momentoConnector) Connect(ctx context.Context, token string) (Client, error) {
	return newMomento(token, c.cacheName, c.defaultTTL)
}

func newMomento(credential, cacheName string, defaultTTL time.Duration) (Client, error) {
	provider, err := auth.NewStringMomentoTokenProvider(credential)
	if err != nil {
		return nil, fmt.Errorf("create credential provider: %w", err)
	}
	client, err := momento.NewCacheClient(momentoconfig.LaptopLatest(), provider, defaultTTL)
	if err != nil {
		return nil, fmt.Errorf("create cache client: %w", err)
	}
	return &momentoCache{client: client, cacheName: cacheName}, nil
}

func (m *momentoCache) Get(ctx context.Context, key string) (string, bool, error) {
	resp, err := m.client.Get(ctx, &momento.GetRequest{
		CacheName: m.cacheName,
		Key:       momento.String(key),
	})
	if err != nil {
		return "", false, err
	}
	if hit, ok := resp.(*responses.GetHit); ok {
		return hit.ValueString(), true, nil
	}
	return "", false, nil
}

func (m *momentoCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := m.client.Set(ctx, &momento.SetRequest{
		CacheName: m.cacheName,
		Key:       momento.String(key),
		Value:     momento.String(value),
		Ttl:       ttl,
	})
	return err
}

func (m *momentoCache) Delete(ctx context.Context, key string) error {
	_, err := m.client.Delete(ctx, &momento.DeleteRequest{
		CacheName: m.cacheName,
		Key:       momento.String(key),
	})
	return err
}

func (m *momentoCache) SetFetch(ctx context.Context, setName string) ([]string, bool, error) {
	resp, err := m.client.SetFetch(ctx, &momento.SetFetchRequest{
		CacheName: m.cacheName,
		SetName:   setName,
	})
	if err != nil {
		return nil, false, err
	}
	if hit, ok := resp.(*responses.SetFetchHit); ok {
		return hit.ValueString(), true, nil
	}
	return nil, false, nil
}

func (m *momentoCache) SetAddElement(ctx context.Context, setName, element string, ttl time.Duration) error {
	_, err := m.client.SetAddElement(ctx, &momento.SetAddElementRequest{
		CacheName: m.cacheName,
		SetName:   setName,
		Element:   momento.String(element),
		Ttl:       &utils.CollectionTtl{Ttl: ttl, RefreshTtl: true},
	})
	return err
}

func (m *momentoCache) SetRemoveElements(ctx context.Context, setName string, elements []string) error {
	toRemove := make([]momento.Value, len(elements))
	for i, e := range elements {
		toRemove[i] = momento.String(e)
	}
	_, err := m.client.SetRemoveElements(ctx, &momento.SetRemoveElementsRequest{
		CacheName: m.cacheName,
		SetName:   setName,
		Elements:  toRemove,
	})
	return err
}

func (m *momentoCache) DictionarySetFields(ctx context.Context, dictionaryName string, fields map[string]string, ttl time.Duration) error {
	_, err := m.client.DictionarySetFields(ctx, &momento.DictionarySetFieldsRequest{
		CacheName:      m.cacheName,
		DictionaryName: dictionaryName,
		Elements:       momento.DictionaryElementsFromMapStringString(fields),
		Ttl:            &utils.CollectionTtl{Ttl: ttl, RefreshTtl: true},
	})
	return err
}

func (m *momentoCache) DictionaryFetch(ctx context.Context, dictionaryName string) (map[string]string, bool, error) {
	resp, err := m.client.DictionaryFetch(ctx, &momento.DictionaryFetchRequest{
		CacheName:      m.cacheName,
		DictionaryName: dictionaryName,
	})
	if err != nil {
		return nil, false, err
	}
	if hit, ok := resp.(*responses.DictionaryFetchHit); ok {
		return hit.ValueMap(), true, nil
	}
	return nil, false, nil
}

func (m *momentoCache) Ping(ctx context.Context) error {
	_, err := m.client.Ping(ctx)
	return err
}

func (m *momentoCache) Close() {
	m.client.Close()
}
