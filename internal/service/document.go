package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/momentohq/doc-sharing-app/internal/cache"
	"github.com/momentohq/doc-sharing-app/internal/config"
	"github.com/momentohq/doc-sharing-app/internal/model"
)

var (
	ErrContentTooLarge  = errors.New("content exceeds the maximum upload size")
	ErrRetentionTooLong = errors.New("retention exceeds the maximum allowed minutes")
	ErrUnauthorized     = errors.New("not authorized to view this document")
)

// DocumentListResult is the service-level DTO for a listing.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// ShareResult carries a freshly minted share token together with the URL a
// recipient follows to view the document.
type ShareResult struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// DocumentService defines the use cases around ephemeral documents.
type DocumentService interface {
	// Upload stores the document fields with the given retention and registers
	// the name in the user's document-list set. The two writes are independent;
	// a failure in between can leave the index and the document out of sync
	// until the next listing reconciles or the entries expire.
	Upload(ctx context.Context, userID, name, contentType string, content []byte, ttl time.Duration) (*model.Document, error)

	// List fetches the user's document-name set, resolves each name, and
	// prunes names whose documents have already expired (one batched removal
	// after the scan).
	List(ctx context.Context, userID string) (*DocumentListResult, error)

	// Delete removes a document and its index entry.
	Delete(ctx context.Context, userID, name string) error

	// ShareLink mints a share token and builds the URL a recipient follows.
	ShareLink(ctx context.Context, userID, name string, ttlMinutes int) (*ShareResult, error)

	// SharedDocument fetches one document over a connection authenticated by
	// the share token. Every failure mode collapses to ErrUnauthorized.
	SharedDocument(ctx context.Context, token, userID, name string) (*model.Document, error)
}

type documentService struct {
	cache     cache.Client
	connector cache.Connector
	tokens    TokenService
	domain    string
	limits    config.LimitsConfig
	now       func() time.Time
}

// NewDocumentService constructs a DocumentService. domain is the public base
// URL used to build share links.
func NewDocumentService(c cache.Client, connector cache.Connector, tokens TokenService, domain string, limits config.LimitsConfig) DocumentService {
	return &documentService{
		cache:     c,
		connector: connector,
		tokens:    tokens,
		domain:    domain,
		limits:    limits,
		now:       time.Now,
	}
}

func (s *documentService) Upload(ctx context.Context, userID, name, contentType string, content []byte, ttl time.Duration) (*model.Document, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if int64(len(content)) > s.limits.MaxContentBytes {
		return nil, ErrContentTooLarge
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if ttl > time.Duration(s.limits.MaxRetentionMinutes)*time.Minute {
		return nil, ErrRetentionTooLong
	}

	doc := model.Document{
		Name:      name,
		Content:   base64.StdEncoding.EncodeToString(content),
		Type:      contentType,
		ExpiresAt: s.now().Add(ttl).UTC(),
	}

	// Both writes carry the same TTL window, but they are not transactional:
	// the cache has no multi-key atomicity, so the index entry and the
	// document can each outlive the other. Listing reconciles the index side.
	// The set add also refreshes the whole list set's TTL to this upload's
	// ttl, so a short-lived upload after a long-lived one can expire the index
	// before the longer document. Listing treats a missing list set as empty;
	// the document itself stays reachable by name until its own TTL runs out.
	if err := s.cache.DictionarySetFields(ctx, model.DocumentKey(userID, name), doc.Fields(), ttl); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	if err := s.cache.SetAddElement(ctx, model.ListKey(userID), name, ttl); err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}
	return &doc, nil
}

func (s *documentService) List(ctx context.Context, userID string) (*DocumentListResult, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	names, found, err := s.cache.SetFetch(ctx, model.ListKey(userID))
	if err != nil {
		return nil, fmt.Errorf("fetch document list: %w", err)
	}
	if !found {
		return &DocumentListResult{Items: []model.Document{}}, nil
	}

	docs := make([]model.Document, 0, len(names))
	var expired []string
	for _, name := range names {
		fields, found, err := s.cache.DictionaryFetch(ctx, model.DocumentKey(userID, name))
		if err != nil {
			return nil, fmt.Errorf("fetch document %q: %w", name, err)
		}
		if !found {
			// The list set and the documents it names expire independently; a
			// dangling name just means the document went first.
			expired = append(expired, name)
			continue
		}
		doc, err := model.DocumentFromFields(name, fields)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if len(expired) > 0 {
		if err := s.cache.SetRemoveElements(ctx, model.ListKey(userID), expired); err != nil {
			return nil, fmt.Errorf("prune expired names: %w", err)
		}
	}
	return &DocumentListResult{Items: docs, Total: len(docs)}, nil
}

func (s *documentService) Delete(ctx context.Context, userID, name string) error {
	if userID == "" {
		return ErrUserRequired
	}
	if name == "" {
		return ErrNameRequired
	}
	if err := s.cache.SetRemoveElements(ctx, model.ListKey(userID), []string{name}); err != nil {
		return fmt.Errorf("remove from document list: %w", err)
	}
	if err := s.cache.Delete(ctx, model.DocumentKey(userID, name)); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *documentService) ShareLink(ctx context.Context, userID, name string, ttlMinutes int) (*ShareResult, error) {
	token, err := s.tokens.ShareToken(ctx, userID, name, ttlMinutes)
	if err != nil {
		return nil, err
	}
	link := fmt.Sprintf("%s/documents/%s?token=%s&userId=%s",
		s.domain,
		url.PathEscape(name),
		url.QueryEscape(token.Token),
		url.QueryEscape(userID),
	)
	return &ShareResult{Token: token.Token, URL: link}, nil
}

func (s *documentService) SharedDocument(ctx context.Context, token, userID, name string) (*model.Document, error) {
	if token == "" || userID == "" || name == "" {
		return nil, ErrUnauthorized
	}

	// The viewer connects with the share token's own scope, never the
	// server's credentials. An expired token, a token for another key and a
	// missing document are deliberately indistinguishable to the viewer.
	conn, err := s.connector.Connect(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	defer conn.Close()

	fields, found, err := conn.DictionaryFetch(ctx, model.DocumentKey(userID, name))
	if err != nil || !found {
		return nil, ErrUnauthorized
	}
	doc, err := model.DocumentFromFields(name, fields)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return doc, nil
}
