package model

import (
	"fmt"
	"time"
)

// Dictionary field names of a stored document. These are the wire layout in
// the cache and must not change without migrating existing entries.
const (
	FieldContent   = "content"
	FieldType      = "type"
	FieldExpiresAt = "expiresAt"
)

// Document represents an ephemeral file stored in the cache.
// Content is base64 text; identity is (userId, name) with per-user name
// uniqueness only. Once the backing cache entry expires the document is gone,
// there is no soft delete or archival.
type Document struct {
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Fields returns the dictionary representation of the document as stored in
// the cache. ExpiresAt is serialized as RFC 3339 in UTC.
func (d Document) Fields() map[string]string {
	return map[string]string{
		FieldContent:   d.Content,
		FieldType:      d.Type,
		FieldExpiresAt: d.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// DocumentFromFields rebuilds a document from its cache dictionary fields.
func DocumentFromFields(name string, fields map[string]string) (*Document, error) {
	expiresAt, err := time.Parse(time.RFC3339, fields[FieldExpiresAt])
	if err != nil {
		return nil, fmt.Errorf("parse %s field: %w", FieldExpiresAt, err)
	}
	return &Document{
		Name:      name,
		Content:   fields[FieldContent],
		Type:      fields[FieldType],
		ExpiresAt: expiresAt,
	}, nil
}
