package storage

import (
	"context"
	"encoding/json"
)

// Cache namespaces used by the enrichers
const (
	NamespaceGitHubPeople = "github_people"
	NamespaceForem        = "forem"
)

// Entries is the content of one cache namespace. Values are opaque JSON
// blobs owned by whoever wrote them.
type Entries map[string]json.RawMessage

// Storage is the abstract interface for the fetch cache.
// A key, once saved, is never expired or refetched.
type Storage interface {
	// Load returns every entry of the namespace, or an empty mapping on first run
	Load(ctx context.Context, namespace string) (Entries, error)

	// Save replaces the namespace wholesale with entries
	Save(ctx context.Context, namespace string, entries Entries) error

	// Connection management
	Close() error
}
