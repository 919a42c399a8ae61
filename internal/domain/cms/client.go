// Package cms declares the capabilities the core consumes from the CMS
// collaborator. Implementations live in infrastructure; the core performs no
// retries and owns no timeout policy, so a fetch failure propagates unchanged.
package cms

import (
	"context"
	"encoding/json"

	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
)

// EntryOptions controls linked sub-graph resolution on fetch.
type EntryOptions struct {
	// IncludeDepth bounds how many levels of linked entries are resolved.
	IncludeDepth int
	Locale       string
}

// Client resolves entries and assets from the CMS.
type Client interface {
	// Entry resolves a single entry and its linked sub-graph.
	Entry(ctx context.Context, id string, opts EntryOptions) (*content.Entry, error)
	// EntriesOfType lists all entries of one content type.
	EntriesOfType(ctx context.Context, contentType string, opts EntryOptions) ([]*content.Entry, error)
	// Asset resolves a single asset.
	Asset(ctx context.Context, id string) (*content.Asset, error)
}

// TypedEntrySource resolves the single entry serving a (content type,
// language) pair. The snapshot store keys on that pair; clients that can also
// answer it implement this alongside Client.
type TypedEntrySource interface {
	EntryByTypeAndLanguage(ctx context.Context, contentType, language string) (*content.Entry, error)
}

// RawFetcher exposes the unparsed CMS response for an entry subtree. Entry
// Sync stores this verbatim so the snapshot store can rebuild the full graph.
type RawFetcher interface {
	RawEntry(ctx context.Context, id string, includeDepth int) (json.RawMessage, error)
}

// SnapshotStore is the persisted-store capability consumed by Entry Sync and
// by store-mode serving. Read-only to the serving path.
type SnapshotStore interface {
	GetByContentfulID(ctx context.Context, contentfulID string) (*content.Snapshot, error)
	GetByTypeAndLanguage(ctx context.Context, contentType, language string) (*content.Snapshot, error)
	ListByType(ctx context.Context, contentType string) ([]*content.Snapshot, error)
	Insert(ctx context.Context, snap *content.Snapshot) error
	Update(ctx context.Context, snap *content.Snapshot) error
}
