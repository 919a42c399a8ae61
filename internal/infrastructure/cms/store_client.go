package cms

import (
	"context"
	"fmt"
	"sync"

	"github.com/willowmedia/contentbridge/internal/domain/cms"
	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
)

// StoreClient serves entries from the local snapshot store. Snapshots exist
// only for tracked page-level types; embedded components and assets arrive
// inside a page snapshot's includes, so every built graph is indexed and
// later by-id lookups resolve cache-first against those graphs before
// touching the store.
type StoreClient struct {
	store  cms.SnapshotStore
	logger *logging.ChanneledLogger

	mu      sync.RWMutex
	entries map[string]*content.Entry
	assets  map[string]*content.Asset
}

// NewStoreClient creates a store-backed client.
func NewStoreClient(store cms.SnapshotStore, logger *logging.ChanneledLogger) *StoreClient {
	return &StoreClient{
		store:   store,
		logger:  logger,
		entries: make(map[string]*content.Entry),
		assets:  make(map[string]*content.Asset),
	}
}

// buildSnapshot builds a snapshot's entry graph and indexes everything it
// contains. Rebuilding the same snapshot refreshes the indexed graph.
func (c *StoreClient) buildSnapshot(snap *content.Snapshot) (*content.Entry, error) {
	builder, err := NewResourceBuilder(snap.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot %s: %w", snap.ContentfulID, err)
	}

	entry := builder.FirstEntry()
	if entry == nil {
		return nil, fmt.Errorf("snapshot %s contains no entry", snap.ContentfulID)
	}

	c.mu.Lock()
	for id := range builder.rawEntries {
		if built := builder.Entry(id); built != nil {
			c.entries[id] = built
		}
	}
	for id := range builder.rawAssets {
		if built := builder.Asset(id); built != nil {
			c.assets[id] = built
		}
	}
	c.mu.Unlock()

	return entry, nil
}

// Entry resolves an entry by id: a stored snapshot if one exists, otherwise
// an already-indexed graph member. IncludeDepth is ignored; snapshot graphs
// are stored fully resolved.
func (c *StoreClient) Entry(ctx context.Context, id string, opts cms.EntryOptions) (*content.Entry, error) {
	snap, err := c.store.GetByContentfulID(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return c.buildSnapshot(snap)
	}

	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("entry %s not found in store", id)
	}
	return entry, nil
}

// EntriesOfType builds every stored snapshot of one content type.
func (c *StoreClient) EntriesOfType(ctx context.Context, contentType string, opts cms.EntryOptions) ([]*content.Entry, error) {
	snaps, err := c.store.ListByType(ctx, contentType)
	if err != nil {
		return nil, err
	}

	out := make([]*content.Entry, 0, len(snaps))
	for _, snap := range snaps {
		entry, err := c.buildSnapshot(snap)
		if err != nil {
			c.logger.Content().Error("Skipping unreadable snapshot",
				"contentfulId", snap.ContentfulID, "error", err)
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// EntryByTypeAndLanguage builds the single snapshot serving a (content type,
// language) pair.
func (c *StoreClient) EntryByTypeAndLanguage(ctx context.Context, contentType, language string) (*content.Entry, error) {
	snap, err := c.store.GetByTypeAndLanguage(ctx, contentType, language)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("no %s snapshot for language %s", contentType, language)
	}
	return c.buildSnapshot(snap)
}

// Asset resolves an asset from the indexed graphs. Assets are never
// snapshotted on their own.
func (c *StoreClient) Asset(ctx context.Context, id string) (*content.Asset, error) {
	c.mu.RLock()
	asset, ok := c.assets[id]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("asset %s not found in store", id)
	}
	return asset, nil
}
