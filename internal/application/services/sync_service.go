package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/willowmedia/contentbridge/internal/domain/cms"
	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/domain/entities/pages"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
	"github.com/willowmedia/contentbridge/pkg/config"
)

// SyncService refreshes the local snapshot store from the CMS delivery API.
// Each run walks every tracked content type, fetches the full subtree per
// entry, and writes a snapshot only when the content hash changed.
type SyncService struct {
	client cms.Client
	raw    cms.RawFetcher
	store  cms.SnapshotStore
	logger *logging.ChanneledLogger
}

// SyncResult summarizes one refresh run.
type SyncResult struct {
	RunID   string
	Added   int
	Updated int
}

// NewSyncService creates a new snapshot refresh service.
func NewSyncService(client cms.Client, raw cms.RawFetcher, store cms.SnapshotStore, logger *logging.ChanneledLogger) *SyncService {
	return &SyncService{client: client, raw: raw, store: store, logger: logger}
}

// Refresh synchronizes the snapshot store with the CMS. With force set,
// every snapshot rewrites regardless of its hash. Re-running against
// unchanged remote content is a no-op.
func (s *SyncService) Refresh(ctx context.Context, force bool) (*SyncResult, error) {
	result := &SyncResult{RunID: ulid.Make().String()}
	log := s.logger.Sync().With("runId", result.RunID)

	log.Info("Starting snapshot refresh", "force", force,
		"contentTypes", config.TrackedContentTypes)
	start := time.Now()

	for _, contentType := range config.TrackedContentTypes {
		entries, err := s.client.EntriesOfType(ctx, contentType, cms.EntryOptions{IncludeDepth: 0})
		if err != nil {
			return nil, fmt.Errorf("failed to list entries of type %s: %w", contentType, err)
		}

		for _, entry := range entries {
			if err := s.refreshEntry(ctx, entry.ID, contentType, force, result); err != nil {
				return nil, err
			}
		}
	}

	log.Info("Snapshot refresh complete", "added", result.Added,
		"updated", result.Updated, "duration", time.Since(start))
	return result, nil
}

// refreshEntry fetches one entry's full subtree and reconciles it against the
// stored snapshot keyed by its CMS id.
func (s *SyncService) refreshEntry(ctx context.Context, id, contentType string, force bool, result *SyncResult) error {
	raw, err := s.raw.RawEntry(ctx, id, config.SyncIncludeDepth)
	if err != nil {
		return fmt.Errorf("failed to fetch entry %s: %w", id, err)
	}

	hash, err := contentHash(raw)
	if err != nil {
		return fmt.Errorf("failed to hash entry %s: %w", id, err)
	}

	language, err := entryLanguage(contentType, raw)
	if err != nil {
		return fmt.Errorf("failed to derive language for entry %s: %w", id, err)
	}

	existing, err := s.store.GetByContentfulID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up snapshot %s: %w", id, err)
	}

	snap := &content.Snapshot{
		ContentfulID: id,
		ContentType:  contentType,
		Language:     language,
		DataHash:     hash,
		Data:         raw,
		LastModified: time.Now().UTC(),
	}

	switch {
	case existing == nil:
		if err := s.store.Insert(ctx, snap); err != nil {
			return fmt.Errorf("failed to insert snapshot %s: %w", id, err)
		}
		result.Added++
	case force || existing.DataHash != hash:
		snap.ID = existing.ID
		if err := s.store.Update(ctx, snap); err != nil {
			return fmt.Errorf("failed to update snapshot %s: %w", id, err)
		}
		result.Updated++
	}

	return nil
}

// contentHash computes a stable hex digest over the canonical serialization
// of the raw response. Re-marshaling through the standard encoder sorts map
// keys, so byte-order differences in the transport payload do not produce
// spurious updates.
func contentHash(raw json.RawMessage) (string, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}
	canonical, err := json.Marshal(decoded)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// rawEnvelope is the minimal slice of the delivery response needed to place a
// snapshot under its language key.
type rawEnvelope struct {
	Items []struct {
		Sys struct {
			Locale string `json:"locale"`
		} `json:"sys"`
		Fields struct {
			Name string `json:"name"`
		} `json:"fields"`
	} `json:"items"`
}

// entryLanguage derives the snapshot's language key. Connector entries carry
// their language in the name field; everything else uses the entry locale,
// falling back to the configured default.
func entryLanguage(contentType string, raw json.RawMessage) (string, error) {
	var envelope rawEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", err
	}
	if len(envelope.Items) == 0 {
		return "", fmt.Errorf("response contains no items")
	}

	item := envelope.Items[0]
	if contentType == pages.Connector && item.Fields.Name != "" {
		return item.Fields.Name, nil
	}
	if item.Sys.Locale != "" {
		return item.Sys.Locale, nil
	}
	return config.DefaultLocale, nil
}
