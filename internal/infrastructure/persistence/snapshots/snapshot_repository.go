// Package snapshots provides the snapshot repository
package snapshots

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
	"github.com/willowmedia/contentbridge/pkg/config"
)

// SnapshotRepository persists entry snapshots. It implements
// cms.SnapshotStore over the snapshots table.
type SnapshotRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewSnapshotRepository(db *sql.DB, logger *logging.ChanneledLogger) *SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		logger: logger,
	}
}

const snapshotColumns = `id, contentful_id, content_type, language, data_hash, data, last_modified`

// GetByContentfulID finds the snapshot for a CMS entry id. Missing rows
// return nil without error.
func (r *SnapshotRepository) GetByContentfulID(ctx context.Context, contentfulID string) (*content.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE contentful_id = ?`
	return r.querySnapshot(ctx, query, contentfulID)
}

// GetByTypeAndLanguage finds the single snapshot serving a (content type,
// language) pair. Missing rows return nil without error.
func (r *SnapshotRepository) GetByTypeAndLanguage(ctx context.Context, contentType, language string) (*content.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE content_type = ? AND language = ?`
	return r.querySnapshot(ctx, query, contentType, language)
}

func (r *SnapshotRepository) querySnapshot(ctx context.Context, query string, args ...any) (*content.Snapshot, error) {
	start := time.Now()

	var snap content.Snapshot
	var data string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&snap.ID, &snap.ContentfulID, &snap.ContentType, &snap.Language,
		&snap.DataHash, &data, &snap.LastModified,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Snapshot query failed", "error", err.Error())
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	snap.Data = []byte(data)

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return &snap, nil
}

// ListByType returns all snapshots of one content type, every language
// included.
func (r *SnapshotRepository) ListByType(ctx context.Context, contentType string) ([]*content.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE content_type = ? ORDER BY language`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, contentType)
	if err != nil {
		r.logger.Database().Error("Snapshot list failed", "error", err.Error(), "contentType", contentType)
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*content.Snapshot
	for rows.Next() {
		var snap content.Snapshot
		var data string
		if err := rows.Scan(&snap.ID, &snap.ContentfulID, &snap.ContentType, &snap.Language,
			&snap.DataHash, &data, &snap.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.Data = []byte(data)
		snaps = append(snaps, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return snaps, nil
}

func (r *SnapshotRepository) Insert(ctx context.Context, snap *content.Snapshot) error {
	query := `INSERT INTO snapshots (contentful_id, content_type, language, data_hash, data, last_modified)
		VALUES (?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing snapshot insert", "contentfulId", snap.ContentfulID)

	result, err := r.db.ExecContext(ctx, query, snap.ContentfulID, snap.ContentType,
		snap.Language, snap.DataHash, string(snap.Data), snap.LastModified)
	if err != nil {
		r.logger.Database().Error("Snapshot insert failed", "error", err.Error(), "contentfulId", snap.ContentfulID)
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		snap.ID = id
	}

	r.logger.Database().Info("Snapshot insert completed", "contentfulId", snap.ContentfulID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nil
}

func (r *SnapshotRepository) Update(ctx context.Context, snap *content.Snapshot) error {
	query := `UPDATE snapshots SET content_type = ?, language = ?, data_hash = ?, data = ?, last_modified = ?
		WHERE contentful_id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing snapshot update", "contentfulId", snap.ContentfulID)

	_, err := r.db.ExecContext(ctx, query, snap.ContentType, snap.Language,
		snap.DataHash, string(snap.Data), snap.LastModified, snap.ContentfulID)
	if err != nil {
		r.logger.Database().Error("Snapshot update failed", "error", err.Error(), "contentfulId", snap.ContentfulID)
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	r.logger.Database().Info("Snapshot update completed", "contentfulId", snap.ContentfulID, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nil
}
