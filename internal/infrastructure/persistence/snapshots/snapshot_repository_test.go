package snapshots

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
)

func testRepository(t *testing.T) *SnapshotRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contentful_id TEXT NOT NULL UNIQUE,
		content_type TEXT NOT NULL,
		language TEXT NOT NULL,
		data_hash TEXT NOT NULL,
		data TEXT NOT NULL,
		last_modified TIMESTAMP NOT NULL,
		UNIQUE(content_type, language)
	)`)
	require.NoError(t, err)

	config := logging.DefaultLoggerConfig()
	config.OutputToFile = false
	config.OutputToConsole = false
	config.DefaultLevel = slog.LevelError
	logger, err := logging.NewChanneledLogger(config)
	require.NoError(t, err)

	return NewSnapshotRepository(db, logger)
}

func testSnapshot(contentfulID, contentType, language string) *content.Snapshot {
	return &content.Snapshot{
		ContentfulID: contentfulID,
		ContentType:  contentType,
		Language:     language,
		DataHash:     "hash-" + contentfulID,
		Data:         []byte(`{"items":[]}`),
		LastModified: time.Now().UTC().Truncate(time.Second),
	}
}

func TestInsertAndGetByContentfulID(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	snap := testSnapshot("home-en", "pageHome", "en-US")
	require.NoError(t, repo.Insert(ctx, snap))
	assert.NotZero(t, snap.ID)

	got, err := repo.GetByContentfulID(ctx, "home-en")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pageHome", got.ContentType)
	assert.Equal(t, "en-US", got.Language)
	assert.Equal(t, "hash-home-en", got.DataHash)
	assert.JSONEq(t, `{"items":[]}`, string(got.Data))
}

func TestGetByContentfulIDMissing(t *testing.T) {
	repo := testRepository(t)

	got, err := repo.GetByContentfulID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetByTypeAndLanguage(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testSnapshot("home-en", "pageHome", "en-US")))
	require.NoError(t, repo.Insert(ctx, testSnapshot("home-de", "pageHome", "de")))

	got, err := repo.GetByTypeAndLanguage(ctx, "pageHome", "de")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "home-de", got.ContentfulID)

	missing, err := repo.GetByTypeAndLanguage(ctx, "pageHome", "fr")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListByType(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testSnapshot("home-en", "pageHome", "en-US")))
	require.NoError(t, repo.Insert(ctx, testSnapshot("home-de", "pageHome", "de")))
	require.NoError(t, repo.Insert(ctx, testSnapshot("general-en", "pageGeneral", "en-US")))

	snaps, err := repo.ListByType(ctx, "pageHome")
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	empty, err := repo.ListByType(ctx, "pageVersatile")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdate(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	snap := testSnapshot("home-en", "pageHome", "en-US")
	require.NoError(t, repo.Insert(ctx, snap))

	snap.DataHash = "hash-v2"
	snap.Data = []byte(`{"items":[{"sys":{"id":"home-en"}}]}`)
	require.NoError(t, repo.Update(ctx, snap))

	got, err := repo.GetByContentfulID(ctx, "home-en")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash-v2", got.DataHash)
}

func TestInsertDuplicateContentfulIDFails(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testSnapshot("home-en", "pageHome", "en-US")))
	err := repo.Insert(ctx, testSnapshot("home-en", "pageHome", "de"))
	require.Error(t, err)
}

func TestInsertDuplicateTypeLanguageFails(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testSnapshot("home-en", "pageHome", "en-US")))
	err := repo.Insert(ctx, testSnapshot("home-en-2", "pageHome", "en-US"))
	require.Error(t, err)
}
