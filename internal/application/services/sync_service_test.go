package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/domain/entities/pages"
)

type fakeRawFetcher struct {
	responses map[string]string
}

func (f *fakeRawFetcher) RawEntry(ctx context.Context, id string, includeDepth int) (json.RawMessage, error) {
	if raw, ok := f.responses[id]; ok {
		return json.RawMessage(raw), nil
	}
	return nil, fmt.Errorf("entry %s not found", id)
}

type fakeStore struct {
	byContentfulID map[string]*content.Snapshot
	nextID         int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{byContentfulID: make(map[string]*content.Snapshot)}
}

func (s *fakeStore) GetByContentfulID(ctx context.Context, contentfulID string) (*content.Snapshot, error) {
	return s.byContentfulID[contentfulID], nil
}

func (s *fakeStore) GetByTypeAndLanguage(ctx context.Context, contentType, language string) (*content.Snapshot, error) {
	for _, snap := range s.byContentfulID {
		if snap.ContentType == contentType && snap.Language == language {
			return snap, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListByType(ctx context.Context, contentType string) ([]*content.Snapshot, error) {
	var out []*content.Snapshot
	for _, snap := range s.byContentfulID {
		if snap.ContentType == contentType {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (s *fakeStore) Insert(ctx context.Context, snap *content.Snapshot) error {
	s.nextID++
	snap.ID = s.nextID
	s.byContentfulID[snap.ContentfulID] = snap
	return nil
}

func (s *fakeStore) Update(ctx context.Context, snap *content.Snapshot) error {
	s.byContentfulID[snap.ContentfulID] = snap
	return nil
}

func syncFixtures() (*fakeClient, *fakeRawFetcher, *fakeStore) {
	client := &fakeClient{byType: map[string][]*content.Entry{
		"pageHome": {
			{ID: "home-en", ContentType: "pageHome"},
		},
		pages.Connector: {
			{ID: "connect-de", ContentType: pages.Connector},
		},
	}}
	raw := &fakeRawFetcher{responses: map[string]string{
		"home-en":    `{"items":[{"sys":{"id":"home-en","locale":"en-US"},"fields":{"slug":"home"}}]}`,
		"connect-de": `{"items":[{"sys":{"id":"connect-de","locale":"en-US"},"fields":{"name":"de"}}]}`,
	}}
	return client, raw, newFakeStore()
}

func testSyncService(t *testing.T, client *fakeClient, raw *fakeRawFetcher, store *fakeStore) *SyncService {
	return NewSyncService(client, raw, store, testLogger(t))
}

func TestRefreshAddsNewSnapshots(t *testing.T) {
	client, raw, store := syncFixtures()
	service := testSyncService(t, client, raw, store)

	result, err := service.Refresh(context.Background(), false)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Updated)

	home := store.byContentfulID["home-en"]
	require.NotNil(t, home)
	assert.Equal(t, "pageHome", home.ContentType)
	assert.Equal(t, "en-US", home.Language)
	assert.NotEmpty(t, home.DataHash)

	// Connector snapshots key on the language carried in their name field.
	connect := store.byContentfulID["connect-de"]
	require.NotNil(t, connect)
	assert.Equal(t, "de", connect.Language)
}

func TestRefreshIsIdempotent(t *testing.T) {
	client, raw, store := syncFixtures()
	service := testSyncService(t, client, raw, store)

	_, err := service.Refresh(context.Background(), false)
	require.NoError(t, err)

	result, err := service.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 0, result.Updated)
}

func TestRefreshUpdatesChangedContent(t *testing.T) {
	client, raw, store := syncFixtures()
	service := testSyncService(t, client, raw, store)

	_, err := service.Refresh(context.Background(), false)
	require.NoError(t, err)

	raw.responses["home-en"] = `{"items":[{"sys":{"id":"home-en","locale":"en-US"},"fields":{"slug":"new-home"}}]}`

	result, err := service.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Updated)
}

func TestRefreshForceRewritesEverything(t *testing.T) {
	client, raw, store := syncFixtures()
	service := testSyncService(t, client, raw, store)

	_, err := service.Refresh(context.Background(), false)
	require.NoError(t, err)

	result, err := service.Refresh(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 2, result.Updated)
}

func TestRefreshToleratesEmptyContentTypes(t *testing.T) {
	service := testSyncService(t, &fakeClient{byType: map[string][]*content.Entry{}},
		&fakeRawFetcher{}, newFakeStore())

	result, err := service.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 0, result.Updated)
}

func TestContentHashIgnoresKeyOrder(t *testing.T) {
	a, err := contentHash(json.RawMessage(`{"a":1,"b":{"c":true,"d":"x"}}`))
	require.NoError(t, err)
	b, err := contentHash(json.RawMessage(`{"b":{"d":"x","c":true},"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := contentHash(json.RawMessage(`{"a":2,"b":{"c":true,"d":"x"}}`))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
