package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/willowmedia/contentbridge/internal/domain/cms"
	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
	"github.com/willowmedia/contentbridge/pkg/config"
)

// DeliveryClient fetches content from the Contentful delivery API. It serves
// live mode directly and feeds Entry Sync's raw snapshots.
type DeliveryClient struct {
	baseURL     string
	spaceID     string
	environment string
	accessToken string
	httpClient  *http.Client
	logger      *logging.ChanneledLogger
}

// NewDeliveryClient creates a delivery client from the configured space.
func NewDeliveryClient(logger *logging.ChanneledLogger) *DeliveryClient {
	return &DeliveryClient{
		baseURL:     config.SpaceAPIURL,
		spaceID:     config.SpaceID,
		environment: config.SpaceEnvironment,
		accessToken: config.SpaceKey,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// contentfulLocale maps a site language code onto the space's locale set.
// Spanish variants collapse onto one translation; German carries a region.
func contentfulLocale(locale string) string {
	switch {
	case strings.HasPrefix(locale, "es-"):
		return "es"
	case locale == "de":
		return "de-DE"
	default:
		return locale
	}
}

// get performs one authenticated GET against the space and returns the
// response body. Non-200 statuses are errors.
func (c *DeliveryClient) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	params.Set("access_token", c.accessToken)
	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/%s?%s",
		c.baseURL, c.spaceID, c.environment, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build delivery request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("delivery request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read delivery response: %w", err)
	}

	c.logger.Content().Debug("Delivery API request",
		"path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("delivery API returned status %d for %s", resp.StatusCode, path)
	}
	return body, nil
}

// RawEntry fetches an entry subtree as the API returned it, for snapshotting.
func (c *DeliveryClient) RawEntry(ctx context.Context, id string, includeDepth int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("sys.id", id)
	params.Set("include", strconv.Itoa(includeDepth))
	return c.get(ctx, "entries", params)
}

// Entry fetches and builds a single entry with its linked sub-graph.
func (c *DeliveryClient) Entry(ctx context.Context, id string, opts cms.EntryOptions) (*content.Entry, error) {
	params := url.Values{}
	params.Set("sys.id", id)
	params.Set("include", strconv.Itoa(opts.IncludeDepth))
	if opts.Locale != "" {
		params.Set("locale", contentfulLocale(opts.Locale))
	}

	raw, err := c.get(ctx, "entries", params)
	if err != nil {
		return nil, err
	}

	builder, err := NewResourceBuilder(raw)
	if err != nil {
		return nil, err
	}
	entry := builder.FirstEntry()
	if entry == nil {
		return nil, fmt.Errorf("entry %s not found", id)
	}
	return entry, nil
}

// EntriesOfType lists all entries of one content type.
func (c *DeliveryClient) EntriesOfType(ctx context.Context, contentType string, opts cms.EntryOptions) ([]*content.Entry, error) {
	params := url.Values{}
	params.Set("content_type", contentType)
	params.Set("include", strconv.Itoa(opts.IncludeDepth))
	if opts.Locale != "" {
		params.Set("locale", contentfulLocale(opts.Locale))
	}

	raw, err := c.get(ctx, "entries", params)
	if err != nil {
		return nil, err
	}

	builder, err := NewResourceBuilder(raw)
	if err != nil {
		return nil, err
	}
	return builder.Entries(), nil
}

// EntryByTypeAndLanguage fetches the first entry of a content type under a
// language's locale, the live-mode equivalent of a snapshot lookup.
func (c *DeliveryClient) EntryByTypeAndLanguage(ctx context.Context, contentType, language string) (*content.Entry, error) {
	entries, err := c.EntriesOfType(ctx, contentType, cms.EntryOptions{
		IncludeDepth: config.PageIncludeDepth,
		Locale:       language,
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no %s entry for language %s", contentType, language)
	}
	return entries[0], nil
}

// Asset fetches a single asset.
func (c *DeliveryClient) Asset(ctx context.Context, id string) (*content.Asset, error) {
	raw, err := c.get(ctx, "assets/"+id, url.Values{})
	if err != nil {
		return nil, err
	}

	var resource rawResource
	if err := json.Unmarshal(raw, &resource); err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", id, err)
	}

	asset := &content.Asset{ID: resource.Sys.ID}
	if title, ok := resource.Fields["title"].(string); ok {
		asset.Title = title
	}
	if file, ok := resource.Fields["file"].(map[string]any); ok {
		if u, ok := file["url"].(string); ok {
			asset.URL = u
		}
	}
	return asset, nil
}
