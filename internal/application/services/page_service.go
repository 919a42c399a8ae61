package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/willowmedia/contentbridge/internal/domain/cms"
	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/domain/entities/pages"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
	"github.com/willowmedia/contentbridge/pkg/config"
)

// PageService assembles complete page structures from page-root entries:
// metadata first, then the content blocks through the mapper registry, then
// the aggregated CSS/JS bundle lists.
type PageService struct {
	client cms.Client
	mapper *MapperService
	logger *logging.ChanneledLogger
}

// NewPageService creates a new page assembly service.
func NewPageService(client cms.Client, mapper *MapperService, logger *logging.ChanneledLogger) *PageService {
	return &PageService{client: client, mapper: mapper, logger: logger}
}

// AssemblePage fetches the entry with the given id and assembles it into a
// page.
func (s *PageService) AssemblePage(ctx context.Context, pc *pages.PageContext, pageID string) (*pages.Page, error) {
	entry, err := s.client.Entry(ctx, pageID, cms.EntryOptions{
		IncludeDepth: config.PageIncludeDepth,
		Locale:       pc.Locale,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page entry %s: %w", pageID, err)
	}
	return s.AssembleEntry(ctx, pc, entry)
}

// AssembleHomepage assembles the homepage for a language via the connector
// entry stored under that language. The client must support typed lookup.
func (s *PageService) AssembleHomepage(ctx context.Context, pc *pages.PageContext, language string) (*pages.Page, error) {
	typed, ok := s.client.(cms.TypedEntrySource)
	if !ok {
		return nil, fmt.Errorf("homepage lookup requires a typed entry source")
	}
	entry, err := typed.EntryByTypeAndLanguage(ctx, pages.Connector, language)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch homepage connector for %s: %w", language, err)
	}
	return s.AssembleEntry(ctx, pc, entry)
}

// AssembleEntry assembles a page from an already-fetched root entry. A
// connector root is followed one level to its referenced page; entries whose
// type starts with the page prefix are page roots themselves; anything else is
// unrecognized and fatal for the request.
func (s *PageService) AssembleEntry(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (*pages.Page, error) {
	switch {
	case entry.ContentType == pages.Connector:
		target := entry.Fields.Entry("homepage")
		if target == nil {
			return nil, fmt.Errorf("connector entry %s references no homepage", entry.ID)
		}
		entry = target
	case strings.HasPrefix(entry.ContentType, pages.PagePrefix):
		// Entry is the page root.
	default:
		return nil, fmt.Errorf("%w: %s", pages.ErrUnrecognizedPageType, entry.ContentType)
	}

	info := s.pageInfo(pc, entry)
	// The campaign id flows into every tagged link rendered below, so it must
	// be set before any mapper runs.
	pc.CampaignID = info.CampaignID

	page := &pages.Page{
		PageType: entry.ContentType,
		Info:     info,
		Entries:  []pages.ViewModel{},
	}

	cssSet := map[string]bool{}
	jsSet := map[string]bool{}

	switch entry.ContentType {
	case "pageGeneral":
		s.assembleGeneral(ctx, pc, entry, page, cssSet, jsSet)
	default:
		s.assembleContentList(ctx, pc, entry.Fields.Entries("content"), page, cssSet, jsSet)
	}

	page.CSS = sortedKeys(cssSet)
	page.JS = sortedKeys(jsSet)

	return page, nil
}

// assembleGeneral fills the fixed slots of a pageGeneral entry: an optional
// hero, an optional rich text body, and an optional callout, in that order.
func (s *PageService) assembleGeneral(ctx context.Context, pc *pages.PageContext, entry *content.Entry, page *pages.Page, cssSet, jsSet map[string]bool) {
	fields := entry.Fields

	if hero := fields.Entry("component_hero"); hero != nil {
		s.applyHandler(ctx, pc, hero, "componentHero", page, cssSet, jsSet)
	}

	if body := fields.RichText("body"); body != nil {
		vm, err := s.mapper.MapText(ctx, pc, body)
		if err != nil {
			s.logger.Content().Error("Failed to map page body", "page", entry.ID, "error", err)
		} else {
			mergeAnnotations(cssSet, jsSet, ContentHandler{CSS: []string{"text"}})
			page.Entries = append(page.Entries, vm)
		}
	}

	if callout := fields.Entry("layout_callout"); callout != nil {
		s.applyHandler(ctx, pc, callout, "layoutCallout", page, cssSet, jsSet)
	}
}

// assembleContentList runs an ordered content list through the mapper
// registry. Items with no registered handler are skipped and counted; a
// handler failure drops that item only.
func (s *PageService) assembleContentList(ctx context.Context, pc *pages.PageContext, items []*content.Entry, page *pages.Page, cssSet, jsSet map[string]bool) {
	for _, item := range items {
		if item == nil {
			continue
		}
		s.applyHandler(ctx, pc, item, item.ContentType, page, cssSet, jsSet)
	}
}

func (s *PageService) applyHandler(ctx context.Context, pc *pages.PageContext, item *content.Entry, contentType string, page *pages.Page, cssSet, jsSet map[string]bool) {
	handler, ok := s.mapper.Handler(contentType)
	if !ok {
		s.logger.Content().Warn("No handler registered for content type",
			"contentType", contentType, "entry", item.ID)
		page.Skipped++
		return
	}

	vm, err := handler.Map(ctx, pc, item)
	if err != nil {
		s.logger.Content().Error("Failed to map content entry",
			"contentType", contentType, "entry", item.ID, "error", err)
		return
	}

	mergeAnnotations(cssSet, jsSet, handler)
	page.Entries = append(page.Entries, vm)
}

// pageInfo derives the page metadata from the content root's fields. The slug
// falls back to "home" and the campaign id to the slug.
func (s *PageService) pageInfo(pc *pages.PageContext, entry *content.Entry) pages.PageInfo {
	fields := entry.Fields

	slug := fields.StringOr("slug", "home")

	imageURL := ""
	if image := fields.Asset("preview_image"); image != nil {
		imageURL = "https:" + image.URL
	}

	return pages.PageInfo{
		Title:      fields.String("preview_title"),
		Blurb:      fields.String("preview_blurb"),
		Slug:       slug,
		CampaignID: fields.StringOr("campaign", slug),
		Locale:     pc.Locale,
		Theme:      fields.String("theme"),
		ImageURL:   imageURL,
	}
}

func mergeAnnotations(cssSet, jsSet map[string]bool, handler ContentHandler) {
	for _, css := range handler.CSS {
		cssSet[css] = true
	}
	for _, js := range handler.JS {
		jsSet[js] = true
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
