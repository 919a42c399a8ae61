package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/willowmedia/contentbridge/internal/application/services"
	"github.com/willowmedia/contentbridge/internal/domain/entities/pages"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
	"github.com/willowmedia/contentbridge/pkg/config"
)

// PageHandlers contains the page assembly HTTP handlers
type PageHandlers struct {
	pageService *services.PageService
	logger      *logging.ChanneledLogger
}

// NewPageHandlers creates page handlers with injected dependencies
func NewPageHandlers(pageService *services.PageService, logger *logging.ChanneledLogger) *PageHandlers {
	return &PageHandlers{pageService: pageService, logger: logger}
}

// pageContext builds the per-request context from the request host and
// locale query parameter. The campaign id fills in during assembly.
func pageContext(c *gin.Context) *pages.PageContext {
	locale := c.Query("locale")
	if locale == "" {
		locale = config.DefaultLocale
	}
	return &pages.PageContext{
		Locale:    locale,
		Host:      c.Request.Host,
		SiteHosts: config.SiteHosts,
		UTMSource: config.UTMSource,
	}
}

// GetPage handles GET /api/v1/pages/:id - assembles one page by entry id
func (h *PageHandlers) GetPage(c *gin.Context) {
	start := time.Now()
	pageID := c.Param("id")
	pc := pageContext(c)

	h.logger.Content().Debug("Received page request", "pageId", pageID, "locale", pc.Locale)

	page, err := h.pageService.AssemblePage(c.Request.Context(), pc, pageID)
	if err != nil {
		if errors.Is(err, pages.ErrUnrecognizedPageType) {
			h.logger.Content().Warn("Page request for non-page entry", "pageId", pageID, "error", err.Error())
			c.JSON(http.StatusNotFound, gin.H{"error": "entry is not a page"})
			return
		}
		h.logger.Content().Error("Page assembly failed", "pageId", pageID, "error", err.Error())
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}

	h.logger.Content().Info("Page assembled", "pageId", pageID, "locale", pc.Locale,
		"entries", len(page.Entries), "skipped", page.Skipped, "duration", time.Since(start))
	c.JSON(http.StatusOK, page)
}

// GetHomepage handles GET /api/v1/pages/home - assembles the homepage for a
// locale via its connector entry
func (h *PageHandlers) GetHomepage(c *gin.Context) {
	start := time.Now()
	pc := pageContext(c)

	h.logger.Content().Debug("Received homepage request", "locale", pc.Locale)

	page, err := h.pageService.AssembleHomepage(c.Request.Context(), pc, pc.Locale)
	if err != nil {
		h.logger.Content().Error("Homepage assembly failed", "locale", pc.Locale, "error", err.Error())
		c.JSON(http.StatusNotFound, gin.H{"error": "homepage not found"})
		return
	}

	h.logger.Content().Info("Homepage assembled", "locale", pc.Locale,
		"entries", len(page.Entries), "skipped", page.Skipped, "duration", time.Since(start))
	c.JSON(http.StatusOK, page)
}
