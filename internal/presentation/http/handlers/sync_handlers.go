package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/willowmedia/contentbridge/internal/application/services"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
)

// SyncHandlers contains the snapshot refresh HTTP handlers
type SyncHandlers struct {
	syncService *services.SyncService
	logger      *logging.ChanneledLogger
}

// NewSyncHandlers creates sync handlers with injected dependencies
func NewSyncHandlers(syncService *services.SyncService, logger *logging.ChanneledLogger) *SyncHandlers {
	return &SyncHandlers{syncService: syncService, logger: logger}
}

// PostSync handles POST /api/v1/sync - triggers a snapshot refresh run
func (h *SyncHandlers) PostSync(c *gin.Context) {
	start := time.Now()
	force, _ := strconv.ParseBool(c.Query("force"))

	result, err := h.syncService.Refresh(c.Request.Context(), force)
	if err != nil {
		h.logger.Sync().Error("Sync run failed", "error", err.Error(), "duration", time.Since(start))
		c.JSON(http.StatusBadGateway, gin.H{"error": "sync failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runId":    result.RunID,
		"added":    result.Added,
		"updated":  result.Updated,
		"duration": time.Since(start).String(),
	})
}
